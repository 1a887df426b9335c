package vcs

import (
	"fmt"
	"testing"

	"github.com/gitgrove-dev/gitgrove/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	dbc, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = dbc.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Contributor{},
		&models.StarredProject{},
		&models.WatchedProject{},
		&models.UpdateRecord{},
		&models.Branch{},
		&models.File{},
		&models.Commit{},
		&models.Milestone{},
		&models.Issue{},
		&models.PullRequest{},
		&models.Comment{},
		&models.Reaction{},
	)
	require.NoError(t, err)

	return dbc
}

func createUser(t *testing.T, dbc *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, dbc.Create(&user).Error)

	return &user
}

func createProject(t *testing.T, dbc *gorm.DB, lead *models.User, title string) *models.Project {
	t.Helper()

	project := models.Project{
		Title:  title,
		LeadID: lead.ID,
	}
	require.NoError(t, dbc.Create(&project).Error)

	return &project
}

func addContributor(t *testing.T, dbc *gorm.DB, project *models.Project, user *models.User) {
	t.Helper()

	require.NoError(t, dbc.Create(&models.Contributor{
		UserID:    user.ID,
		ProjectID: project.ID,
	}).Error)
}

func addWatcher(t *testing.T, dbc *gorm.DB, project *models.Project, user *models.User) {
	t.Helper()

	require.NoError(t, dbc.Create(&models.WatchedProject{
		UserID:    user.ID,
		ProjectID: project.ID,
	}).Error)
}

func updateMessages(t *testing.T, dbc *gorm.DB, user *models.User) []string {
	t.Helper()

	var records []models.UpdateRecord
	require.NoError(t, dbc.Where("user_id = ?", user.ID).Order("id").Find(&records).Error)

	messages := make([]string, 0, len(records))
	for _, record := range records {
		messages = append(messages, record.Message)
	}

	return messages
}
