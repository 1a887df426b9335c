package vcs

import (
	"errors"

	"github.com/gitgrove-dev/gitgrove/internal/models"
	"gorm.io/gorm"
)

// CanEdit reports whether username is a participant of the project, either
// its lead or one of its contributors.
func CanEdit(dbc *gorm.DB, project *models.Project, username string) bool {
	var user models.User

	if err := dbc.Where("username = ?", username).First(&user).Error; err != nil {
		return false
	}

	if user.ID == project.LeadID {
		return true
	}

	var count int64

	dbc.Model(&models.Contributor{}).
		Where("project_id = ? AND user_id = ?", project.ID, user.ID).
		Count(&count)

	return count > 0
}

// CanView reports whether username may view the project. Every registered
// user can browse every project; only editing is restricted.
func CanView(dbc *gorm.DB, project *models.Project, username string) bool {
	err := dbc.Where("username = ?", username).First(&models.User{}).Error
	return !errors.Is(err, gorm.ErrRecordNotFound) && err == nil
}

// Participants returns the usernames of the project's lead and contributors.
func Participants(dbc *gorm.DB, project *models.Project) ([]string, error) {
	var lead models.User

	if err := dbc.First(&lead, project.LeadID).Error; err != nil {
		return nil, err
	}

	usernames := []string{lead.Username}

	var contributors []models.User

	err := dbc.
		Joins("JOIN contributors ON contributors.user_id = users.id").
		Where("contributors.project_id = ?", project.ID).
		Order("users.id").
		Find(&contributors).Error

	if err != nil {
		return nil, err
	}

	for _, c := range contributors {
		usernames = append(usernames, c.Username)
	}

	return usernames, nil
}
