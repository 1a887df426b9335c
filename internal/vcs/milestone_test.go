package vcs

import (
	"testing"

	"github.com/gitgrove-dev/gitgrove/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createMilestoneWithIssues(t *testing.T, dbc *gorm.DB, project *models.Project, closed, open int) *models.Milestone {
	t.Helper()

	milestone := models.Milestone{
		Title:     "v1.0",
		State:     models.MilestoneOpen,
		ProjectID: project.ID,
	}
	require.NoError(t, dbc.Create(&milestone).Error)

	for i := 0; i < closed+open; i++ {
		state := models.IssueOpen

		if i < closed {
			state = models.IssueClosed
		}

		require.NoError(t, dbc.Create(&models.Issue{
			Title:       "Issue",
			State:       state,
			ProjectID:   project.ID,
			MilestoneID: &milestone.ID,
		}).Error)
	}

	return &milestone
}

func TestMilestonePercent(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	project := createProject(t, dbc, lead, "Project 1")

	// 1 closed out of 3 rounds to 33.
	milestone := createMilestoneWithIssues(t, dbc, project, 1, 2)

	percent, err := MilestonePercent(dbc, milestone)
	require.NoError(t, err)
	assert.Equal(t, 33, percent)
}

func TestMilestonePercentAllClosed(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	project := createProject(t, dbc, lead, "Project 1")

	milestone := createMilestoneWithIssues(t, dbc, project, 2, 0)

	percent, err := MilestonePercent(dbc, milestone)
	require.NoError(t, err)
	assert.Equal(t, 100, percent)
}

func TestMilestonePercentAllOpen(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	project := createProject(t, dbc, lead, "Project 1")

	milestone := createMilestoneWithIssues(t, dbc, project, 0, 4)

	percent, err := MilestonePercent(dbc, milestone)
	require.NoError(t, err)
	assert.Equal(t, 0, percent)
}

func TestMilestonePercentNoIssues(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	project := createProject(t, dbc, lead, "Project 1")

	milestone := createMilestoneWithIssues(t, dbc, project, 0, 0)

	percent, err := MilestonePercent(dbc, milestone)
	require.NoError(t, err)
	assert.Equal(t, 0, percent)
}
