package vcs

import (
	"github.com/gitgrove-dev/gitgrove/internal/models"
	"gorm.io/gorm"
)

// ForkProject deep-copies a project's branches, files and commits into a new
// project led by user. If the user already leads a project with the same
// title, underscores are appended until the title is free. The copy runs in
// one transaction: a fork either exists completely or not at all.
func ForkProject(dbc *gorm.DB, project *models.Project, user *models.User) (*models.Project, error) {
	title := project.Title

	for {
		var count int64

		if err := dbc.Model(&models.Project{}).
			Where("lead_id = ? AND title = ?", user.ID, title).
			Count(&count).Error; err != nil {
			return nil, err
		}

		if count == 0 {
			break
		}

		title += "_"
	}

	fork := models.Project{
		Title:        title,
		LeadID:       user.ID,
		ForkedFromID: &project.ID,
	}

	err := dbc.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&fork).Error; err != nil {
			return err
		}

		var branches []models.Branch

		if err := tx.Where("project_id = ?", project.ID).Order("id").Find(&branches).Error; err != nil {
			return err
		}

		for _, branch := range branches {
			newBranch := models.Branch{
				Name:      branch.Name,
				ProjectID: fork.ID,
				IsDefault: branch.IsDefault,
			}

			if err := tx.Create(&newBranch).Error; err != nil {
				return err
			}

			var files []models.File

			if err := tx.Where("branch_id = ?", branch.ID).Order("id").Find(&files).Error; err != nil {
				return err
			}

			for _, file := range files {
				copied := models.File{
					Title:    file.Title,
					Text:     file.Text,
					BranchID: newBranch.ID,
				}

				if err := tx.Create(&copied).Error; err != nil {
					return err
				}
			}

			var commits []models.Commit

			if err := tx.Where("branch_id = ?", branch.ID).Order("id").Find(&commits).Error; err != nil {
				return err
			}

			for _, commit := range commits {
				copied := models.Commit{
					LogMessage: commit.LogMessage,
					Committer:  commit.Committer,
					DateTime:   commit.DateTime,
					BranchID:   newBranch.ID,
				}

				if err := tx.Create(&copied).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &fork, nil
}
