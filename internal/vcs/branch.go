package vcs

import (
	"errors"
	"strings"

	"github.com/gitgrove-dev/gitgrove/internal/models"
	"github.com/gitgrove-dev/gitgrove/internal/notify"
	"gorm.io/gorm"
)

// CreateBranch adds a named branch to the project. The first branch of a
// project becomes its default branch.
func CreateBranch(dbc *gorm.DB, project *models.Project, name string) (*models.Branch, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return nil, validation("Branch name can't be empty")
	}

	var count int64

	if err := dbc.Model(&models.Branch{}).
		Where("project_id = ? AND name = ?", project.ID, name).
		Count(&count).Error; err != nil {
		return nil, err
	}

	if count > 0 {
		return nil, validation("Branch name already exists")
	}

	var existing int64

	if err := dbc.Model(&models.Branch{}).
		Where("project_id = ?", project.ID).
		Count(&existing).Error; err != nil {
		return nil, err
	}

	branch := models.Branch{
		Name:      name,
		ProjectID: project.ID,
		IsDefault: existing == 0,
	}

	if err := dbc.Create(&branch).Error; err != nil {
		return nil, err
	}

	notify.Watchers(dbc, project, "Branch "+branch.Name+" added to project "+project.Title)

	return &branch, nil
}

// RenameBranch changes the branch's name. Watchers are notified with the old
// name before the rename takes effect.
func RenameBranch(dbc *gorm.DB, branch *models.Branch, newName string) (*models.Branch, error) {
	newName = strings.TrimSpace(newName)

	if newName == "" {
		return nil, validation("Branch name can't be empty")
	}

	var existing models.Branch

	err := dbc.Where("project_id = ? AND name = ?", branch.ProjectID, newName).First(&existing).Error

	if err == nil && existing.ID != branch.ID {
		return nil, validation("Branch name already exists")
	}

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var project models.Project

	if err := dbc.First(&project, branch.ProjectID).Error; err != nil {
		return nil, err
	}

	notify.Watchers(dbc, &project, "Branch "+branch.Name+" changed to "+newName)

	branch.Name = newName

	if err := dbc.Save(branch).Error; err != nil {
		return nil, err
	}

	return branch, nil
}

// DeleteBranch removes the branch together with its files and commits. Only
// project participants may delete branches. If the default branch is deleted
// and other branches remain, the one with the lowest id is promoted.
func DeleteBranch(dbc *gorm.DB, branch *models.Branch, requestingUsername string) error {
	var project models.Project

	if err := dbc.First(&project, branch.ProjectID).Error; err != nil {
		return err
	}

	if !CanEdit(dbc, &project, requestingUsername) {
		return ErrPermissionDenied
	}

	wasDefault := branch.IsDefault

	return dbc.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("branch_id = ?", branch.ID).Delete(&models.File{}).Error; err != nil {
			return err
		}

		if err := tx.Where("branch_id = ?", branch.ID).Delete(&models.Commit{}).Error; err != nil {
			return err
		}

		// Pull requests keep existing when a referenced branch goes away.
		if err := tx.Model(&models.PullRequest{}).
			Where("source_id = ?", branch.ID).
			Update("source_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.PullRequest{}).
			Where("target_id = ?", branch.ID).
			Update("target_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Delete(branch).Error; err != nil {
			return err
		}

		if !wasDefault {
			return nil
		}

		var survivor models.Branch

		err := tx.Where("project_id = ?", project.ID).Order("id").First(&survivor).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}

		if err != nil {
			return err
		}

		survivor.IsDefault = true

		return tx.Save(&survivor).Error
	})
}

// SetDefault makes the branch the project's default, clearing the previous one.
func SetDefault(dbc *gorm.DB, branch *models.Branch) error {
	return dbc.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Branch{}).
			Where("project_id = ? AND is_default = ?", branch.ProjectID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}

		branch.IsDefault = true

		return tx.Save(branch).Error
	})
}

// CopyBranch creates a new branch in the same project carrying copies of
// every file and commit of the source branch, in their original order.
func CopyBranch(dbc *gorm.DB, branch *models.Branch, newName string) (*models.Branch, error) {
	newName = strings.TrimSpace(newName)

	if newName == "" {
		return nil, validation("Branch name can't be empty")
	}

	var count int64

	if err := dbc.Model(&models.Branch{}).
		Where("project_id = ? AND name = ?", branch.ProjectID, newName).
		Count(&count).Error; err != nil {
		return nil, err
	}

	if count > 0 {
		return nil, validation("Branch name already exists")
	}

	newBranch := models.Branch{
		Name:      newName,
		ProjectID: branch.ProjectID,
		IsDefault: false,
	}

	err := dbc.Transaction(func(tx *gorm.DB) error {
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

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &newBranch, nil
}

// GetCommits returns the branch's commit log, newest first.
func GetCommits(dbc *gorm.DB, branch *models.Branch) ([]models.Commit, error) {
	var commits []models.Commit

	err := dbc.Where("branch_id = ?", branch.ID).
		Order("date_time DESC").
		Order("id DESC").
		Find(&commits).Error

	if err != nil {
		return nil, err
	}

	return commits, nil
}
