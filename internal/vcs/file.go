package vcs

import (
	"errors"
	"strings"
	"time"

	"github.com/gitgrove-dev/gitgrove/internal/models"
	"github.com/gitgrove-dev/gitgrove/internal/notify"
	"gorm.io/gorm"
)

// AddFile creates a file on the branch and records the change as a commit by
// the acting user.
func AddFile(dbc *gorm.DB, branch *models.Branch, title, text, committer string) (*models.File, error) {
	title = strings.TrimSpace(title)
	text = strings.TrimSpace(text)

	if title == "" {
		return nil, validation("File title can't be empty")
	}

	existing, err := GetFileByTitle(dbc, branch, title)

	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, validation("File with given title already exists")
	}

	file := models.File{
		Title:    title,
		Text:     text,
		BranchID: branch.ID,
	}

	err = dbc.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&file).Error; err != nil {
			return err
		}

		commit := models.Commit{
			LogMessage: "File " + file.Title + " added",
			Committer:  committer,
			DateTime:   time.Now(),
			BranchID:   branch.ID,
		}

		return tx.Create(&commit).Error
	})

	if err != nil {
		return nil, err
	}

	var project models.Project

	if err := dbc.First(&project, branch.ProjectID).Error; err == nil {
		notify.Watchers(dbc, &project, "File "+file.Title+" added to "+project.Title+" on "+branch.Name)
	}

	return &file, nil
}

// EditFile updates a file's title and text. The commit message names the
// title the file had before the edit.
func EditFile(dbc *gorm.DB, file *models.File, newTitle, newText, committer string) (*models.File, error) {
	newTitle = strings.TrimSpace(newTitle)
	newText = strings.TrimSpace(newText)

	if newTitle == "" {
		return nil, validation("File title can't be empty")
	}

	var existing models.File

	err := dbc.Where("branch_id = ? AND title = ?", file.BranchID, newTitle).First(&existing).Error

	if err == nil && existing.ID != file.ID {
		return nil, validation("File with given title already exists")
	}

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	oldTitle := file.Title

	err = dbc.Transaction(func(tx *gorm.DB) error {
		file.Title = newTitle
		file.Text = newText

		if err := tx.Save(file).Error; err != nil {
			return err
		}

		commit := models.Commit{
			LogMessage: "File " + oldTitle + " changed",
			Committer:  committer,
			DateTime:   time.Now(),
			BranchID:   file.BranchID,
		}

		return tx.Create(&commit).Error
	})

	if err != nil {
		return nil, err
	}

	return file, nil
}

// DeleteFile removes the file and records the deletion on its branch.
func DeleteFile(dbc *gorm.DB, file *models.File, committer string) error {
	return dbc.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(file).Error; err != nil {
			return err
		}

		commit := models.Commit{
			LogMessage: "File " + file.Title + " deleted",
			Committer:  committer,
			DateTime:   time.Now(),
			BranchID:   file.BranchID,
		}

		return tx.Create(&commit).Error
	})
}

// GetFileByTitle looks a file up within one branch. Absence is not an error:
// the diff walk relies on a nil result instead of ErrRecordNotFound.
func GetFileByTitle(dbc *gorm.DB, branch *models.Branch, title string) (*models.File, error) {
	var file models.File

	err := dbc.Where("branch_id = ? AND title = ?", branch.ID, title).First(&file).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &file, nil
}

// GetFiles returns the branch's files in creation order.
func GetFiles(dbc *gorm.DB, branch *models.Branch) ([]models.File, error) {
	var files []models.File

	if err := dbc.Where("branch_id = ?", branch.ID).Order("id").Find(&files).Error; err != nil {
		return nil, err
	}

	return files, nil
}
