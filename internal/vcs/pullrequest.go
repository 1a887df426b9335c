package vcs

import (
	"errors"
	"strings"
	"time"

	"github.com/gitgrove-dev/gitgrove/internal/models"
	"github.com/gitgrove-dev/gitgrove/internal/notify"
	"gorm.io/gorm"
)

// Difference pairs the full text of a target-branch file with the text of the
// same-titled source-branch file. An empty TargetText means the target branch
// has no counterpart yet.
type Difference struct {
	TargetText string `json:"target_text"`
	SourceText string `json:"source_text"`
}

func checkPullRequestFields(title string, source, target *models.Branch) error {
	if title == "" {
		return validation("Title can't be empty")
	}

	if source == nil {
		return validation("Source branch must be chosen")
	}

	if target == nil {
		return validation("Target branch must be chosen")
	}

	if source.ID == target.ID {
		return validation("Source and target branch can't be the same")
	}

	return nil
}

// CreatePullRequest opens a pull request proposing to merge source into
// target. Title must be unique within the project.
func CreatePullRequest(dbc *gorm.DB, project *models.Project, title, description string, source, target *models.Branch, issue *models.Issue) (*models.PullRequest, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if err := checkPullRequestFields(title, source, target); err != nil {
		return nil, err
	}

	var count int64

	if err := dbc.Model(&models.PullRequest{}).
		Where("project_id = ? AND title = ?", project.ID, title).
		Count(&count).Error; err != nil {
		return nil, err
	}

	if count > 0 {
		return nil, validation("Pull request with given title already exists")
	}

	pr := models.PullRequest{
		Title:       title,
		Description: description,
		State:       models.PullRequestOpen,
		ProjectID:   project.ID,
		SourceID:    &source.ID,
		TargetID:    &target.ID,
	}

	if issue != nil {
		pr.IssueID = &issue.ID
	}

	if err := dbc.Create(&pr).Error; err != nil {
		return nil, err
	}

	notify.Watchers(dbc, project, "New pull request added!")

	return &pr, nil
}

// EditPullRequest updates title, description, branches and linked issue of a
// pull request that has not been merged yet. Watchers are notified with the
// pre-edit title.
func EditPullRequest(dbc *gorm.DB, pr *models.PullRequest, title, description string, source, target *models.Branch, issue *models.Issue) error {
	if pr.State == models.PullRequestMerged {
		return validation("Merged pull request can't be edited")
	}

	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if err := checkPullRequestFields(title, source, target); err != nil {
		return err
	}

	var existing models.PullRequest

	err := dbc.Where("project_id = ? AND title = ?", pr.ProjectID, title).First(&existing).Error

	if err == nil && existing.ID != pr.ID {
		return validation("Pull request with given title already exists")
	}

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var project models.Project

	if err := dbc.First(&project, pr.ProjectID).Error; err != nil {
		return err
	}

	notify.Watchers(dbc, &project, "Pull request "+pr.Title+" changed!")

	pr.Title = title
	pr.Description = description
	pr.SourceID = &source.ID
	pr.TargetID = &target.ID

	if issue != nil {
		pr.IssueID = &issue.ID
	} else {
		pr.IssueID = nil
	}

	return dbc.Model(pr).Updates(map[string]interface{}{
		"title":       pr.Title,
		"description": pr.Description,
		"source_id":   pr.SourceID,
		"target_id":   pr.TargetID,
		"issue_id":    pr.IssueID,
	}).Error
}

// ToggleState flips an open pull request to closed and back. Merged pull
// requests are terminal.
func ToggleState(dbc *gorm.DB, pr *models.PullRequest) error {
	if pr.State == models.PullRequestMerged {
		return validation("Merged pull request can't be reopened")
	}

	if pr.State == models.PullRequestOpen {
		pr.State = models.PullRequestClosed
	} else {
		pr.State = models.PullRequestOpen
	}

	return dbc.Save(pr).Error
}

// GetDifferences walks the source branch's files in creation order and pairs
// each with the same-titled target file, if any. Texts are surfaced whole;
// the caller renders the comparison.
func GetDifferences(dbc *gorm.DB, pr *models.PullRequest) ([]Difference, error) {
	source, target, err := loadBranchPair(dbc, pr)

	if err != nil {
		return nil, err
	}

	files, err := GetFiles(dbc, source)

	if err != nil {
		return nil, err
	}

	differences := make([]Difference, 0, len(files))

	for _, file := range files {
		counterpart, err := GetFileByTitle(dbc, target, file.Title)

		if err != nil {
			return nil, err
		}

		targetText := ""

		if counterpart != nil {
			targetText = counterpart.Text
		}

		differences = append(differences, Difference{
			TargetText: targetText,
			SourceText: file.Text,
		})
	}

	return differences, nil
}

// MergePullRequest applies every source file onto the target branch:
// same-titled target files are overwritten in place, the rest are inserted as
// a batch of new files. A merge commit is appended to the target, the linked
// issue (if any) is closed and the pull request becomes MERGED with its
// branch references cleared. The whole merge is one transaction.
func MergePullRequest(dbc *gorm.DB, pr *models.PullRequest, committer string) error {
	if pr.State == models.PullRequestMerged {
		return validation("Pull request is already merged")
	}

	source, target, err := loadBranchPair(dbc, pr)

	if err != nil {
		return err
	}

	err = dbc.Transaction(func(tx *gorm.DB) error {
		files, err := GetFiles(tx, source)

		if err != nil {
			return err
		}

		var created []models.File

		for _, file := range files {
			counterpart, err := GetFileByTitle(tx, target, file.Title)

			if err != nil {
				return err
			}

			if counterpart != nil {
				counterpart.Text = file.Text

				if err := tx.Save(counterpart).Error; err != nil {
					return err
				}

				continue
			}

			created = append(created, models.File{
				Title:    file.Title,
				Text:     file.Text,
				BranchID: target.ID,
			})
		}

		if len(created) > 0 {
			if err := tx.Create(&created).Error; err != nil {
				return err
			}
		}

		commit := models.Commit{
			LogMessage: "Merged from " + source.Name,
			Committer:  committer,
			DateTime:   time.Now(),
			BranchID:   target.ID,
		}

		if err := tx.Create(&commit).Error; err != nil {
			return err
		}

		if pr.IssueID != nil {
			if err := tx.Model(&models.Issue{}).
				Where("id = ?", *pr.IssueID).
				Update("state", models.IssueClosed).Error; err != nil {
				return err
			}
		}

		return tx.Model(pr).Updates(map[string]interface{}{
			"state":     models.PullRequestMerged,
			"source_id": nil,
			"target_id": nil,
		}).Error
	})

	if err != nil {
		return err
	}

	pr.State = models.PullRequestMerged
	pr.SourceID = nil
	pr.TargetID = nil

	return nil
}

func loadBranchPair(dbc *gorm.DB, pr *models.PullRequest) (*models.Branch, *models.Branch, error) {
	if pr.SourceID == nil {
		return nil, nil, validation("Source branch must be chosen")
	}

	if pr.TargetID == nil {
		return nil, nil, validation("Target branch must be chosen")
	}

	var source, target models.Branch

	if err := dbc.First(&source, *pr.SourceID).Error; err != nil {
		return nil, nil, err
	}

	if err := dbc.First(&target, *pr.TargetID).Error; err != nil {
		return nil, nil, err
	}

	return &source, &target, nil
}
