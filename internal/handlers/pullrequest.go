package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gitgrove-dev/gitgrove/db"
	"github.com/gitgrove-dev/gitgrove/internal/models"
	"github.com/gitgrove-dev/gitgrove/internal/utils"
	"github.com/gitgrove-dev/gitgrove/internal/vcs"
	"gorm.io/gorm"
)

type PullRequestRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	SourceBranch string `json:"source_branch"`
	TargetBranch string `json:"target_branch"`
	IssueTitle   string `json:"issue_title"`
}

type PullRequestResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	State       string `json:"state"`
	ProjectID   uint   `json:"project_id"`
	SourceID    *uint  `json:"source_id"`
	TargetID    *uint  `json:"target_id"`
	IssueID     *uint  `json:"issue_id"`
}

func pullRequestResponse(pr *models.PullRequest) PullRequestResponse {
	return PullRequestResponse{
		ID:          pr.ID,
		Title:       pr.Title,
		Description: pr.Description,
		State:       pr.State,
		ProjectID:   pr.ProjectID,
		SourceID:    pr.SourceID,
		TargetID:    pr.TargetID,
		IssueID:     pr.IssueID,
	}
}

func findPullRequest(ctx *gin.Context) (*models.PullRequest, bool) {
	var pr models.PullRequest

	if err := db.DB.First(&pr, "id = ?", ctx.Param("pr_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Pull request not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pull request"})
		}
		return nil, false
	}

	return &pr, true
}

// resolvePullRequestRefs turns branch names and an optional issue title into
// entities of the given project. Empty names resolve to nil so the core
// reports the matching validation message.
func resolvePullRequestRefs(ctx *gin.Context, project *models.Project, body *PullRequestRequest) (*models.Branch, *models.Branch, *models.Issue, bool) {
	var source, target *models.Branch
	var issue *models.Issue

	if body.SourceBranch != "" {
		var branch models.Branch

		if err := db.DB.Where("project_id = ? AND name = ?", project.ID, body.SourceBranch).First(&branch).Error; err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Source branch not found"})
			return nil, nil, nil, false
		}

		source = &branch
	}

	if body.TargetBranch != "" {
		var branch models.Branch

		if err := db.DB.Where("project_id = ? AND name = ?", project.ID, body.TargetBranch).First(&branch).Error; err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Target branch not found"})
			return nil, nil, nil, false
		}

		target = &branch
	}

	if body.IssueTitle != "" && body.IssueTitle != "None" {
		var found models.Issue

		if err := db.DB.Where("project_id = ? AND title = ?", project.ID, body.IssueTitle).First(&found).Error; err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
			return nil, nil, nil, false
		}

		issue = &found
	}

	return source, target, issue, true
}

func ListPullRequests(ctx *gin.Context) {
	project, ok := findProject(ctx)

	if !ok {
		return
	}

	query := db.DB.Where("project_id = ?", project.ID)

	if state := ctx.Query("state"); state != "" {
		query = query.Where("state = ?", state)
	}

	var prs []models.PullRequest

	if err := query.Order("id").Find(&prs).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pull requests"})
		return
	}

	response := make([]PullRequestResponse, 0, len(prs))

	for i := range prs {
		response = append(response, pullRequestResponse(&prs[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreatePullRequest(ctx *gin.Context) {
	project, ok := findProject(ctx)

	if !ok {
		return
	}

	if !requireEdit(ctx, project) {
		return
	}

	var body PullRequestRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	source, target, issue, ok := resolvePullRequestRefs(ctx, project, &body)

	if !ok {
		return
	}

	pr, err := vcs.CreatePullRequest(db.DB, project, body.Title, body.Description, source, target, issue)

	if err != nil {
		respondCoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, pullRequestResponse(pr))
}

func EditPullRequest(ctx *gin.Context) {
	pr, ok := findPullRequest(ctx)

	if !ok {
		return
	}

	var project models.Project

	if err := db.DB.First(&project, pr.ProjectID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}

	if !requireEdit(ctx, &project) {
		return
	}

	var body PullRequestRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	source, target, issue, ok := resolvePullRequestRefs(ctx, &project, &body)

	if !ok {
		return
	}

	if err := vcs.EditPullRequest(db.DB, pr, body.Title, body.Description, source, target, issue); err != nil {
		respondCoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, pullRequestResponse(pr))
}

func TogglePullRequestState(ctx *gin.Context) {
	pr, ok := findPullRequest(ctx)

	if !ok {
		return
	}

	var project models.Project

	if err := db.DB.First(&project, pr.ProjectID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}

	if !requireEdit(ctx, &project) {
		return
	}

	if err := vcs.ToggleState(db.DB, pr); err != nil {
		respondCoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, pullRequestResponse(pr))
}

func GetMergeChanges(ctx *gin.Context) {
	pr, ok := findPullRequest(ctx)

	if !ok {
		return
	}

	differences, err := vcs.GetDifferences(db.DB, pr)

	if err != nil {
		respondCoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"changes": differences})
}

func MergePullRequest(ctx *gin.Context) {
	pr, ok := findPullRequest(ctx)

	if !ok {
		return
	}

	var project models.Project

	if err := db.DB.First(&project, pr.ProjectID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}

	if !requireEdit(ctx, &project) {
		return
	}

	username, err := utils.GetCurrentUsername(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := vcs.MergePullRequest(db.DB, pr, username); err != nil {
		respondCoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, pullRequestResponse(pr))
}
