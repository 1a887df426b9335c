package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gitgrove-dev/gitgrove/db"
	"github.com/gitgrove-dev/gitgrove/internal/models"
)

type CreateIssueRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	MilestoneTitle string `json:"milestone_title"`
	Assignee       string `json:"assignee"`
}

type IssueResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	State       string `json:"state"`
	ProjectID   uint   `json:"project_id"`
	MilestoneID *uint  `json:"milestone_id"`
	AssigneeID  *uint  `json:"assignee_id"`
}

func issueResponse(issue *models.Issue) IssueResponse {
	return IssueResponse{
		ID:          issue.ID,
		Title:       issue.Title,
		Description: issue.Description,
		State:       issue.State,
		ProjectID:   issue.ProjectID,
		MilestoneID: issue.MilestoneID,
		AssigneeID:  issue.AssigneeID,
	}
}

func ListIssues(ctx *gin.Context) {
	project, ok := findProject(ctx)

	if !ok {
		return
	}

	query := db.DB.Where("project_id = ?", project.ID)

	if state := ctx.Query("state"); state != "" {
		query = query.Where("state = ?", state)
	}

	var issues []models.Issue

	if err := query.Order("id").Find(&issues).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}

	response := make([]IssueResponse, 0, len(issues))

	for i := range issues {
		response = append(response, issueResponse(&issues[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateIssue(ctx *gin.Context) {
	project, ok := findProject(ctx)

	if !ok {
		return
	}

	var body CreateIssueRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	title := strings.TrimSpace(body.Title)

	if title == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Title can't be empty"})
		return
	}

	var count int64

	if err := db.DB.Model(&models.Issue{}).
		Where("project_id = ? AND title = ?", project.ID, title).
		Count(&count).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if count > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Issue with given title already exists"})
		return
	}

	issue := models.Issue{
		Title:       title,
		Description: strings.TrimSpace(body.Description),
		State:       models.IssueOpen,
		ProjectID:   project.ID,
	}

	if body.MilestoneTitle != "" && body.MilestoneTitle != "None" {
		var milestone models.Milestone

		if err := db.DB.Where("project_id = ? AND title = ?", project.ID, body.MilestoneTitle).First(&milestone).Error; err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Milestone not found"})
			return
		}

		issue.MilestoneID = &milestone.ID
	}

	if body.Assignee != "" && body.Assignee != "None" {
		var assignee models.User

		if err := db.DB.Where("username = ?", body.Assignee).First(&assignee).Error; err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		issue.AssigneeID = &assignee.ID
	}

	if err := db.DB.Create(&issue).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create issue"})
		return
	}

	ctx.JSON(http.StatusCreated, issueResponse(&issue))
}

func ToggleIssueState(ctx *gin.Context) {
	var issue models.Issue

	if err := db.DB.First(&issue, "id = ?", ctx.Param("issue_id")).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}

	if issue.State == models.IssueOpen {
		issue.State = models.IssueClosed
	} else {
		issue.State = models.IssueOpen
	}

	if err := db.DB.Save(&issue).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
		return
	}

	ctx.JSON(http.StatusOK, issueResponse(&issue))
}
