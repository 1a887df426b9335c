package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gitgrove-dev/gitgrove/db"
	"github.com/gitgrove-dev/gitgrove/internal/models"
	"github.com/gitgrove-dev/gitgrove/internal/vcs"
)

type CreateMilestoneRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type MilestoneResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	State       string `json:"state"`
	ProjectID   uint   `json:"project_id"`
	Percent     int    `json:"percent"`
}

func ListMilestones(ctx *gin.Context) {
	project, ok := findProject(ctx)

	if !ok {
		return
	}

	query := db.DB.Where("project_id = ?", project.ID)

	if state := ctx.Query("state"); state != "" {
		query = query.Where("state = ?", state)
	}

	var milestones []models.Milestone

	if err := query.Order("id").Find(&milestones).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve milestones"})
		return
	}

	response := make([]MilestoneResponse, 0, len(milestones))

	for i := range milestones {
		percent, err := vcs.MilestonePercent(db.DB, &milestones[i])

		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute milestone progress"})
			return
		}

		response = append(response, MilestoneResponse{
			ID:          milestones[i].ID,
			Title:       milestones[i].Title,
			Description: milestones[i].Description,
			State:       milestones[i].State,
			ProjectID:   milestones[i].ProjectID,
			Percent:     percent,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateMilestone(ctx *gin.Context) {
	project, ok := findProject(ctx)

	if !ok {
		return
	}

	if !requireEdit(ctx, project) {
		return
	}

	var body CreateMilestoneRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	title := strings.TrimSpace(body.Title)

	if title == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Title can't be empty"})
		return
	}

	milestone := models.Milestone{
		Title:       title,
		Description: strings.TrimSpace(body.Description),
		State:       models.MilestoneOpen,
		ProjectID:   project.ID,
	}

	if err := db.DB.Create(&milestone).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create milestone"})
		return
	}

	ctx.JSON(http.StatusCreated, MilestoneResponse{
		ID:          milestone.ID,
		Title:       milestone.Title,
		Description: milestone.Description,
		State:       milestone.State,
		ProjectID:   milestone.ProjectID,
		Percent:     0,
	})
}
