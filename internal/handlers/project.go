package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gitgrove-dev/gitgrove/db"
	"github.com/gitgrove-dev/gitgrove/internal/cache"
	"github.com/gitgrove-dev/gitgrove/internal/models"
	"github.com/gitgrove-dev/gitgrove/internal/utils"
	"github.com/gitgrove-dev/gitgrove/internal/vcs"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	Title string `json:"title" binding:"required"`
}

type ProjectResponse struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	LeadID       uint   `json:"lead_id"`
	ForkedFromID *uint  `json:"forked_from_id,omitempty"`
}

type BranchSummary struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
}

type ProjectOverviewResponse struct {
	Project  ProjectResponse `json:"project"`
	Lead     string          `json:"lead"`
	Branches []BranchSummary `json:"branches"`
}

func projectResponse(project *models.Project) ProjectResponse {
	return ProjectResponse{
		ID:           project.ID,
		Title:        project.Title,
		LeadID:       project.LeadID,
		ForkedFromID: project.ForkedFromID,
	}
}

func findProject(ctx *gin.Context) (*models.Project, bool) {
	var project models.Project

	if err := db.DB.First(&project, "id = ?", ctx.Param("project_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return nil, false
	}

	return &project, true
}

func CreateProject(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	title := strings.TrimSpace(body.Title)

	if title == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Project title can't be empty"})
		return
	}

	var count int64

	if err := db.DB.Model(&models.Project{}).
		Where("lead_id = ? AND title = ?", userID, title).
		Count(&count).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if count > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Project title already exists"})
		return
	}

	project := models.Project{
		Title:  title,
		LeadID: userID,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	ctx.JSON(http.StatusCreated, projectResponse(&project))
}

func ListProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var projects []models.Project

	if err := db.DB.Where("lead_id = ?", userID).Find(&projects).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]ProjectResponse, 0, len(projects))

	for i := range projects {
		response = append(response, projectResponse(&projects[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

// GetProject serves the project overview, from Redis when a fresh copy is
// cached. The notification fan-out invalidates the entry on every change.
func GetProject(ctx *gin.Context) {
	project, ok := findProject(ctx)

	if !ok {
		return
	}

	if payload, hit := cache.GetProjectOverview(ctx.Request.Context(), project.ID); hit {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", []byte(payload))
		return
	}

	var lead models.User

	if err := db.DB.First(&lead, project.LeadID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}

	var branches []models.Branch

	if err := db.DB.Where("project_id = ?", project.ID).Order("id").Find(&branches).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve branches"})
		return
	}

	overview := ProjectOverviewResponse{
		Project:  projectResponse(project),
		Lead:     lead.Username,
		Branches: make([]BranchSummary, 0, len(branches)),
	}

	for _, branch := range branches {
		overview.Branches = append(overview.Branches, BranchSummary{
			ID:        branch.ID,
			Name:      branch.Name,
			IsDefault: branch.IsDefault,
		})
	}

	if payload, err := json.Marshal(overview); err == nil {
		cache.SetProjectOverview(ctx.Request.Context(), project.ID, string(payload))
	}

	ctx.JSON(http.StatusOK, overview)
}

func DeleteProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var project models.Project

	if err := db.DB.Where("id = ? AND lead_id = ?", ctx.Param("project_id"), userID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	if err := db.DB.Delete(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	cache.InvalidateProject(project.ID)
	ctx.Status(http.StatusNoContent)
}

func ForkProject(ctx *gin.Context) {
	project, ok := findProject(ctx)

	if !ok {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, userID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	fork, err := vcs.ForkProject(db.DB, project, &user)

	if err != nil {
		respondCoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, projectResponse(fork))
}

type AddContributorRequest struct {
	Username string `json:"username" binding:"required"`
}

func AddContributor(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var project models.Project

	if err := db.DB.Where("id = ? AND lead_id = ?", ctx.Param("project_id"), userID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	var body AddContributorRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var user models.User

	if err := db.DB.Where("username = ?", body.Username).First(&user).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	contributor := models.Contributor{UserID: user.ID, ProjectID: project.ID}

	if err := db.DB.Where(&contributor).FirstOrCreate(&contributor).Error; err != nil {
		log.Printf("Failed to add contributor: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func RemoveContributor(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var project models.Project

	if err := db.DB.Where("id = ? AND lead_id = ?", ctx.Param("project_id"), userID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	var user models.User

	if err := db.DB.Where("username = ?", ctx.Param("username")).First(&user).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := db.DB.Where("project_id = ? AND user_id = ?", project.ID, user.ID).
		Delete(&models.Contributor{}).Error; err != nil {
		log.Printf("Failed to remove contributor: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func AddStar(ctx *gin.Context) {
	project, ok := findProject(ctx)

	if !ok {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	star := models.StarredProject{UserID: userID, ProjectID: project.ID}

	if err := db.DB.Where(&star).FirstOrCreate(&star).Error; err != nil {
		log.Printf("Failed to star project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func RemoveStar(ctx *gin.Context) {
	project, ok := findProject(ctx)

	if !ok {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := db.DB.Where("project_id = ? AND user_id = ?", project.ID, userID).
		Delete(&models.StarredProject{}).Error; err != nil {
		log.Printf("Failed to unstar project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func ListStarred(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var projects []models.Project

	err = db.DB.
		Joins("JOIN starred_projects ON starred_projects.project_id = projects.id").
		Where("starred_projects.user_id = ?", userID).
		Order("projects.id").
		Find(&projects).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve starred projects"})
		return
	}

	response := make([]ProjectResponse, 0, len(projects))

	for i := range projects {
		response = append(response, projectResponse(&projects[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func AddWatch(ctx *gin.Context) {
	project, ok := findProject(ctx)

	if !ok {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	watch := models.WatchedProject{UserID: userID, ProjectID: project.ID}

	if err := db.DB.Where(&watch).FirstOrCreate(&watch).Error; err != nil {
		log.Printf("Failed to watch project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func RemoveWatch(ctx *gin.Context) {
	project, ok := findProject(ctx)

	if !ok {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := db.DB.Where("project_id = ? AND user_id = ?", project.ID, userID).
		Delete(&models.WatchedProject{}).Error; err != nil {
		log.Printf("Failed to unwatch project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

type UpdateRecordResponse struct {
	ID        uint   `json:"id"`
	ProjectID uint   `json:"project_id"`
	Message   string `json:"message"`
}

// ListUpdates returns the caller's update feed, newest first.
func ListUpdates(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var records []models.UpdateRecord

	if err := db.DB.Where("user_id = ?", userID).Order("id DESC").Find(&records).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve updates"})
		return
	}

	response := make([]UpdateRecordResponse, 0, len(records))

	for _, record := range records {
		response = append(response, UpdateRecordResponse{
			ID:        record.ID,
			ProjectID: record.ProjectID,
			Message:   record.Message,
		})
	}

	ctx.JSON(http.StatusOK, response)
}
