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

type BranchRequest struct {
	Name string `json:"name"`
}

type BranchResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	ProjectID uint   `json:"project_id"`
	IsDefault bool   `json:"is_default"`
}

type CommitResponse struct {
	ID         uint   `json:"id"`
	LogMessage string `json:"log_message"`
	Committer  string `json:"committer"`
	DateTime   string `json:"date_time"`
}

func branchResponse(branch *models.Branch) BranchResponse {
	return BranchResponse{
		ID:        branch.ID,
		Name:      branch.Name,
		ProjectID: branch.ProjectID,
		IsDefault: branch.IsDefault,
	}
}

func findBranch(ctx *gin.Context) (*models.Branch, bool) {
	var branch models.Branch

	if err := db.DB.First(&branch, "id = ?", ctx.Param("branch_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve branch"})
		}
		return nil, false
	}

	return &branch, true
}

func requireEdit(ctx *gin.Context, project *models.Project) bool {
	username, err := utils.GetCurrentUsername(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return false
	}

	if !vcs.CanEdit(db.DB, project, username) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return false
	}

	return true
}

func CreateBranch(ctx *gin.Context) {
	project, ok := findProject(ctx)

	if !ok {
		return
	}

	if !requireEdit(ctx, project) {
		return
	}

	var body BranchRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	branch, err := vcs.CreateBranch(db.DB, project, body.Name)

	if err != nil {
		respondCoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, branchResponse(branch))
}

func RenameBranch(ctx *gin.Context) {
	branch, ok := findBranch(ctx)

	if !ok {
		return
	}

	var project models.Project

	if err := db.DB.First(&project, branch.ProjectID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}

	if !requireEdit(ctx, &project) {
		return
	}

	var body BranchRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	renamed, err := vcs.RenameBranch(db.DB, branch, body.Name)

	if err != nil {
		respondCoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, branchResponse(renamed))
}

// DeleteBranch answers 404 rather than 403 for non-participants: the core
// permission check doubles as an existence filter.
func DeleteBranch(ctx *gin.Context) {
	branch, ok := findBranch(ctx)

	if !ok {
		return
	}

	username, err := utils.GetCurrentUsername(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := vcs.DeleteBranch(db.DB, branch, username); err != nil {
		respondCoreError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func SetDefaultBranch(ctx *gin.Context) {
	branch, ok := findBranch(ctx)

	if !ok {
		return
	}

	var project models.Project

	if err := db.DB.First(&project, branch.ProjectID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}

	if !requireEdit(ctx, &project) {
		return
	}

	if err := vcs.SetDefault(db.DB, branch); err != nil {
		respondCoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, branchResponse(branch))
}

func CopyBranch(ctx *gin.Context) {
	branch, ok := findBranch(ctx)

	if !ok {
		return
	}

	var project models.Project

	if err := db.DB.First(&project, branch.ProjectID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}

	if !requireEdit(ctx, &project) {
		return
	}

	var body BranchRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	copied, err := vcs.CopyBranch(db.DB, branch, body.Name)

	if err != nil {
		respondCoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, branchResponse(copied))
}

func GetCommitHistory(ctx *gin.Context) {
	branch, ok := findBranch(ctx)

	if !ok {
		return
	}

	commits, err := vcs.GetCommits(db.DB, branch)

	if err != nil {
		respondCoreError(ctx, err)
		return
	}

	response := make([]CommitResponse, 0, len(commits))

	for _, commit := range commits {
		response = append(response, CommitResponse{
			ID:         commit.ID,
			LogMessage: commit.LogMessage,
			Committer:  commit.Committer,
			DateTime:   commit.DateTime.UTC().Format("2006-01-02 15:04:05"),
		})
	}

	ctx.JSON(http.StatusOK, response)
}
