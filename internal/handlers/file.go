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

type FileRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type FileResponse struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	BranchID uint   `json:"branch_id"`
}

func fileResponse(file *models.File) FileResponse {
	return FileResponse{
		ID:       file.ID,
		Title:    file.Title,
		Text:     file.Text,
		BranchID: file.BranchID,
	}
}

func findFile(ctx *gin.Context) (*models.File, bool) {
	var file models.File

	if err := db.DB.First(&file, "id = ?", ctx.Param("file_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve file"})
		}
		return nil, false
	}

	return &file, true
}

func fileProject(ctx *gin.Context, branchID uint) (*models.Project, *models.Branch, bool) {
	var branch models.Branch

	if err := db.DB.First(&branch, branchID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve branch"})
		return nil, nil, false
	}

	var project models.Project

	if err := db.DB.First(&project, branch.ProjectID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return nil, nil, false
	}

	return &project, &branch, true
}

func ListFiles(ctx *gin.Context) {
	branch, ok := findBranch(ctx)

	if !ok {
		return
	}

	files, err := vcs.GetFiles(db.DB, branch)

	if err != nil {
		respondCoreError(ctx, err)
		return
	}

	response := make([]FileResponse, 0, len(files))

	for i := range files {
		response = append(response, fileResponse(&files[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetFile(ctx *gin.Context) {
	file, ok := findFile(ctx)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, fileResponse(file))
}

func AddFile(ctx *gin.Context) {
	branch, ok := findBranch(ctx)

	if !ok {
		return
	}

	project, _, ok := fileProject(ctx, branch.ID)

	if !ok {
		return
	}

	if !requireEdit(ctx, project) {
		return
	}

	var body FileRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	username, err := utils.GetCurrentUsername(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	file, err := vcs.AddFile(db.DB, branch, body.Title, body.Text, username)

	if err != nil {
		respondCoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, fileResponse(file))
}

func EditFile(ctx *gin.Context) {
	file, ok := findFile(ctx)

	if !ok {
		return
	}

	project, _, ok := fileProject(ctx, file.BranchID)

	if !ok {
		return
	}

	if !requireEdit(ctx, project) {
		return
	}

	var body FileRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	username, err := utils.GetCurrentUsername(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	edited, err := vcs.EditFile(db.DB, file, body.Title, body.Text, username)

	if err != nil {
		respondCoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, fileResponse(edited))
}

func DeleteFile(ctx *gin.Context) {
	file, ok := findFile(ctx)

	if !ok {
		return
	}

	project, _, ok := fileProject(ctx, file.BranchID)

	if !ok {
		return
	}

	if !requireEdit(ctx, project) {
		return
	}

	username, err := utils.GetCurrentUsername(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := vcs.DeleteFile(db.DB, file, username); err != nil {
		respondCoreError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
