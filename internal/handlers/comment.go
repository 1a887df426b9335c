package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gitgrove-dev/gitgrove/db"
	"github.com/gitgrove-dev/gitgrove/internal/models"
	"github.com/gitgrove-dev/gitgrove/internal/notify"
	"github.com/gitgrove-dev/gitgrove/internal/utils"
	"gorm.io/gorm"
)

type AddCommentRequest struct {
	Text string `json:"text"`
}

type CommentResponse struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	Author    string `json:"author"`
	ProjectID uint   `json:"project_id"`
}

func ListComments(ctx *gin.Context) {
	project, ok := findProject(ctx)

	if !ok {
		return
	}

	var comments []models.Comment

	err := db.DB.Preload("User").
		Where("project_id = ?", project.ID).
		Order("id").
		Find(&comments).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	response := make([]CommentResponse, 0, len(comments))

	for _, comment := range comments {
		response = append(response, CommentResponse{
			ID:        comment.ID,
			Text:      comment.Text,
			Author:    comment.User.Username,
			ProjectID: comment.ProjectID,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func AddComment(ctx *gin.Context) {
	project, ok := findProject(ctx)

	if !ok {
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body AddCommentRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	text := strings.TrimSpace(body.Text)

	if text == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "You can't submit an empty comment"})
		return
	}

	comment := models.Comment{
		Text:       text,
		LastUpdate: time.Now(),
		ProjectID:  project.ID,
		UserID:     currentUser.ID,
	}

	if err := db.DB.Create(&comment).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	notify.Watchers(db.DB, project, "Comment added in "+project.Title+" by "+currentUser.Username)

	ctx.JSON(http.StatusCreated, CommentResponse{
		ID:        comment.ID,
		Text:      comment.Text,
		Author:    currentUser.Username,
		ProjectID: comment.ProjectID,
	})
}

// ToggleReaction adds the reaction when the user has none on the comment,
// removes it when the same type is sent again and swaps it otherwise.
func ToggleReaction(ctx *gin.Context) {
	var comment models.Comment

	if err := db.DB.First(&comment, "id = ?", ctx.Param("comment_id")).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	reactionType := ctx.Param("reaction_type")

	var project models.Project

	if err := db.DB.First(&project, comment.ProjectID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}

	commentID := strconv.FormatUint(uint64(comment.ID), 10)

	var existing models.Reaction

	err = db.DB.Where("comment_id = ? AND user_id = ?", comment.ID, currentUser.ID).First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		reaction := models.Reaction{
			Type:      reactionType,
			CommentID: comment.ID,
			UserID:    currentUser.ID,
		}

		if err := db.DB.Create(&reaction).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add reaction"})
			return
		}

		notify.Watchers(db.DB, &project, "Reaction added for comment "+commentID+" by "+currentUser.Username)
		ctx.Status(http.StatusCreated)
		return
	}

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reaction"})
		return
	}

	if existing.Type == reactionType {
		if err := db.DB.Delete(&existing).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove reaction"})
			return
		}

		notify.Watchers(db.DB, &project, "Reaction deleted for comment "+commentID+" by "+currentUser.Username)
		ctx.Status(http.StatusNoContent)
		return
	}

	existing.Type = reactionType

	if err := db.DB.Save(&existing).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reaction"})
		return
	}

	notify.Watchers(db.DB, &project, "Reaction changed for comment in "+commentID+" by "+currentUser.Username)
	ctx.Status(http.StatusOK)
}
