package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gitgrove-dev/gitgrove/internal/vcs"
	"gorm.io/gorm"
)

// respondCoreError maps core errors onto HTTP responses. Permission failures
// answer 404 on purpose: non-participants must not learn that the entity
// exists.
func respondCoreError(ctx *gin.Context, err error) {
	var ve *vcs.ValidationError

	switch {
	case errors.As(err, &ve):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": ve.Message})
	case errors.Is(err, vcs.ErrPermissionDenied):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, vcs.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		log.Printf("Unhandled core error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
