package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onewave/qrcheckin-backend/internal/services"
)

// respondError maps service errors onto the HTTP error contract: 400 for
// malformed input and policy rejections, 404 for unknown keys, 409 for an
// already-completed check-in, 500 for store failures. The body is always
// {"message": ...}.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrStaffEditForbidden):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Staff check-in state cannot be edited here"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Participant not found"})
	case errors.Is(err, services.ErrAlreadyCheckedIn):
		c.JSON(http.StatusConflict, gin.H{"message": "Already checked in"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
