package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"careconnect-server/internal/service"
	"careconnect-server/internal/utils"
)

// respondServiceError maps the service error taxonomy to HTTP statuses.
// Unknown errors become an opaque 500, never a stack trace.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrUnsupportedFileType),
		errors.Is(err, service.ErrDuplicateEmail):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		utils.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, service.ErrNoCaregiverAvailable),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrConflict):
		utils.Conflict(c, err.Error())
	default:
		utils.InternalServerError(c, "An unexpected error occurred")
	}
}
