package handlers

import (
	"errors"
	"net/http"
	"strings"

	apperrors "teammate-backend/internal/errors"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error string `json:"error" example:"error message"`
}

// respondError maps a service error to an HTTP status code: not-found to
// 404, conflicts to 409, validation to 400, authentication to 401,
// authorization to 403, anything else to 500.
func respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case apperrors.IsAlreadyExists(err):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case apperrors.IsValidation(err) || isRequestValidation(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case apperrors.IsAuthentication(err):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case apperrors.IsAuthorization(err):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrApplicationProcessed),
		errors.Is(err, apperrors.ErrAlreadyMember),
		errors.Is(err, apperrors.ErrCannotApplyOwn),
		errors.Is(err, apperrors.ErrCannotRateOwn),
		errors.Is(err, apperrors.ErrOwnerMembership):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrProjectNotDeployed),
		errors.Is(err, apperrors.ErrAssigneeNotMember),
		errors.Is(err, apperrors.ErrInvalidStage),
		errors.Is(err, apperrors.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}

// isRequestValidation detects request-struct validation failures wrapped by
// the services
func isRequestValidation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "validation failed")
}
