package handlers

import (
	"net/http"

	"teammate-backend/internal/auth"
	apperrors "teammate-backend/internal/errors"
	"teammate-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RatingHandler handles HTTP requests for project ratings
type RatingHandler struct {
	ratingService *service.RatingService
}

// NewRatingHandler creates a new rating handler
func NewRatingHandler(ratingService *service.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

// RateProject rates a deployed project
// @Summary Rate a project
// @Description Rate a deployed project from 1 to 5. Owners and members cannot rate their own project, and each developer rates a project once. The project's average score is recomputed immediately.
// @Tags ratings
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param rating body service.CreateRatingRequest true "Rating data"
// @Success 201 {object} service.RatingResponse "Successfully created rating"
// @Failure 400 {object} ErrorResponse "Invalid score or project not deployed"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Failure 409 {object} ErrorResponse "Already rated or rating own project"
// @Security BearerAuth
// @Router /projects/{id}/ratings [post]
func (h *RatingHandler) RateProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid project ID"})
		return
	}

	developerID, ok := auth.GetDeveloperID(c)
	if !ok {
		respondError(c, apperrors.ErrNotAuthenticated)
		return
	}

	var req service.CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	rating, err := h.ratingService.RateProject(developerID, projectID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rating)
}

// ListRatings lists the ratings of a project
// @Summary List project ratings
// @Description Get all ratings for a project with rater usernames
// @Tags ratings
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 200 {array} service.RatingResponse "Successfully retrieved ratings"
// @Failure 400 {object} ErrorResponse "Invalid project ID"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /projects/{id}/ratings [get]
func (h *RatingHandler) ListRatings(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid project ID"})
		return
	}

	ratings, err := h.ratingService.ListByProject(projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ratings)
}
