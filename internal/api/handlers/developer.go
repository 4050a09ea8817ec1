package handlers

import (
	"net/http"
	"strconv"

	"teammate-backend/internal/auth"
	apperrors "teammate-backend/internal/errors"
	"teammate-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DeveloperHandler handles HTTP requests for developer accounts
type DeveloperHandler struct {
	developerService *service.DeveloperService
}

// NewDeveloperHandler creates a new developer handler
func NewDeveloperHandler(developerService *service.DeveloperService) *DeveloperHandler {
	return &DeveloperHandler{
		developerService: developerService,
	}
}

// Register creates a new developer account
// @Summary Register a developer
// @Description Create a developer account with username, email, password and position
// @Tags developers
// @Accept json
// @Produce json
// @Param developer body service.RegisterDeveloperRequest true "Registration data"
// @Success 201 {object} service.DeveloperResponse "Successfully registered developer"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 409 {object} ErrorResponse "Username or email already taken"
// @Router /developers [post]
func (h *DeveloperHandler) Register(c *gin.Context) {
	var req service.RegisterDeveloperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	developer, err := h.developerService.Register(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, developer)
}

// GetDeveloper retrieves a developer profile
// @Summary Get developer by ID
// @Description Get a developer profile with the live average score of their projects
// @Tags developers
// @Accept json
// @Produce json
// @Param id path string true "Developer ID (UUID)"
// @Success 200 {object} service.DeveloperResponse "Successfully retrieved developer"
// @Failure 400 {object} ErrorResponse "Invalid developer ID"
// @Failure 404 {object} ErrorResponse "Developer not found"
// @Router /developers/{id} [get]
func (h *DeveloperHandler) GetDeveloper(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid developer ID"})
		return
	}

	developer, err := h.developerService.GetProfile(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, developer)
}

// GetCurrentDeveloper retrieves the authenticated developer's profile
// @Summary Get own profile
// @Description Get the authenticated developer's profile
// @Tags developers
// @Accept json
// @Produce json
// @Success 200 {object} service.DeveloperResponse "Successfully retrieved profile"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Security BearerAuth
// @Router /developers/me [get]
func (h *DeveloperHandler) GetCurrentDeveloper(c *gin.Context) {
	developerID, ok := auth.GetDeveloperID(c)
	if !ok {
		respondError(c, apperrors.ErrNotAuthenticated)
		return
	}

	developer, err := h.developerService.GetProfile(developerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, developer)
}

// UpdateCurrentDeveloper updates the authenticated developer's profile
// @Summary Update own profile
// @Description Update the authenticated developer's position, tech stack or contact links
// @Tags developers
// @Accept json
// @Produce json
// @Param developer body service.UpdateDeveloperRequest true "Fields to update"
// @Success 200 {object} service.DeveloperResponse "Successfully updated profile"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Security BearerAuth
// @Router /developers/me [patch]
func (h *DeveloperHandler) UpdateCurrentDeveloper(c *gin.Context) {
	developerID, ok := auth.GetDeveloperID(c)
	if !ok {
		respondError(c, apperrors.ErrNotAuthenticated)
		return
	}

	var req service.UpdateDeveloperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	developer, err := h.developerService.UpdateProfile(developerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, developer)
}

// SearchDevelopers searches developers by username
// @Summary Search developers
// @Description Search developers by username fragment, paginated
// @Tags developers
// @Accept json
// @Produce json
// @Param q query string false "Username fragment"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} service.DeveloperListResponse "Successfully retrieved developers"
// @Router /developers [get]
func (h *DeveloperHandler) SearchDevelopers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	developers, err := h.developerService.Search(c.Query("q"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, developers)
}

// Leaderboard lists the top developers by average project score
// @Summary Developer leaderboard
// @Description Get the top developers ranked by the average score of their projects
// @Tags developers
// @Accept json
// @Produce json
// @Param limit query int false "Number of entries" default(10)
// @Success 200 {array} service.DeveloperResponse "Successfully retrieved leaderboard"
// @Router /developers/leaderboard [get]
func (h *DeveloperHandler) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	developers, err := h.developerService.Leaderboard(limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, developers)
}
