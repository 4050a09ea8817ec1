package handlers

import (
	"net/http"
	"strconv"

	"teammate-backend/internal/auth"
	"teammate-backend/internal/database/models"
	apperrors "teammate-backend/internal/errors"
	"teammate-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProjectHandler handles HTTP requests for projects
type ProjectHandler struct {
	projectService    *service.ProjectService
	permissionService *service.PermissionService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *service.ProjectService, permissionService *service.PermissionService) *ProjectHandler {
	return &ProjectHandler{
		projectService:    projectService,
		permissionService: permissionService,
	}
}

// CreateProject creates a new project
// @Summary Create a new project
// @Description Create a project owned by the authenticated developer. The owner is enrolled as a lead member with every capability granted.
// @Tags projects
// @Accept json
// @Produce json
// @Param project body service.CreateProjectRequest true "Project data"
// @Success 201 {object} service.ProjectResponse "Successfully created project"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	developerID, ok := auth.GetDeveloperID(c)
	if !ok {
		respondError(c, apperrors.ErrNotAuthenticated)
		return
	}

	var req service.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	project, err := h.projectService.CreateProject(developerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// GetProject retrieves a project by ID
// @Summary Get project by ID
// @Description Get a specific project with its memberships and open roles
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 200 {object} service.ProjectResponse "Successfully retrieved project"
// @Failure 400 {object} ErrorResponse "Invalid project ID"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid project ID"})
		return
	}

	project, err := h.projectService.GetProject(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// GetProjectByUID retrieves a project by its public UID
// @Summary Get project by UID
// @Description Get a specific project by its short public identifier
// @Tags projects
// @Accept json
// @Produce json
// @Param uid path string true "Project UID"
// @Success 200 {object} service.ProjectResponse "Successfully retrieved project"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /projects/uid/{uid} [get]
func (h *ProjectHandler) GetProjectByUID(c *gin.Context) {
	project, err := h.projectService.GetProjectByUID(c.Param("uid"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// ListProjects lists projects with optional filters
// @Summary List projects
// @Description Get projects filtered by name, domain, stage, recruitment status or owner, paginated
// @Tags projects
// @Accept json
// @Produce json
// @Param name query string false "Filter by name fragment"
// @Param domain query string false "Filter by project domain"
// @Param stage query string false "Filter by development stage"
// @Param open_to_candidates query bool false "Filter by recruitment status"
// @Param owner_id query string false "Filter by owner ID (UUID)"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} service.ProjectListResponse "Successfully retrieved projects"
// @Failure 400 {object} ErrorResponse "Invalid filter parameters"
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	filters := &service.ProjectListFilters{
		Name:   c.Query("name"),
		Domain: c.Query("domain"),
		Stage:  c.Query("stage"),
	}

	if openStr := c.Query("open_to_candidates"); openStr != "" {
		open, err := strconv.ParseBool(openStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid open_to_candidates value"})
			return
		}
		filters.OpenToCandidates = &open
	}
	if ownerStr := c.Query("owner_id"); ownerStr != "" {
		ownerID, err := uuid.Parse(ownerStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid owner ID"})
			return
		}
		filters.OwnerID = &ownerID
	}

	filters.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filters.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	projects, err := h.projectService.ListProjects(filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

// UpdateProject updates a project's descriptive fields
// @Summary Update project info
// @Description Update project name, description, domain or URL. Requires the edit_project_info capability.
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param project body service.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} service.ProjectResponse "Successfully updated project"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 403 {object} ErrorResponse "Permission denied"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [patch]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid project ID"})
		return
	}

	developerID, _ := auth.GetDeveloperID(c)
	if err := h.permissionService.Require(developerID, id, models.CapabilityEditProjectInfo); err != nil {
		respondError(c, err)
		return
	}

	var req service.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	project, err := h.projectService.UpdateProject(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// UpdateStage moves a project to a new development stage
// @Summary Update project stage
// @Description Move the project through its lifecycle. The deployed stage requires a deploy URL. Requires the update_project_stage capability.
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param stage body service.UpdateStageRequest true "New stage"
// @Success 200 {object} service.ProjectResponse "Successfully updated stage"
// @Failure 400 {object} ErrorResponse "Invalid stage or missing deploy URL"
// @Failure 403 {object} ErrorResponse "Permission denied"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{id}/stage [put]
func (h *ProjectHandler) UpdateStage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid project ID"})
		return
	}

	developerID, _ := auth.GetDeveloperID(c)
	if err := h.permissionService.Require(developerID, id, models.CapabilityUpdateProjectStage); err != nil {
		respondError(c, err)
		return
	}

	var req service.UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	project, err := h.projectService.UpdateStage(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject removes a project
// @Summary Delete project
// @Description Delete a project and everything attached to it. Owner only.
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 204 "Successfully deleted project"
// @Failure 403 {object} ErrorResponse "Permission denied"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid project ID"})
		return
	}

	developerID, _ := auth.GetDeveloperID(c)
	if err := h.permissionService.RequireOwner(developerID, id); err != nil {
		respondError(c, err)
		return
	}

	if err := h.projectService.DeleteProject(id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
