package handlers

import (
	"net/http"

	"teammate-backend/internal/auth"
	"teammate-backend/internal/database/models"
	"teammate-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OpenRoleHandler handles HTTP requests for open-role postings
type OpenRoleHandler struct {
	openRoleService   *service.OpenRoleService
	permissionService *service.PermissionService
}

// NewOpenRoleHandler creates a new open-role handler
func NewOpenRoleHandler(openRoleService *service.OpenRoleService, permissionService *service.PermissionService) *OpenRoleHandler {
	return &OpenRoleHandler{
		openRoleService:   openRoleService,
		permissionService: permissionService,
	}
}

// CreateOpenRole posts a new open role on a project
// @Summary Post an open role
// @Description Create a recruitment posting. Requires the manage_open_roles capability. The project's recruitment flag is recomputed immediately.
// @Tags open-roles
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param role body service.CreateOpenRoleRequest true "Open role data"
// @Success 201 {object} service.OpenRoleResponse "Successfully created open role"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 403 {object} ErrorResponse "Permission denied"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{id}/open-roles [post]
func (h *OpenRoleHandler) CreateOpenRole(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid project ID"})
		return
	}

	developerID, _ := auth.GetDeveloperID(c)
	if err := h.permissionService.Require(developerID, projectID, models.CapabilityManageOpenRoles); err != nil {
		respondError(c, err)
		return
	}

	var req service.CreateOpenRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	role, err := h.openRoleService.CreateOpenRole(projectID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, role)
}

// ListOpenRoles lists the open roles of a project
// @Summary List open roles
// @Description Get all recruitment postings for a project
// @Tags open-roles
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 200 {array} service.OpenRoleResponse "Successfully retrieved open roles"
// @Failure 400 {object} ErrorResponse "Invalid project ID"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /projects/{id}/open-roles [get]
func (h *OpenRoleHandler) ListOpenRoles(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid project ID"})
		return
	}

	roles, err := h.openRoleService.ListByProject(projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, roles)
}

// DeleteOpenRole removes an open role
// @Summary Delete an open role
// @Description Remove a recruitment posting. Requires the manage_open_roles capability. The project's recruitment flag is recomputed immediately.
// @Tags open-roles
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param roleId path string true "Open role ID (UUID)"
// @Success 204 "Successfully deleted open role"
// @Failure 403 {object} ErrorResponse "Permission denied"
// @Failure 404 {object} ErrorResponse "Open role not found"
// @Security BearerAuth
// @Router /projects/{id}/open-roles/{roleId} [delete]
func (h *OpenRoleHandler) DeleteOpenRole(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid project ID"})
		return
	}
	roleID, err := uuid.Parse(c.Param("roleId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid open role ID"})
		return
	}

	developerID, _ := auth.GetDeveloperID(c)
	if err := h.permissionService.Require(developerID, projectID, models.CapabilityManageOpenRoles); err != nil {
		respondError(c, err)
		return
	}

	if err := h.openRoleService.DeleteOpenRole(projectID, roleID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
