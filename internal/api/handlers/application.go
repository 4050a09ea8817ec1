package handlers

import (
	"net/http"

	"teammate-backend/internal/auth"
	"teammate-backend/internal/database/models"
	apperrors "teammate-backend/internal/errors"
	"teammate-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ApplicationHandler handles HTTP requests for project applications
type ApplicationHandler struct {
	applicationService *service.ApplicationService
	permissionService  *service.PermissionService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(applicationService *service.ApplicationService, permissionService *service.PermissionService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
		permissionService:  permissionService,
	}
}

// Apply submits an application to an open role
// @Summary Apply to an open role
// @Description Submit an application for an open role on a project. Owners and current members cannot apply; one pending application per role is allowed.
// @Tags applications
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param application body service.ApplyRequest true "Application data"
// @Success 201 {object} service.ApplicationResponse "Successfully submitted application"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 404 {object} ErrorResponse "Project or open role not found"
// @Failure 409 {object} ErrorResponse "Already a member or already applied"
// @Security BearerAuth
// @Router /projects/{id}/applications [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
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

	var req service.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	application, err := h.applicationService.Apply(developerID, projectID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, application)
}

// ListApplications lists the applications for a project
// @Summary List project applications
// @Description Get all applications for a project, pending and processed. Requires the manage_open_roles capability (the owner always has it).
// @Tags applications
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 200 {array} service.ApplicationResponse "Successfully retrieved applications"
// @Failure 403 {object} ErrorResponse "Permission denied"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{id}/applications [get]
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
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

	applications, err := h.applicationService.ListByProject(projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, applications)
}

// ApproveApplication accepts a pending application
// @Summary Approve an application
// @Description Accept a pending application, enrolling the applicant with the open role's role name. Requires the manage_open_roles capability (the owner always has it).
// @Tags applications
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param applicationId path string true "Application ID (UUID)"
// @Success 200 {object} service.ApplicationResponse "Successfully approved application"
// @Failure 403 {object} ErrorResponse "Permission denied"
// @Failure 404 {object} ErrorResponse "Application not found"
// @Failure 409 {object} ErrorResponse "Application already processed or applicant already a member"
// @Security BearerAuth
// @Router /projects/{id}/applications/{applicationId}/approve [post]
func (h *ApplicationHandler) ApproveApplication(c *gin.Context) {
	projectID, applicationID, ok := h.parseApplicationPath(c)
	if !ok {
		return
	}

	developerID, _ := auth.GetDeveloperID(c)
	if err := h.permissionService.Require(developerID, projectID, models.CapabilityManageOpenRoles); err != nil {
		respondError(c, err)
		return
	}
	if !h.applicationBelongsToProject(c, projectID, applicationID) {
		return
	}

	application, err := h.applicationService.Approve(applicationID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, application)
}

// RejectApplication rejects a pending application
// @Summary Reject an application
// @Description Reject a pending application. Requires the manage_open_roles capability (the owner always has it).
// @Tags applications
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param applicationId path string true "Application ID (UUID)"
// @Success 200 {object} service.ApplicationResponse "Successfully rejected application"
// @Failure 403 {object} ErrorResponse "Permission denied"
// @Failure 404 {object} ErrorResponse "Application not found"
// @Failure 409 {object} ErrorResponse "Application already processed"
// @Security BearerAuth
// @Router /projects/{id}/applications/{applicationId}/reject [post]
func (h *ApplicationHandler) RejectApplication(c *gin.Context) {
	projectID, applicationID, ok := h.parseApplicationPath(c)
	if !ok {
		return
	}

	developerID, _ := auth.GetDeveloperID(c)
	if err := h.permissionService.Require(developerID, projectID, models.CapabilityManageOpenRoles); err != nil {
		respondError(c, err)
		return
	}
	if !h.applicationBelongsToProject(c, projectID, applicationID) {
		return
	}

	application, err := h.applicationService.Reject(applicationID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, application)
}

func (h *ApplicationHandler) applicationBelongsToProject(c *gin.Context, projectID, applicationID uuid.UUID) bool {
	application, err := h.applicationService.GetApplication(applicationID)
	if err != nil {
		respondError(c, err)
		return false
	}
	if application.ProjectID != projectID {
		respondError(c, apperrors.ErrApplicationNotFound)
		return false
	}
	return true
}

func (h *ApplicationHandler) parseApplicationPath(c *gin.Context) (projectID, applicationID uuid.UUID, ok bool) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid project ID"})
		return uuid.Nil, uuid.Nil, false
	}
	applicationID, err = uuid.Parse(c.Param("applicationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid application ID"})
		return uuid.Nil, uuid.Nil, false
	}
	return projectID, applicationID, true
}
