package handlers

import (
	"net/http"

	"teammate-backend/internal/auth"
	apperrors "teammate-backend/internal/errors"
	"teammate-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MembershipHandler handles HTTP requests for project memberships
type MembershipHandler struct {
	membershipService *service.MembershipService
	permissionService *service.PermissionService
}

// NewMembershipHandler creates a new membership handler
func NewMembershipHandler(membershipService *service.MembershipService, permissionService *service.PermissionService) *MembershipHandler {
	return &MembershipHandler{
		membershipService: membershipService,
		permissionService: permissionService,
	}
}

// ListMemberships lists the members of a project
// @Summary List project members
// @Description Get all memberships of a project with roles and capability flags
// @Tags memberships
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 200 {array} service.MembershipResponse "Successfully retrieved memberships"
// @Failure 400 {object} ErrorResponse "Invalid project ID"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /projects/{id}/members [get]
func (h *MembershipHandler) ListMemberships(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid project ID"})
		return
	}

	memberships, err := h.membershipService.ListByProject(projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, memberships)
}

// UpdateMembership changes a member's role or capability flags
// @Summary Update a membership
// @Description Change a member's role or capability flags. Owner only; the owner's own membership cannot be changed.
// @Tags memberships
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param membershipId path string true "Membership ID (UUID)"
// @Param membership body service.UpdateMembershipRequest true "Fields to update"
// @Success 200 {object} service.MembershipResponse "Successfully updated membership"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 403 {object} ErrorResponse "Permission denied"
// @Failure 404 {object} ErrorResponse "Membership not found"
// @Failure 409 {object} ErrorResponse "Owner membership is immutable"
// @Security BearerAuth
// @Router /projects/{id}/members/{membershipId} [patch]
func (h *MembershipHandler) UpdateMembership(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid project ID"})
		return
	}
	membershipID, err := uuid.Parse(c.Param("membershipId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid membership ID"})
		return
	}

	developerID, _ := auth.GetDeveloperID(c)
	if err := h.permissionService.RequireOwner(developerID, projectID); err != nil {
		respondError(c, err)
		return
	}

	var req service.UpdateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	membership, err := h.membershipService.UpdateMembership(projectID, membershipID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, membership)
}

// RemoveMembership removes a member from a project
// @Summary Remove a member
// @Description Remove a developer from the project. A member may leave on their own; otherwise owner only. The owner's membership cannot be removed.
// @Tags memberships
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param membershipId path string true "Membership ID (UUID)"
// @Success 204 "Successfully removed membership"
// @Failure 403 {object} ErrorResponse "Permission denied"
// @Failure 404 {object} ErrorResponse "Membership not found"
// @Failure 409 {object} ErrorResponse "Owner membership is immutable"
// @Security BearerAuth
// @Router /projects/{id}/members/{membershipId} [delete]
func (h *MembershipHandler) RemoveMembership(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid project ID"})
		return
	}
	membershipID, err := uuid.Parse(c.Param("membershipId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid membership ID"})
		return
	}

	developerID, ok := auth.GetDeveloperID(c)
	if !ok {
		respondError(c, apperrors.ErrNotAuthenticated)
		return
	}

	// Members may remove their own membership; anyone else must be the owner
	if !h.isOwnMembership(projectID, membershipID, developerID) {
		if err := h.permissionService.RequireOwner(developerID, projectID); err != nil {
			respondError(c, err)
			return
		}
	}

	if err := h.membershipService.RemoveMembership(projectID, membershipID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *MembershipHandler) isOwnMembership(projectID, membershipID, developerID uuid.UUID) bool {
	memberships, err := h.membershipService.ListByProject(projectID)
	if err != nil {
		return false
	}
	for _, m := range memberships {
		if m.ID == membershipID {
			return m.DeveloperID == developerID
		}
	}
	return false
}
