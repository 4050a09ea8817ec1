package service

import (
	"errors"
	"fmt"

	"teammate-backend/internal/database/models"
	apperrors "teammate-backend/internal/errors"
	"teammate-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MembershipService handles business logic for project memberships.
// Memberships are created through the application workflow or project
// creation; this service only reads, updates and removes them. The owner's
// membership is pinned: it cannot be removed or demoted.
type MembershipService struct {
	repo        *repository.MembershipRepository
	projectRepo *repository.ProjectRepository
	validator   *validator.Validate
}

// NewMembershipService creates a new membership service
func NewMembershipService(repo *repository.MembershipRepository, projectRepo *repository.ProjectRepository, validator *validator.Validate) *MembershipService {
	return &MembershipService{
		repo:        repo,
		projectRepo: projectRepo,
		validator:   validator,
	}
}

// UpdateMembershipRequest represents the data needed to update a membership.
// Absent fields are left untouched.
type UpdateMembershipRequest struct {
	Role                   *string `json:"role"`
	EditProjectInfoPerm    *bool   `json:"edit_project_info_perm"`
	AddTaskPerm            *bool   `json:"add_task_perm"`
	UpdateProjectStagePerm *bool   `json:"update_project_stage_perm"`
	ManageOpenRolesPerm    *bool   `json:"manage_open_roles_perm"`
}

// MembershipResponse represents the response data for a membership
type MembershipResponse struct {
	ID                     uuid.UUID             `json:"id"`
	ProjectID              uuid.UUID             `json:"project_id"`
	DeveloperID            uuid.UUID             `json:"developer_id"`
	Username               string                `json:"username,omitempty"`
	Role                   models.MembershipRole `json:"role"`
	EditProjectInfoPerm    bool                  `json:"edit_project_info_perm"`
	AddTaskPerm            bool                  `json:"add_task_perm"`
	UpdateProjectStagePerm bool                  `json:"update_project_stage_perm"`
	ManageOpenRolesPerm    bool                  `json:"manage_open_roles_perm"`
	CreatedAt              string                `json:"created_at"`
}

// ListByProject retrieves all memberships for a project
func (s *MembershipService) ListByProject(projectID uuid.UUID) ([]MembershipResponse, error) {
	if _, err := s.projectRepo.GetByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	memberships, err := s.repo.GetByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}

	responses := make([]MembershipResponse, len(memberships))
	for i := range memberships {
		responses[i] = *s.toResponse(&memberships[i])
	}
	return responses, nil
}

// UpdateMembership changes a member's role or capability flags. The owner's
// own membership is off limits.
func (s *MembershipService) UpdateMembership(projectID, membershipID uuid.UUID, req *UpdateMembershipRequest) (*MembershipResponse, error) {
	// Validate request
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	membership, err := s.getProjectMembership(projectID, membershipID)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project.IsOwnedBy(membership.DeveloperID) {
		return nil, apperrors.ErrOwnerMembership
	}

	if req.Role != nil {
		role := models.MembershipRole(*req.Role)
		if !role.IsValid() {
			return nil, apperrors.ErrInvalidRole
		}
		membership.Role = role
	}
	if req.EditProjectInfoPerm != nil {
		membership.EditProjectInfoPerm = *req.EditProjectInfoPerm
	}
	if req.AddTaskPerm != nil {
		membership.AddTaskPerm = *req.AddTaskPerm
	}
	if req.UpdateProjectStagePerm != nil {
		membership.UpdateProjectStagePerm = *req.UpdateProjectStagePerm
	}
	if req.ManageOpenRolesPerm != nil {
		membership.ManageOpenRolesPerm = *req.ManageOpenRolesPerm
	}

	if err := s.repo.Update(membership); err != nil {
		return nil, fmt.Errorf("failed to update membership: %w", err)
	}
	return s.toResponse(membership), nil
}

// RemoveMembership removes a developer from a project. The owner's
// membership cannot be removed.
func (s *MembershipService) RemoveMembership(projectID, membershipID uuid.UUID) error {
	membership, err := s.getProjectMembership(projectID, membershipID)
	if err != nil {
		return err
	}

	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return fmt.Errorf("failed to get project: %w", err)
	}
	if project.IsOwnedBy(membership.DeveloperID) {
		return apperrors.ErrOwnerMembership
	}

	if err := s.repo.Delete(membershipID); err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	return nil
}

func (s *MembershipService) getProjectMembership(projectID, membershipID uuid.UUID) (*models.Membership, error) {
	membership, err := s.repo.GetByID(membershipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	if membership.ProjectID != projectID {
		return nil, apperrors.ErrMembershipNotFound
	}
	return membership, nil
}

func (s *MembershipService) toResponse(membership *models.Membership) *MembershipResponse {
	resp := &MembershipResponse{
		ID:                     membership.ID,
		ProjectID:              membership.ProjectID,
		DeveloperID:            membership.DeveloperID,
		Role:                   membership.Role,
		EditProjectInfoPerm:    membership.EditProjectInfoPerm,
		AddTaskPerm:            membership.AddTaskPerm,
		UpdateProjectStagePerm: membership.UpdateProjectStagePerm,
		ManageOpenRolesPerm:    membership.ManageOpenRolesPerm,
		CreatedAt:              membership.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if membership.Developer.ID != uuid.Nil {
		resp.Username = membership.Developer.Username
	}
	return resp
}
