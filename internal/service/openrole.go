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

// OpenRoleService handles business logic for open-role postings. Every
// create and delete is followed by a synchronous recompute of the owning
// project's open_to_candidates flag.
type OpenRoleService struct {
	repo        *repository.OpenRoleRepository
	projectRepo *repository.ProjectRepository
	scores      *ScoreService
	validator   *validator.Validate
}

// NewOpenRoleService creates a new open-role service
func NewOpenRoleService(repo *repository.OpenRoleRepository, projectRepo *repository.ProjectRepository, scores *ScoreService, validator *validator.Validate) *OpenRoleService {
	return &OpenRoleService{
		repo:        repo,
		projectRepo: projectRepo,
		scores:      scores,
		validator:   validator,
	}
}

// CreateOpenRoleRequest represents the data needed to post an open role
type CreateOpenRoleRequest struct {
	RoleName string `json:"role_name" validate:"required"`
	Message  string `json:"message" validate:"max=2000"`
}

// OpenRoleResponse represents the response data for an open role
type OpenRoleResponse struct {
	ID        uuid.UUID             `json:"id"`
	ProjectID uuid.UUID             `json:"project_id"`
	RoleName  models.MembershipRole `json:"role_name"`
	Message   string                `json:"message,omitempty"`
	CreatedAt string                `json:"created_at"`
}

// CreateOpenRole posts a new open role on a project
func (s *OpenRoleService) CreateOpenRole(projectID uuid.UUID, req *CreateOpenRoleRequest) (*OpenRoleResponse, error) {
	// Validate request
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	roleName := models.MembershipRole(req.RoleName)
	if !roleName.IsValid() {
		return nil, apperrors.ErrInvalidRole
	}

	if _, err := s.projectRepo.GetByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	role := &models.ProjectOpenRole{
		ProjectID: projectID,
		RoleName:  roleName,
		Message:   req.Message,
	}

	if err := s.repo.Create(role); err != nil {
		return nil, fmt.Errorf("failed to create open role: %w", err)
	}

	if err := s.scores.RecomputeOpenToCandidates(projectID); err != nil {
		return nil, fmt.Errorf("failed to recompute open_to_candidates: %w", err)
	}

	return s.toResponse(role), nil
}

// ListByProject retrieves all open roles for a project
func (s *OpenRoleService) ListByProject(projectID uuid.UUID) ([]OpenRoleResponse, error) {
	if _, err := s.projectRepo.GetByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	roles, err := s.repo.GetByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open roles: %w", err)
	}

	responses := make([]OpenRoleResponse, len(roles))
	for i := range roles {
		responses[i] = *s.toResponse(&roles[i])
	}
	return responses, nil
}

// DeleteOpenRole removes an open role and recomputes the project flag.
// The role must belong to the given project.
func (s *OpenRoleService) DeleteOpenRole(projectID, roleID uuid.UUID) error {
	role, err := s.repo.GetByID(roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrOpenRoleNotFound
		}
		return fmt.Errorf("failed to get open role: %w", err)
	}
	if role.ProjectID != projectID {
		return apperrors.ErrOpenRoleNotFound
	}

	if err := s.repo.Delete(roleID); err != nil {
		return fmt.Errorf("failed to delete open role: %w", err)
	}

	if err := s.scores.RecomputeOpenToCandidates(projectID); err != nil {
		return fmt.Errorf("failed to recompute open_to_candidates: %w", err)
	}
	return nil
}

func (s *OpenRoleService) toResponse(role *models.ProjectOpenRole) *OpenRoleResponse {
	return &OpenRoleResponse{
		ID:        role.ID,
		ProjectID: role.ProjectID,
		RoleName:  role.RoleName,
		Message:   role.Message,
		CreatedAt: role.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
