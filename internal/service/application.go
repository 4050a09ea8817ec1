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

// ApplicationService handles the project application workflow: a developer
// applies against an open role, the owner approves or rejects. Approval
// creates the membership and marks the application accepted in one
// transaction, so an application can never be both accepted and
// membership-less.
type ApplicationService struct {
	repo           *repository.ApplicationRepository
	projectRepo    *repository.ProjectRepository
	membershipRepo *repository.MembershipRepository
	openRoleRepo   *repository.OpenRoleRepository
	validator      *validator.Validate
}

// NewApplicationService creates a new application service
func NewApplicationService(
	repo *repository.ApplicationRepository,
	projectRepo *repository.ProjectRepository,
	membershipRepo *repository.MembershipRepository,
	openRoleRepo *repository.OpenRoleRepository,
	validator *validator.Validate,
) *ApplicationService {
	return &ApplicationService{
		repo:           repo,
		projectRepo:    projectRepo,
		membershipRepo: membershipRepo,
		openRoleRepo:   openRoleRepo,
		validator:      validator,
	}
}

// ApplyRequest represents the data needed to apply to an open role
type ApplyRequest struct {
	OpenRoleID uuid.UUID `json:"open_role_id" validate:"required"`
	Message    string    `json:"message" validate:"max=2000"`
}

// ApplicationResponse represents the response data for an application
type ApplicationResponse struct {
	ID          uuid.UUID                `json:"id"`
	ProjectID   uuid.UUID                `json:"project_id"`
	DeveloperID uuid.UUID                `json:"developer_id"`
	Username    string                   `json:"username,omitempty"`
	OpenRoleID  uuid.UUID                `json:"open_role_id"`
	RoleName    models.MembershipRole    `json:"role_name,omitempty"`
	Status      models.ApplicationStatus `json:"status"`
	Message     string                   `json:"message,omitempty"`
	CreatedAt   string                   `json:"created_at"`
}

// Apply submits an application from a developer to an open role. Owners
// and existing members cannot apply, and a developer may hold at most one
// pending application per open role.
func (s *ApplicationService) Apply(developerID, projectID uuid.UUID, req *ApplyRequest) (*ApplicationResponse, error) {
	// Validate request
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if project.IsOwnedBy(developerID) {
		return nil, apperrors.ErrCannotApplyOwn
	}

	openRole, err := s.openRoleRepo.GetByID(req.OpenRoleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOpenRoleNotFound
		}
		return nil, fmt.Errorf("failed to get open role: %w", err)
	}
	if openRole.ProjectID != projectID {
		return nil, apperrors.ErrOpenRoleNotFound
	}

	isMember, err := s.membershipRepo.ExistsByProjectAndDeveloper(projectID, developerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if isMember {
		return nil, apperrors.ErrAlreadyMember
	}

	// Pre-check for a friendlier error; the partial unique index on pending
	// applications is the backstop for racing submissions.
	hasPending, err := s.repo.HasPending(projectID, developerID, req.OpenRoleID)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending applications: %w", err)
	}
	if hasPending {
		return nil, apperrors.ErrApplicationExists
	}

	application := &models.ProjectApplication{
		ProjectID:   projectID,
		DeveloperID: developerID,
		OpenRoleID:  req.OpenRoleID,
		Status:      models.ApplicationPending,
		Message:     req.Message,
	}

	if err := s.repo.Create(application); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrApplicationExists
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	application.OpenRole = *openRole
	return s.toResponse(application), nil
}

// Approve accepts a pending application, creating a membership with the
// open role's role name and no capabilities granted. Already processed
// applications are rejected with a conflict, as is approving an applicant
// who joined the project through another application in the meantime.
func (s *ApplicationService) Approve(applicationID uuid.UUID) (*ApplicationResponse, error) {
	application, err := s.repo.GetByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	if application.Status.IsTerminal() {
		return nil, apperrors.ErrApplicationProcessed
	}

	isMember, err := s.membershipRepo.ExistsByProjectAndDeveloper(application.ProjectID, application.DeveloperID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if isMember {
		return nil, apperrors.ErrAlreadyMember
	}

	membership := &models.Membership{
		ProjectID:   application.ProjectID,
		DeveloperID: application.DeveloperID,
		Role:        application.OpenRole.RoleName,
	}

	if err := s.repo.Accept(application, membership); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrMembershipExists
		}
		return nil, fmt.Errorf("failed to accept application: %w", err)
	}

	return s.toResponse(application), nil
}

// Reject marks a pending application rejected. Terminal applications
// cannot be reprocessed.
func (s *ApplicationService) Reject(applicationID uuid.UUID) (*ApplicationResponse, error) {
	application, err := s.repo.GetByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	if application.Status.IsTerminal() {
		return nil, apperrors.ErrApplicationProcessed
	}

	if err := s.repo.UpdateStatus(applicationID, models.ApplicationRejected); err != nil {
		return nil, fmt.Errorf("failed to reject application: %w", err)
	}

	application.Status = models.ApplicationRejected
	return s.toResponse(application), nil
}

// ListByProject retrieves all applications for a project
func (s *ApplicationService) ListByProject(projectID uuid.UUID) ([]ApplicationResponse, error) {
	if _, err := s.projectRepo.GetByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	applications, err := s.repo.GetByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	responses := make([]ApplicationResponse, len(applications))
	for i := range applications {
		responses[i] = *s.toResponse(&applications[i])
	}
	return responses, nil
}

// GetApplication retrieves a single application by ID
func (s *ApplicationService) GetApplication(id uuid.UUID) (*ApplicationResponse, error) {
	application, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return s.toResponse(application), nil
}

func (s *ApplicationService) toResponse(application *models.ProjectApplication) *ApplicationResponse {
	resp := &ApplicationResponse{
		ID:          application.ID,
		ProjectID:   application.ProjectID,
		DeveloperID: application.DeveloperID,
		OpenRoleID:  application.OpenRoleID,
		Status:      application.Status,
		Message:     application.Message,
		CreatedAt:   application.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if application.Developer.ID != uuid.Nil {
		resp.Username = application.Developer.Username
	}
	if application.OpenRole.ID != uuid.Nil {
		resp.RoleName = application.OpenRole.RoleName
	}
	return resp
}
