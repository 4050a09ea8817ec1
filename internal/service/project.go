package service

import (
	"errors"
	"fmt"
	"strings"

	"teammate-backend/internal/database/models"
	apperrors "teammate-backend/internal/errors"
	"teammate-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectService handles business logic for projects
type ProjectService struct {
	repo      *repository.ProjectRepository
	validator *validator.Validate
}

// NewProjectService creates a new project service
func NewProjectService(repo *repository.ProjectRepository, validator *validator.Validate) *ProjectService {
	return &ProjectService{
		repo:      repo,
		validator: validator,
	}
}

// CreateProjectRequest represents the data needed to create a project
type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Domain      string `json:"domain" validate:"required"`
	ProjectURL  string `json:"project_url" validate:"omitempty,url,max=500"`
}

// UpdateProjectRequest represents the data needed to update project info
type UpdateProjectRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Domain      *string `json:"domain"`
	ProjectURL  *string `json:"project_url" validate:"omitempty,url,max=500"`
}

// UpdateStageRequest represents a development stage transition
type UpdateStageRequest struct {
	DevelopmentStage string `json:"development_stage" validate:"required"`
	DeployURL        string `json:"deploy_url" validate:"omitempty,url,max=500"`
}

// ProjectListFilters narrows the project listing
type ProjectListFilters struct {
	Name             string
	Domain           string
	Stage            string
	OpenToCandidates *bool
	OwnerID          *uuid.UUID
	Page             int
	PageSize         int
}

// MembershipSummary is the membership entry embedded in a project response
type MembershipSummary struct {
	ID          uuid.UUID             `json:"id"`
	DeveloperID uuid.UUID             `json:"developer_id"`
	Username    string                `json:"username"`
	Role        models.MembershipRole `json:"role"`
}

// OpenRoleSummary is the open-role entry embedded in a project response
type OpenRoleSummary struct {
	ID       uuid.UUID             `json:"id"`
	RoleName models.MembershipRole `json:"role_name"`
	Message  string                `json:"message"`
}

// ProjectResponse represents the response data for a project
type ProjectResponse struct {
	ID               uuid.UUID           `json:"id"`
	UID              string              `json:"uid"`
	Name             string              `json:"name"`
	Description      string              `json:"description"`
	Domain           string              `json:"domain"`
	DevelopmentStage string              `json:"development_stage"`
	DeployURL        string              `json:"deploy_url,omitempty"`
	ProjectURL       string              `json:"project_url,omitempty"`
	OwnerID          uuid.UUID           `json:"owner_id"`
	OwnerUsername    string              `json:"owner_username,omitempty"`
	OpenToCandidates bool                `json:"open_to_candidates"`
	Score            float64             `json:"score"`
	Memberships      []MembershipSummary `json:"memberships,omitempty"`
	OpenRoles        []OpenRoleSummary   `json:"open_roles,omitempty"`
	CreatedAt        string              `json:"created_at"`
	UpdatedAt        string              `json:"updated_at"`
}

// ProjectListResponse represents a paginated project listing
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// CreateProject creates a new project and enrolls the owner as a lead
// member with every capability granted, in a single transaction.
func (s *ProjectService) CreateProject(ownerID uuid.UUID, req *CreateProjectRequest) (*ProjectResponse, error) {
	// Validate request
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	domain := models.ProjectDomain(strings.ToLower(req.Domain))
	if !domain.IsValid() {
		return nil, apperrors.NewValidationError("domain", fmt.Sprintf("invalid project domain: %s", req.Domain))
	}

	project := &models.Project{
		Name:             req.Name,
		Description:      req.Description,
		Domain:           domain,
		DevelopmentStage: models.StageInitiation,
		ProjectURL:       req.ProjectURL,
		OwnerID:          ownerID,
	}

	ownerMembership := &models.Membership{
		DeveloperID: ownerID,
		Role:        models.RoleTeamLead,
	}
	ownerMembership.GrantAll()

	if err := s.repo.Create(project, ownerMembership); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.toResponse(project), nil
}

// GetProject retrieves a project by ID with owner, memberships and open roles
func (s *ProjectService) GetProject(id uuid.UUID) (*ProjectResponse, error) {
	project, err := s.repo.GetWithDetails(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return s.toResponse(project), nil
}

// GetProjectByUID retrieves a project by its public UID
func (s *ProjectService) GetProjectByUID(uid string) (*ProjectResponse, error) {
	project, err := s.repo.GetByUID(uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return s.toResponse(project), nil
}

// ListProjects retrieves projects matching the filters, paginated
func (s *ProjectService) ListProjects(filters *ProjectListFilters) (*ProjectListResponse, error) {
	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	repoFilters := repository.ProjectFilters{
		Name:             filters.Name,
		Domain:           models.ProjectDomain(filters.Domain),
		Stage:            models.DevelopmentStage(filters.Stage),
		OpenToCandidates: filters.OpenToCandidates,
		OwnerID:          filters.OwnerID,
	}

	projects, total, err := s.repo.List(repoFilters, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	responses := make([]ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = *s.toResponse(&projects[i])
	}

	return &ProjectListResponse{
		Projects: responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// UpdateProject updates a project's descriptive fields
func (s *ProjectService) UpdateProject(id uuid.UUID, req *UpdateProjectRequest) (*ProjectResponse, error) {
	// Validate request
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	project, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Domain != nil {
		domain := models.ProjectDomain(strings.ToLower(*req.Domain))
		if !domain.IsValid() {
			return nil, apperrors.NewValidationError("domain", fmt.Sprintf("invalid project domain: %s", *req.Domain))
		}
		project.Domain = domain
	}
	if req.ProjectURL != nil {
		project.ProjectURL = *req.ProjectURL
	}

	if err := s.repo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return s.toResponse(project), nil
}

// UpdateStage moves a project to a new development stage. The deployed
// stage is only reachable with a deploy URL, supplied in the request or
// already stored on the project.
func (s *ProjectService) UpdateStage(id uuid.UUID, req *UpdateStageRequest) (*ProjectResponse, error) {
	// Validate request
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	stage := models.DevelopmentStage(strings.ToLower(req.DevelopmentStage))
	if !stage.IsValid() {
		return nil, apperrors.ErrInvalidStage
	}

	project, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if req.DeployURL != "" {
		project.DeployURL = req.DeployURL
	}
	if stage.RequiresDeployURL() && project.DeployURL == "" {
		return nil, apperrors.NewValidationError("deploy_url", "required for the deployed stage")
	}

	project.DevelopmentStage = stage
	if err := s.repo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return s.toResponse(project), nil
}

// DeleteProject removes a project and, via cascades, its memberships,
// open roles, applications, ratings and tasks
func (s *ProjectService) DeleteProject(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProjectNotFound
		}
		return fmt.Errorf("failed to get project: %w", err)
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func (s *ProjectService) toResponse(project *models.Project) *ProjectResponse {
	resp := &ProjectResponse{
		ID:               project.ID,
		UID:              project.UID,
		Name:             project.Name,
		Description:      project.Description,
		Domain:           string(project.Domain),
		DevelopmentStage: string(project.DevelopmentStage),
		DeployURL:        project.DeployURL,
		ProjectURL:       project.ProjectURL,
		OwnerID:          project.OwnerID,
		OpenToCandidates: project.OpenToCandidates,
		Score:            project.Score,
		CreatedAt:        project.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:        project.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if project.Owner.ID != uuid.Nil {
		resp.OwnerUsername = project.Owner.Username
	}
	for _, m := range project.Memberships {
		resp.Memberships = append(resp.Memberships, MembershipSummary{
			ID:          m.ID,
			DeveloperID: m.DeveloperID,
			Username:    m.Developer.Username,
			Role:        m.Role,
		})
	}
	for _, r := range project.OpenRoles {
		resp.OpenRoles = append(resp.OpenRoles, OpenRoleSummary{
			ID:       r.ID,
			RoleName: r.RoleName,
			Message:  r.Message,
		})
	}
	return resp
}
