package service

import (
	"errors"
	"fmt"

	"teammate-backend/internal/database/models"
	apperrors "teammate-backend/internal/errors"
	"teammate-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PermissionService decides whether a developer may perform a
// project-scoped action. Owners hold every capability regardless of stored
// flags; everyone else is judged by the flags on their unique membership.
type PermissionService struct {
	projectRepo    *repository.ProjectRepository
	membershipRepo *repository.MembershipRepository
}

// NewPermissionService creates a new permission service
func NewPermissionService(projectRepo *repository.ProjectRepository, membershipRepo *repository.MembershipRepository) *PermissionService {
	return &PermissionService{
		projectRepo:    projectRepo,
		membershipRepo: membershipRepo,
	}
}

// Can reports whether the developer holds the capability on the project.
// An anonymous caller (uuid.Nil) holds nothing, a missing membership grants
// nothing, and an unknown capability is false rather than an error.
func (s *PermissionService) Can(developerID, projectID uuid.UUID, capability models.Capability) (bool, error) {
	if developerID == uuid.Nil {
		return false, nil
	}

	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperrors.ErrProjectNotFound
		}
		return false, fmt.Errorf("failed to get project: %w", err)
	}

	if project.IsOwnedBy(developerID) {
		return true, nil
	}

	membership, err := s.membershipRepo.GetByProjectAndDeveloper(projectID, developerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get membership: %w", err)
	}

	return membership.HasCapability(capability), nil
}

// Require returns an error unless the developer holds the capability:
// ErrNotAuthenticated for anonymous callers, ErrPermissionDenied otherwise.
func (s *PermissionService) Require(developerID, projectID uuid.UUID, capability models.Capability) error {
	if developerID == uuid.Nil {
		return apperrors.ErrNotAuthenticated
	}

	allowed, err := s.Can(developerID, projectID, capability)
	if err != nil {
		return err
	}
	if !allowed {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// RequireOwner returns an error unless the developer owns the project
func (s *PermissionService) RequireOwner(developerID, projectID uuid.UUID) error {
	if developerID == uuid.Nil {
		return apperrors.ErrNotAuthenticated
	}

	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProjectNotFound
		}
		return fmt.Errorf("failed to get project: %w", err)
	}

	if !project.IsOwnedBy(developerID) {
		return apperrors.ErrNotProjectOwner
	}
	return nil
}
