package service

import (
	"errors"
	"fmt"
	"math"

	apperrors "teammate-backend/internal/errors"
	"teammate-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScoreService maintains the derived fields on a project: the
// open_to_candidates flag driven by the open-role count, and the average
// rating score. Both recomputations are idempotent; they only write when
// the stored value differs from the recomputed one.
type ScoreService struct {
	projectRepo  *repository.ProjectRepository
	openRoleRepo *repository.OpenRoleRepository
	ratingRepo   *repository.RatingRepository
}

// NewScoreService creates a new score service
func NewScoreService(projectRepo *repository.ProjectRepository, openRoleRepo *repository.OpenRoleRepository, ratingRepo *repository.RatingRepository) *ScoreService {
	return &ScoreService{
		projectRepo:  projectRepo,
		openRoleRepo: openRoleRepo,
		ratingRepo:   ratingRepo,
	}
}

// RecomputeOpenToCandidates syncs the project's open_to_candidates flag
// with its open-role count. Called synchronously after every open-role
// create or delete.
func (s *ScoreService) RecomputeOpenToCandidates(projectID uuid.UUID) error {
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProjectNotFound
		}
		return fmt.Errorf("failed to get project: %w", err)
	}

	count, err := s.openRoleRepo.CountByProject(projectID)
	if err != nil {
		return fmt.Errorf("failed to count open roles: %w", err)
	}

	open := count > 0
	if project.OpenToCandidates == open {
		return nil
	}
	return s.projectRepo.UpdateOpenToCandidates(projectID, open)
}

// RecomputeAverageScore recalculates the project's average rating, rounded
// to two decimal places. A project with no ratings scores zero.
func (s *ScoreService) RecomputeAverageScore(projectID uuid.UUID) error {
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProjectNotFound
		}
		return fmt.Errorf("failed to get project: %w", err)
	}

	avg, err := s.ratingRepo.AverageByProject(projectID)
	if err != nil {
		return fmt.Errorf("failed to average ratings: %w", err)
	}

	rounded := math.Round(avg*100) / 100
	if project.Score == rounded {
		return nil
	}
	return s.projectRepo.UpdateScore(projectID, rounded)
}
