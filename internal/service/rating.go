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

// RatingService handles business logic for project ratings. Only deployed
// projects can be rated, raters must be outsiders, and each rater gets one
// vote per project. Every accepted rating triggers a synchronous recompute
// of the project's average score.
type RatingService struct {
	repo           *repository.RatingRepository
	projectRepo    *repository.ProjectRepository
	membershipRepo *repository.MembershipRepository
	scores         *ScoreService
	validator      *validator.Validate
}

// NewRatingService creates a new rating service
func NewRatingService(
	repo *repository.RatingRepository,
	projectRepo *repository.ProjectRepository,
	membershipRepo *repository.MembershipRepository,
	scores *ScoreService,
	validator *validator.Validate,
) *RatingService {
	return &RatingService{
		repo:           repo,
		projectRepo:    projectRepo,
		membershipRepo: membershipRepo,
		scores:         scores,
		validator:      validator,
	}
}

// CreateRatingRequest represents the data needed to rate a project
type CreateRatingRequest struct {
	Score   int    `json:"score" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// RatingResponse represents the response data for a rating
type RatingResponse struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	RaterID   uuid.UUID `json:"rater_id"`
	Username  string    `json:"username,omitempty"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt string    `json:"created_at"`
}

// RateProject records a rating for a deployed project and recomputes the
// project's average score
func (s *RatingService) RateProject(raterID, projectID uuid.UUID, req *CreateRatingRequest) (*RatingResponse, error) {
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

	if project.DevelopmentStage != models.StageDeployed {
		return nil, apperrors.ErrProjectNotDeployed
	}
	if project.IsOwnedBy(raterID) {
		return nil, apperrors.ErrCannotRateOwn
	}

	isMember, err := s.membershipRepo.ExistsByProjectAndDeveloper(projectID, raterID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if isMember {
		return nil, apperrors.ErrCannotRateOwn
	}

	rating := &models.ProjectRating{
		ProjectID: projectID,
		RaterID:   raterID,
		Score:     req.Score,
		Comment:   req.Comment,
	}

	if err := s.repo.Create(rating); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrRatingExists
		}
		return nil, fmt.Errorf("failed to create rating: %w", err)
	}

	if err := s.scores.RecomputeAverageScore(projectID); err != nil {
		return nil, fmt.Errorf("failed to recompute project score: %w", err)
	}

	return s.toResponse(rating), nil
}

// ListByProject retrieves all ratings for a project
func (s *RatingService) ListByProject(projectID uuid.UUID) ([]RatingResponse, error) {
	if _, err := s.projectRepo.GetByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	ratings, err := s.repo.GetByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}

	responses := make([]RatingResponse, len(ratings))
	for i := range ratings {
		responses[i] = *s.toResponse(&ratings[i])
	}
	return responses, nil
}

func (s *RatingService) toResponse(rating *models.ProjectRating) *RatingResponse {
	resp := &RatingResponse{
		ID:        rating.ID,
		ProjectID: rating.ProjectID,
		RaterID:   rating.RaterID,
		Score:     rating.Score,
		Comment:   rating.Comment,
		CreatedAt: rating.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if rating.Rater.ID != uuid.Nil {
		resp.Username = rating.Rater.Username
	}
	return resp
}
