package service

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"teammate-backend/internal/database/models"
	apperrors "teammate-backend/internal/errors"
	"teammate-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DeveloperService handles business logic for developer accounts
type DeveloperService struct {
	repo      *repository.DeveloperRepository
	validator *validator.Validate
}

// NewDeveloperService creates a new developer service
func NewDeveloperService(repo *repository.DeveloperRepository, validator *validator.Validate) *DeveloperService {
	return &DeveloperService{
		repo:      repo,
		validator: validator,
	}
}

// RegisterDeveloperRequest represents the data needed to register a developer
type RegisterDeveloperRequest struct {
	Username string `json:"username" validate:"required,min=1,max=150"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Position string `json:"position" validate:"required"`
}

// UpdateDeveloperRequest represents the data needed to update a profile
type UpdateDeveloperRequest struct {
	Position        *string `json:"position"`
	TechStack       *string `json:"tech_stack" validate:"omitempty,max=255"`
	LinkedinURL     *string `json:"linkedin_url" validate:"omitempty,url,max=255"`
	PortfolioURL    *string `json:"portfolio_url" validate:"omitempty,url,max=255"`
	TelegramContact *string `json:"telegram_contact" validate:"omitempty,max=255"`
	DiscordContact  *string `json:"discord_contact" validate:"omitempty,max=255"`
}

// DeveloperResponse represents the response data for a developer
type DeveloperResponse struct {
	ID              uuid.UUID `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	Position        string    `json:"position"`
	Score           float64   `json:"score"`
	TechStack       string    `json:"tech_stack,omitempty"`
	LinkedinURL     string    `json:"linkedin_url,omitempty"`
	PortfolioURL    string    `json:"portfolio_url,omitempty"`
	TelegramContact string    `json:"telegram_contact,omitempty"`
	DiscordContact  string    `json:"discord_contact,omitempty"`
	CreatedAt       string    `json:"created_at"`
}

// DeveloperListResponse represents a paginated developer listing
type DeveloperListResponse struct {
	Developers []DeveloperResponse `json:"developers"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
}

// Register creates a new developer account with a bcrypt password hash
func (s *DeveloperService) Register(req *RegisterDeveloperRequest) (*DeveloperResponse, error) {
	// Validate request
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	position := models.DeveloperPosition(strings.ToLower(req.Position))
	if !position.IsValid() {
		return nil, apperrors.NewValidationError("position", fmt.Sprintf("invalid position: %s", req.Position))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	developer := &models.Developer{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Position:     position,
	}

	if err := s.repo.Create(developer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDeveloperExists
		}
		return nil, fmt.Errorf("failed to create developer: %w", err)
	}

	return s.toResponse(developer), nil
}

// GetProfile retrieves a developer with the live average score of the
// projects they belong to
func (s *DeveloperService) GetProfile(id uuid.UUID) (*DeveloperResponse, error) {
	developer, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDeveloperNotFound
		}
		return nil, fmt.Errorf("failed to get developer: %w", err)
	}

	avg, err := s.repo.AverageMemberProjectScore(id)
	if err != nil {
		return nil, fmt.Errorf("failed to compute developer score: %w", err)
	}
	developer.Score = math.Round(avg*100) / 100

	return s.toResponse(developer), nil
}

// GetByUsername retrieves a developer profile by username
func (s *DeveloperService) GetByUsername(username string) (*DeveloperResponse, error) {
	developer, err := s.repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDeveloperNotFound
		}
		return nil, fmt.Errorf("failed to get developer: %w", err)
	}
	return s.GetProfile(developer.ID)
}

// UpdateProfile updates a developer's profile fields
func (s *DeveloperService) UpdateProfile(id uuid.UUID, req *UpdateDeveloperRequest) (*DeveloperResponse, error) {
	// Validate request
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	developer, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDeveloperNotFound
		}
		return nil, fmt.Errorf("failed to get developer: %w", err)
	}

	if req.Position != nil {
		position := models.DeveloperPosition(strings.ToLower(*req.Position))
		if !position.IsValid() {
			return nil, apperrors.NewValidationError("position", fmt.Sprintf("invalid position: %s", *req.Position))
		}
		developer.Position = position
	}
	if req.TechStack != nil {
		developer.TechStack = *req.TechStack
	}
	if req.LinkedinURL != nil {
		developer.LinkedinURL = *req.LinkedinURL
	}
	if req.PortfolioURL != nil {
		developer.PortfolioURL = *req.PortfolioURL
	}
	if req.TelegramContact != nil {
		developer.TelegramContact = *req.TelegramContact
	}
	if req.DiscordContact != nil {
		developer.DiscordContact = *req.DiscordContact
	}

	if err := s.repo.Update(developer); err != nil {
		return nil, fmt.Errorf("failed to update developer: %w", err)
	}
	return s.toResponse(developer), nil
}

// Search retrieves developers by username fragment, paginated
func (s *DeveloperService) Search(query string, page, pageSize int) (*DeveloperListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	developers, total, err := s.repo.Search(query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to search developers: %w", err)
	}

	responses := make([]DeveloperResponse, len(developers))
	for i := range developers {
		responses[i] = *s.toResponse(&developers[i])
	}

	return &DeveloperListResponse{
		Developers: responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// Leaderboard retrieves the top developers by average project score
func (s *DeveloperService) Leaderboard(limit int) ([]DeveloperResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}

	developers, err := s.repo.Leaderboard(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	responses := make([]DeveloperResponse, len(developers))
	for i := range developers {
		developers[i].Score = math.Round(developers[i].Score*100) / 100
		responses[i] = *s.toResponse(&developers[i])
	}
	return responses, nil
}

func (s *DeveloperService) toResponse(developer *models.Developer) *DeveloperResponse {
	return &DeveloperResponse{
		ID:              developer.ID,
		Username:        developer.Username,
		Email:           developer.Email,
		Position:        string(developer.Position),
		Score:           developer.Score,
		TechStack:       developer.TechStack,
		LinkedinURL:     developer.LinkedinURL,
		PortfolioURL:    developer.PortfolioURL,
		TelegramContact: developer.TelegramContact,
		DiscordContact:  developer.DiscordContact,
		CreatedAt:       developer.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
