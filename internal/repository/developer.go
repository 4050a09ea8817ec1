package repository

import (
	"teammate-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeveloperRepository handles database operations for developers
type DeveloperRepository struct {
	db *gorm.DB
}

// NewDeveloperRepository creates a new developer repository
func NewDeveloperRepository(db *gorm.DB) *DeveloperRepository {
	return &DeveloperRepository{db: db}
}

// Create creates a new developer
func (r *DeveloperRepository) Create(developer *models.Developer) error {
	return r.db.Create(developer).Error
}

// GetByID retrieves a developer by ID
func (r *DeveloperRepository) GetByID(id uuid.UUID) (*models.Developer, error) {
	var developer models.Developer
	err := r.db.First(&developer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &developer, nil
}

// GetByUsername retrieves a developer by username
func (r *DeveloperRepository) GetByUsername(username string) (*models.Developer, error) {
	var developer models.Developer
	err := r.db.First(&developer, "username = ?", username).Error
	if err != nil {
		return nil, err
	}
	return &developer, nil
}

// GetByEmail retrieves a developer by email
func (r *DeveloperRepository) GetByEmail(email string) (*models.Developer, error) {
	var developer models.Developer
	err := r.db.First(&developer, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &developer, nil
}

// GetByGitHubID retrieves a developer by linked GitHub account ID
func (r *DeveloperRepository) GetByGitHubID(githubID int64) (*models.Developer, error) {
	var developer models.Developer
	err := r.db.First(&developer, "git_hub_id = ?", githubID).Error
	if err != nil {
		return nil, err
	}
	return &developer, nil
}

// Update updates a developer
func (r *DeveloperRepository) Update(developer *models.Developer) error {
	return r.db.Save(developer).Error
}

// Search retrieves developers whose username contains the query, paginated
func (r *DeveloperRepository) Search(query string, limit, offset int) ([]models.Developer, int64, error) {
	var developers []models.Developer
	var total int64

	q := r.db.Model(&models.Developer{})
	if query != "" {
		q = q.Where("username ILIKE ?", "%"+query+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("username").Limit(limit).Offset(offset).Find(&developers).Error
	if err != nil {
		return nil, 0, err
	}

	return developers, total, nil
}

// Leaderboard retrieves the top developers ordered by the live average score
// of the projects they belong to. The computed average is scanned into the
// Score field.
func (r *DeveloperRepository) Leaderboard(limit int) ([]models.Developer, error) {
	var developers []models.Developer
	err := r.db.Model(&models.Developer{}).
		Select("developers.*, COALESCE(AVG(projects.score), 0) AS score").
		Joins("LEFT JOIN memberships ON memberships.developer_id = developers.id").
		Joins("LEFT JOIN projects ON projects.id = memberships.project_id").
		Group("developers.id").
		Order("score DESC, developers.username").
		Limit(limit).
		Find(&developers).Error
	if err != nil {
		return nil, err
	}
	return developers, nil
}

// AverageMemberProjectScore computes the mean score of all projects the
// developer belongs to (0 when none)
func (r *DeveloperRepository) AverageMemberProjectScore(id uuid.UUID) (float64, error) {
	var avg float64
	err := r.db.Model(&models.Project{}).
		Select("COALESCE(AVG(projects.score), 0)").
		Joins("JOIN memberships ON memberships.project_id = projects.id").
		Where("memberships.developer_id = ?", id).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	return avg, nil
}
