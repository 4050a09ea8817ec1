package repository

import (
	"teammate-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RatingRepository handles database operations for project ratings
type RatingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Create creates a new rating. The unique (project, rater) index rejects
// a second rating by the same developer.
func (r *RatingRepository) Create(rating *models.ProjectRating) error {
	return r.db.Create(rating).Error
}

// GetByProject retrieves all ratings for a project, newest first
func (r *RatingRepository) GetByProject(projectID uuid.UUID) ([]models.ProjectRating, error) {
	var ratings []models.ProjectRating
	err := r.db.Preload("Rater").Where("project_id = ?", projectID).Order("created_at DESC").Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// ExistsByProjectAndRater reports whether the developer already rated the project
func (r *RatingRepository) ExistsByProjectAndRater(projectID, raterID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProjectRating{}).
		Where("project_id = ? AND rater_id = ?", projectID, raterID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AverageByProject computes the mean rating score for a project (0 when unrated)
func (r *RatingRepository) AverageByProject(projectID uuid.UUID) (float64, error) {
	var avg float64
	err := r.db.Model(&models.ProjectRating{}).
		Select("COALESCE(AVG(score), 0)").
		Where("project_id = ?", projectID).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	return avg, nil
}
