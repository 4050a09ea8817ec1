package repository

import (
	"teammate-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicationRepository handles database operations for project applications
type ApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create creates a new application. The partial unique index rejects a
// second pending application for the same (project, developer, role).
func (r *ApplicationRepository) Create(application *models.ProjectApplication) error {
	return r.db.Create(application).Error
}

// GetByID retrieves an application with its open role
func (r *ApplicationRepository) GetByID(id uuid.UUID) (*models.ProjectApplication, error) {
	var application models.ProjectApplication
	err := r.db.Preload("OpenRole").First(&application, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

// GetByProject retrieves all applications for a project with applicant details
func (r *ApplicationRepository) GetByProject(projectID uuid.UUID) ([]models.ProjectApplication, error) {
	var applications []models.ProjectApplication
	err := r.db.
		Preload("Developer").
		Preload("OpenRole").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}

// HasPending reports whether a pending application exists for the triple
func (r *ApplicationRepository) HasPending(projectID, developerID, openRoleID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProjectApplication{}).
		Where("project_id = ? AND developer_id = ? AND open_role_id = ? AND status = ?",
			projectID, developerID, openRoleID, models.ApplicationPending).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Accept atomically creates the applicant's membership and marks the
// application accepted. Either both rows persist or neither does; a racing
// accept loses on the membership unique index and rolls back with
// gorm.ErrDuplicatedKey.
func (r *ApplicationRepository) Accept(application *models.ProjectApplication, membership *models.Membership) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(membership).Error; err != nil {
			return err
		}
		return tx.Model(application).Update("status", models.ApplicationAccepted).Error
	})
}

// UpdateStatus sets the status of an application
func (r *ApplicationRepository) UpdateStatus(id uuid.UUID, status models.ApplicationStatus) error {
	return r.db.Model(&models.ProjectApplication{}).Where("id = ?", id).Update("status", status).Error
}
