package repository

import (
	"teammate-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OpenRoleRepository handles database operations for recruitment postings
type OpenRoleRepository struct {
	db *gorm.DB
}

// NewOpenRoleRepository creates a new open role repository
func NewOpenRoleRepository(db *gorm.DB) *OpenRoleRepository {
	return &OpenRoleRepository{db: db}
}

// Create creates a new open role
func (r *OpenRoleRepository) Create(role *models.ProjectOpenRole) error {
	return r.db.Create(role).Error
}

// GetByID retrieves an open role by ID
func (r *OpenRoleRepository) GetByID(id uuid.UUID) (*models.ProjectOpenRole, error) {
	var role models.ProjectOpenRole
	err := r.db.First(&role, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// GetByProject retrieves all open roles of a project
func (r *OpenRoleRepository) GetByProject(projectID uuid.UUID) ([]models.ProjectOpenRole, error) {
	var roles []models.ProjectOpenRole
	err := r.db.Where("project_id = ?", projectID).Order("created_at").Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

// CountByProject counts the open roles currently posted for a project
func (r *OpenRoleRepository) CountByProject(projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.ProjectOpenRole{}).Where("project_id = ?", projectID).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Delete deletes an open role
func (r *OpenRoleRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.ProjectOpenRole{}, "id = ?", id).Error
}
