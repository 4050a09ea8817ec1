package repository

import (
	"teammate-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MembershipRepository handles database operations for project memberships
type MembershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Create creates a new membership. The unique (project, developer) index
// makes a duplicate insert fail with gorm.ErrDuplicatedKey.
func (r *MembershipRepository) Create(membership *models.Membership) error {
	return r.db.Create(membership).Error
}

// GetByID retrieves a membership by ID
func (r *MembershipRepository) GetByID(id uuid.UUID) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.First(&membership, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// GetByProjectAndDeveloper retrieves the unique membership for a (project, developer) pair
func (r *MembershipRepository) GetByProjectAndDeveloper(projectID, developerID uuid.UUID) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.First(&membership, "project_id = ? AND developer_id = ?", projectID, developerID).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// GetByProject retrieves all memberships of a project with developer details
func (r *MembershipRepository) GetByProject(projectID uuid.UUID) ([]models.Membership, error) {
	var memberships []models.Membership
	err := r.db.Preload("Developer").Where("project_id = ?", projectID).Order("created_at").Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

// ExistsByProjectAndDeveloper reports whether the developer is enrolled in the project
func (r *MembershipRepository) ExistsByProjectAndDeveloper(projectID, developerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Membership{}).
		Where("project_id = ? AND developer_id = ?", projectID, developerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update updates a membership
func (r *MembershipRepository) Update(membership *models.Membership) error {
	return r.db.Save(membership).Error
}

// Delete deletes a membership
func (r *MembershipRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Membership{}, "id = ?", id).Error
}
