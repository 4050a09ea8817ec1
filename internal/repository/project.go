package repository

import (
	"teammate-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectFilters narrows project listings
type ProjectFilters struct {
	Name             string
	Domain           models.ProjectDomain
	Stage            models.DevelopmentStage
	OpenToCandidates *bool
	OwnerID          *uuid.UUID
}

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project together with the owner's membership.
// Both rows are written in one transaction so a project is never observed
// without its owner enrolled.
func (r *ProjectRepository) Create(project *models.Project, ownerMembership *models.Membership) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		ownerMembership.ProjectID = project.ID
		return tx.Create(ownerMembership).Error
	})
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetByUID retrieves a project by its external identifier
func (r *ProjectRepository) GetByUID(uid string) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "uid = ?", uid).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetWithDetails retrieves a project with owner, memberships and open roles
func (r *ProjectRepository) GetWithDetails(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.
		Preload("Owner").
		Preload("Memberships.Developer").
		Preload("OpenRoles").
		First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves projects matching the filters, paginated
func (r *ProjectRepository) List(filters ProjectFilters, limit, offset int) ([]models.Project, int64, error) {
	var projects []models.Project
	var total int64

	query := r.db.Model(&models.Project{})
	if filters.Name != "" {
		query = query.Where("name ILIKE ?", "%"+filters.Name+"%")
	}
	if filters.Domain != "" {
		query = query.Where("domain = ?", filters.Domain)
	}
	if filters.Stage != "" {
		query = query.Where("development_stage = ?", filters.Stage)
	}
	if filters.OpenToCandidates != nil {
		query = query.Where("open_to_candidates = ?", *filters.OpenToCandidates)
	}
	if filters.OwnerID != nil {
		query = query.Where("owner_id = ?", *filters.OwnerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// Update updates a project
func (r *ProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// UpdateOpenToCandidates persists the derived open-to-candidates flag
func (r *ProjectRepository) UpdateOpenToCandidates(id uuid.UUID, open bool) error {
	return r.db.Model(&models.Project{}).Where("id = ?", id).Update("open_to_candidates", open).Error
}

// UpdateScore persists the derived average rating score
func (r *ProjectRepository) UpdateScore(id uuid.UUID, score float64) error {
	return r.db.Model(&models.Project{}).Where("id = ?", id).Update("score", score).Error
}

// Delete deletes a project; memberships, tasks, open roles, ratings and
// applications go with it via FK cascade
func (r *ProjectRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}
