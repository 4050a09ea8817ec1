package models

import (
	"github.com/google/uuid"
)

// ProjectOpenRole represents a recruitment posting for a project.
// The role is typed as a MembershipRole so an accepted application can copy
// it onto the new membership without translation.
type ProjectOpenRole struct {
	BaseModel
	ProjectID uuid.UUID      `json:"project_id" gorm:"type:uuid;not null;index" validate:"required"`
	RoleName  MembershipRole `json:"role_name" gorm:"type:varchar(10);not null" validate:"required"`
	Message   string         `json:"message" gorm:"type:text"`

	// Relationships
	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for ProjectOpenRole
func (ProjectOpenRole) TableName() string {
	return "project_open_roles"
}
