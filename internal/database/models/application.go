package models

import (
	"github.com/google/uuid"
)

// ApplicationStatus represents the state of a project application.
// "accepted" and "rejected" are terminal.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// IsValid checks if the ApplicationStatus is valid
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from this status
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationAccepted || s == ApplicationRejected
}

// ProjectApplication represents a candidate's request to fill an open role.
// A partial unique index allows at most one pending application per
// (project, developer, role) triple; processed applications stay for history.
type ProjectApplication struct {
	BaseModel
	ProjectID   uuid.UUID         `json:"project_id" gorm:"type:uuid;not null;uniqueIndex:idx_applications_pending,where:status = 'pending'" validate:"required"`
	DeveloperID uuid.UUID         `json:"developer_id" gorm:"type:uuid;not null;uniqueIndex:idx_applications_pending,where:status = 'pending'" validate:"required"`
	OpenRoleID  uuid.UUID         `json:"open_role_id" gorm:"type:uuid;not null;uniqueIndex:idx_applications_pending,where:status = 'pending'" validate:"required"`
	Status      ApplicationStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	Message     string            `json:"message" gorm:"type:text"`

	// Relationships
	Project   Project         `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Developer Developer       `json:"developer,omitempty" gorm:"foreignKey:DeveloperID;constraint:OnDelete:CASCADE"`
	OpenRole  ProjectOpenRole `json:"open_role,omitempty" gorm:"foreignKey:OpenRoleID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for ProjectApplication
func (ProjectApplication) TableName() string {
	return "project_applications"
}
