package models

import (
	"github.com/google/uuid"
)

// MembershipRole represents the role of a developer within a project
type MembershipRole string

const (
	RoleDeveloper MembershipRole = "DEV"
	RoleTeamLead  MembershipRole = "LEAD"
	RolePM        MembershipRole = "PM"
	RoleMentor    MembershipRole = "Mentor"
)

// IsValid checks if the MembershipRole is valid
func (r MembershipRole) IsValid() bool {
	switch r {
	case RoleDeveloper, RoleTeamLead, RolePM, RoleMentor:
		return true
	}
	return false
}

// Capability represents a project-scoped permission a membership can grant.
// The set is closed: unknown capabilities evaluate to false, never an error.
type Capability string

const (
	CapabilityEditProjectInfo    Capability = "edit_project_info"
	CapabilityAddTask            Capability = "add_task"
	CapabilityUpdateProjectStage Capability = "update_project_stage"
	CapabilityManageOpenRoles    Capability = "manage_open_roles"
)

// Membership links a developer to a project with a role and capability flags.
// At most one membership exists per (project, developer) pair.
type Membership struct {
	BaseModel
	ProjectID   uuid.UUID      `json:"project_id" gorm:"type:uuid;not null;uniqueIndex:idx_memberships_project_developer" validate:"required"`
	DeveloperID uuid.UUID      `json:"developer_id" gorm:"type:uuid;not null;uniqueIndex:idx_memberships_project_developer" validate:"required"`
	Role        MembershipRole `json:"role" gorm:"type:varchar(10);not null;default:'DEV'" validate:"required"`

	// Capability flags are independent of each other and of the role.
	EditProjectInfoPerm    bool `json:"edit_project_info_perm" gorm:"not null;default:false"`
	AddTaskPerm            bool `json:"add_task_perm" gorm:"not null;default:false"`
	UpdateProjectStagePerm bool `json:"update_project_stage_perm" gorm:"not null;default:false"`
	ManageOpenRolesPerm    bool `json:"manage_open_roles_perm" gorm:"not null;default:false"`

	// Relationships
	Project   Project   `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Developer Developer `json:"developer,omitempty" gorm:"foreignKey:DeveloperID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Membership
func (Membership) TableName() string {
	return "memberships"
}

// HasCapability returns the stored flag for the named capability.
// Unknown capabilities return false. The owner override is applied by the
// permission evaluator, not here.
func (m *Membership) HasCapability(capability Capability) bool {
	switch capability {
	case CapabilityEditProjectInfo:
		return m.EditProjectInfoPerm
	case CapabilityAddTask:
		return m.AddTaskPerm
	case CapabilityUpdateProjectStage:
		return m.UpdateProjectStagePerm
	case CapabilityManageOpenRoles:
		return m.ManageOpenRolesPerm
	}
	return false
}

// GrantAll enables every capability flag on the membership
func (m *Membership) GrantAll() {
	m.EditProjectInfoPerm = true
	m.AddTaskPerm = true
	m.UpdateProjectStagePerm = true
	m.ManageOpenRolesPerm = true
}
