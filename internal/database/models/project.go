package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectDomain represents the business domain of a project
type ProjectDomain string

const (
	DomainTechnology ProjectDomain = "technology"
	DomainMarketing  ProjectDomain = "marketing"
	DomainFinance    ProjectDomain = "finance"
	DomainEducation  ProjectDomain = "education"
	DomainHealthcare ProjectDomain = "healthcare"
	DomainEcommerce  ProjectDomain = "ecommerce"
	DomainOther      ProjectDomain = "other"
)

// IsValid checks if the ProjectDomain is valid
func (d ProjectDomain) IsValid() bool {
	switch d {
	case DomainTechnology, DomainMarketing, DomainFinance, DomainEducation, DomainHealthcare, DomainEcommerce, DomainOther:
		return true
	}
	return false
}

// DevelopmentStage represents a stage in the ordered project lifecycle
type DevelopmentStage string

const (
	StageInitiation     DevelopmentStage = "initiation"
	StagePlanning       DevelopmentStage = "planning"
	StageDesign         DevelopmentStage = "design"
	StageImplementation DevelopmentStage = "implementation"
	StageTesting        DevelopmentStage = "testing"
	StageCompleted      DevelopmentStage = "completed"
	StageDeployed       DevelopmentStage = "deployed"
)

// stageOrder defines the lifecycle ordering of development stages
var stageOrder = map[DevelopmentStage]int{
	StageInitiation:     0,
	StagePlanning:       1,
	StageDesign:         2,
	StageImplementation: 3,
	StageTesting:        4,
	StageCompleted:      5,
	StageDeployed:       6,
}

// IsValid checks if the DevelopmentStage is valid
func (s DevelopmentStage) IsValid() bool {
	_, ok := stageOrder[s]
	return ok
}

// Rank returns the position of the stage in the lifecycle (-1 for unknown stages)
func (s DevelopmentStage) Rank() int {
	if rank, ok := stageOrder[s]; ok {
		return rank
	}
	return -1
}

// RequiresDeployURL reports whether a project in this stage must have a deploy URL
func (s DevelopmentStage) RequiresDeployURL() bool {
	return s == StageDeployed
}

// Project represents a collaboration project owned by a developer
type Project struct {
	BaseModel
	UID              string           `json:"uid" gorm:"not null;size:40;uniqueIndex"`
	Name             string           `json:"name" gorm:"not null;size:255" validate:"required,min=1,max=255"`
	Description      string           `json:"description" gorm:"type:text"`
	Domain           ProjectDomain    `json:"domain" gorm:"type:varchar(50);not null;default:'other'"`
	DevelopmentStage DevelopmentStage `json:"development_stage" gorm:"type:varchar(50);not null;default:'initiation'"`
	DeployURL        string           `json:"deploy_url" gorm:"size:255"`
	ProjectURL       string           `json:"project_url" gorm:"size:255"`
	OwnerID          uuid.UUID        `json:"owner_id" gorm:"type:uuid;not null;index" validate:"required"`
	OpenToCandidates bool             `json:"open_to_candidates" gorm:"not null;default:false"`
	Score            float64          `json:"score" gorm:"not null;default:0"`

	// Relationships
	Owner        Developer            `json:"owner,omitempty" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Memberships  []Membership         `json:"memberships,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	OpenRoles    []ProjectOpenRole    `json:"open_roles,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Applications []ProjectApplication `json:"applications,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Ratings      []ProjectRating      `json:"ratings,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Tasks        []Task               `json:"tasks,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Project
func (Project) TableName() string {
	return "projects"
}

// BeforeCreate sets the UUID and external UID if not already set
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.UID == "" {
		p.UID = uuid.New().String()
	}
	return nil
}

// IsOwnedBy reports whether the given developer owns the project
func (p *Project) IsOwnedBy(developerID uuid.UUID) bool {
	return developerID != uuid.Nil && p.OwnerID == developerID
}
