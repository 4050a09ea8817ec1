package models

// DeveloperPosition represents the primary position of a developer
type DeveloperPosition string

const (
	PositionBackend  DeveloperPosition = "backend"
	PositionFrontend DeveloperPosition = "frontend"
	PositionQA       DeveloperPosition = "qa"
	PositionDesigner DeveloperPosition = "designer"
	PositionPM       DeveloperPosition = "pm"
	PositionMentor   DeveloperPosition = "mentor"
)

// IsValid checks if the DeveloperPosition is valid
func (p DeveloperPosition) IsValid() bool {
	switch p {
	case PositionBackend, PositionFrontend, PositionQA, PositionDesigner, PositionPM, PositionMentor:
		return true
	}
	return false
}

// Developer represents a registered developer account
type Developer struct {
	BaseModel
	Username        string            `json:"username" gorm:"not null;size:150;uniqueIndex" validate:"required,min=1,max=150"`
	Email           string            `json:"email" gorm:"not null;size:255;uniqueIndex" validate:"required,email,max=255"`
	PasswordHash    string            `json:"-" gorm:"size:255"` // empty for OAuth-only accounts
	GitHubID        *int64            `json:"github_id,omitempty" gorm:"uniqueIndex"`
	Position        DeveloperPosition `json:"position" gorm:"type:varchar(50);not null;default:'backend'"`
	Score           float64           `json:"score" gorm:"default:0"`
	TechStack       string            `json:"tech_stack" gorm:"size:255"`
	LinkedinURL     string            `json:"linkedin_url" gorm:"size:255"`
	PortfolioURL    string            `json:"portfolio_url" gorm:"size:255"`
	TelegramContact string            `json:"telegram_contact" gorm:"size:255"`
	DiscordContact  string            `json:"discord_contact" gorm:"size:255"`

	// Relationships
	OwnedProjects []Project    `json:"owned_projects,omitempty" gorm:"foreignKey:OwnerID"`
	Memberships   []Membership `json:"memberships,omitempty" gorm:"foreignKey:DeveloperID"`
}

// TableName returns the table name for Developer
func (Developer) TableName() string {
	return "developers"
}
