package models

import (
	"github.com/google/uuid"
)

// RatingScoreMin and RatingScoreMax bound the accepted rating scores
const (
	RatingScoreMin = 1
	RatingScoreMax = 5
)

// ProjectRating represents a single 1-5 rating of a project by a developer.
// Each developer rates a project at most once.
type ProjectRating struct {
	BaseModel
	ProjectID uuid.UUID `json:"project_id" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_project_rater" validate:"required"`
	RaterID   uuid.UUID `json:"rater_id" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_project_rater" validate:"required"`
	Score     int       `json:"score" gorm:"not null" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment" gorm:"type:text"`

	// Relationships
	Project Project   `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Rater   Developer `json:"rater,omitempty" gorm:"foreignKey:RaterID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for ProjectRating
func (ProjectRating) TableName() string {
	return "project_ratings"
}
