package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the workflow status of a task
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// IsValid checks if the TaskStatus is valid
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskDone:
		return true
	}
	return false
}

// Tag represents a label attachable to tasks
type Tag struct {
	BaseModel
	Name string `json:"name" gorm:"not null;size:50;uniqueIndex" validate:"required,max=50"`
}

// TableName returns the table name for Tag
func (Tag) TableName() string {
	return "tags"
}

// Task represents a unit of work within a project
type Task struct {
	BaseModel
	ProjectID   uuid.UUID  `json:"project_id" gorm:"type:uuid;not null;index" validate:"required"`
	Title       string     `json:"title" gorm:"not null;size:255" validate:"required,min=1,max=255"`
	Description string     `json:"description" gorm:"type:text"`
	Status      TaskStatus `json:"status" gorm:"type:varchar(50);not null;default:'todo'"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty" gorm:"type:uuid;index"`
	CreatedByID *uuid.UUID `json:"created_by_id,omitempty" gorm:"type:uuid;index"`
	Deadline    *time.Time `json:"deadline,omitempty"`

	// Relationships
	Project   Project    `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Assignee  *Developer `json:"assignee,omitempty" gorm:"foreignKey:AssigneeID;constraint:OnDelete:SET NULL"`
	CreatedBy *Developer `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`
	Tags      []Tag      `json:"tags,omitempty" gorm:"many2many:task_tags;"`
}

// TableName returns the table name for Task
func (Task) TableName() string {
	return "tasks"
}
