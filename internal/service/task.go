package service

import (
	"errors"
	"fmt"
	"time"

	"teammate-backend/internal/database/models"
	apperrors "teammate-backend/internal/errors"
	"teammate-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskService handles business logic for project tasks. Assignees must be
// project members. A task may be edited by its creator; the assignee may
// additionally move it between statuses but change nothing else.
type TaskService struct {
	repo           *repository.TaskRepository
	projectRepo    *repository.ProjectRepository
	membershipRepo *repository.MembershipRepository
	validator      *validator.Validate
}

// NewTaskService creates a new task service
func NewTaskService(repo *repository.TaskRepository, projectRepo *repository.ProjectRepository, membershipRepo *repository.MembershipRepository, validator *validator.Validate) *TaskService {
	return &TaskService{
		repo:           repo,
		projectRepo:    projectRepo,
		membershipRepo: membershipRepo,
		validator:      validator,
	}
}

// CreateTaskRequest represents the data needed to create a task
type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=255"`
	Description string     `json:"description" validate:"max=2000"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
	Deadline    *time.Time `json:"deadline"`
	Tags        []string   `json:"tags" validate:"max=10,dive,max=50"`
}

// UpdateTaskRequest represents the data needed to update a task
type UpdateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Status      *string    `json:"status"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
	Deadline    *time.Time `json:"deadline"`
	Tags        []string   `json:"tags" validate:"max=10,dive,max=50"`
}

// TaskResponse represents the response data for a task
type TaskResponse struct {
	ID          uuid.UUID         `json:"id"`
	ProjectID   uuid.UUID         `json:"project_id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Status      models.TaskStatus `json:"status"`
	AssigneeID  *uuid.UUID        `json:"assignee_id,omitempty"`
	CreatedByID *uuid.UUID        `json:"created_by_id,omitempty"`
	Deadline    *time.Time        `json:"deadline,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
}

// CreateTask creates a task on a project. The creator is recorded and an
// assignee, if given, must already be a project member.
func (s *TaskService) CreateTask(creatorID, projectID uuid.UUID, req *CreateTaskRequest) (*TaskResponse, error) {
	// Validate request
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.projectRepo.GetByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if req.AssigneeID != nil {
		if err := s.checkAssignee(projectID, *req.AssigneeID); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskTodo,
		AssigneeID:  req.AssigneeID,
		CreatedByID: &creatorID,
		Deadline:    req.Deadline,
	}

	if err := s.repo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if len(req.Tags) > 0 {
		tags, err := s.repo.FindOrCreateTags(req.Tags)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tags: %w", err)
		}
		if err := s.repo.ReplaceTags(task, tags); err != nil {
			return nil, fmt.Errorf("failed to attach tags: %w", err)
		}
		task.Tags = tags
	}

	return s.toResponse(task), nil
}

// UpdateTask applies changes to a task on behalf of a developer. The
// creator may change anything; the assignee may only change the status.
func (s *TaskService) UpdateTask(developerID, projectID, taskID uuid.UUID, req *UpdateTaskRequest) (*TaskResponse, error) {
	// Validate request
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	task, err := s.getProjectTask(projectID, taskID)
	if err != nil {
		return nil, err
	}

	isCreator := task.CreatedByID != nil && *task.CreatedByID == developerID
	isAssignee := task.AssigneeID != nil && *task.AssigneeID == developerID
	if !isCreator && !isAssignee {
		return nil, apperrors.ErrPermissionDenied
	}
	if !isCreator {
		// Assignees can only move the task between statuses
		if req.Title != nil || req.Description != nil || req.AssigneeID != nil || req.Deadline != nil || len(req.Tags) > 0 {
			return nil, apperrors.ErrPermissionDenied
		}
	}

	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		if !status.IsValid() {
			return nil, apperrors.NewValidationError("status", fmt.Sprintf("invalid task status: %s", *req.Status))
		}
		task.Status = status
	}
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.AssigneeID != nil {
		if err := s.checkAssignee(projectID, *req.AssigneeID); err != nil {
			return nil, err
		}
		task.AssigneeID = req.AssigneeID
	}
	if req.Deadline != nil {
		task.Deadline = req.Deadline
	}

	if err := s.repo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if isCreator && req.Tags != nil {
		tags, err := s.repo.FindOrCreateTags(req.Tags)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tags: %w", err)
		}
		if err := s.repo.ReplaceTags(task, tags); err != nil {
			return nil, fmt.Errorf("failed to attach tags: %w", err)
		}
		task.Tags = tags
	}

	return s.toResponse(task), nil
}

// ListByProject retrieves all tasks for a project
func (s *TaskService) ListByProject(projectID uuid.UUID) ([]TaskResponse, error) {
	if _, err := s.projectRepo.GetByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	tasks, err := s.repo.GetByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	responses := make([]TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = *s.toResponse(&tasks[i])
	}
	return responses, nil
}

// DeleteTask removes a task. Only the creator may delete it.
func (s *TaskService) DeleteTask(developerID, projectID, taskID uuid.UUID) error {
	task, err := s.getProjectTask(projectID, taskID)
	if err != nil {
		return err
	}

	if task.CreatedByID == nil || *task.CreatedByID != developerID {
		return apperrors.ErrPermissionDenied
	}

	if err := s.repo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *TaskService) checkAssignee(projectID, assigneeID uuid.UUID) error {
	isMember, err := s.membershipRepo.ExistsByProjectAndDeveloper(projectID, assigneeID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !isMember {
		return apperrors.ErrAssigneeNotMember
	}
	return nil
}

func (s *TaskService) getProjectTask(projectID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.repo.GetByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task.ProjectID != projectID {
		return nil, apperrors.ErrTaskNotFound
	}
	return task, nil
}

func (s *TaskService) toResponse(task *models.Task) *TaskResponse {
	resp := &TaskResponse{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		AssigneeID:  task.AssigneeID,
		CreatedByID: task.CreatedByID,
		Deadline:    task.Deadline,
		CreatedAt:   task.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   task.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	for _, tag := range task.Tags {
		resp.Tags = append(resp.Tags, tag.Name)
	}
	return resp
}
