package handlers

import (
	"net/http"

	"teammate-backend/internal/auth"
	"teammate-backend/internal/database/models"
	apperrors "teammate-backend/internal/errors"
	"teammate-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskHandler handles HTTP requests for project tasks
type TaskHandler struct {
	taskService       *service.TaskService
	permissionService *service.PermissionService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *service.TaskService, permissionService *service.PermissionService) *TaskHandler {
	return &TaskHandler{
		taskService:       taskService,
		permissionService: permissionService,
	}
}

// CreateTask creates a task on a project
// @Summary Create a task
// @Description Create a task on a project. Requires the add_task capability. An assignee must be a project member.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param task body service.CreateTaskRequest true "Task data"
// @Success 201 {object} service.TaskResponse "Successfully created task"
// @Failure 400 {object} ErrorResponse "Invalid request body or assignee not a member"
// @Failure 403 {object} ErrorResponse "Permission denied"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{id}/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid project ID"})
		return
	}

	developerID, _ := auth.GetDeveloperID(c)
	if err := h.permissionService.Require(developerID, projectID, models.CapabilityAddTask); err != nil {
		respondError(c, err)
		return
	}

	var req service.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	task, err := h.taskService.CreateTask(developerID, projectID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// ListTasks lists the tasks of a project
// @Summary List project tasks
// @Description Get all tasks for a project with assignees and tags
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 200 {array} service.TaskResponse "Successfully retrieved tasks"
// @Failure 400 {object} ErrorResponse "Invalid project ID"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /projects/{id}/tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid project ID"})
		return
	}

	tasks, err := h.taskService.ListByProject(projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// UpdateTask updates a task
// @Summary Update a task
// @Description Update a task. The creator may change anything; the assignee may only change the status.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param taskId path string true "Task ID (UUID)"
// @Param task body service.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} service.TaskResponse "Successfully updated task"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 403 {object} ErrorResponse "Not the creator or assignee"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /projects/{id}/tasks/{taskId} [patch]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	projectID, taskID, ok := h.parseTaskPath(c)
	if !ok {
		return
	}

	developerID, authed := auth.GetDeveloperID(c)
	if !authed {
		respondError(c, apperrors.ErrNotAuthenticated)
		return
	}

	var req service.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	task, err := h.taskService.UpdateTask(developerID, projectID, taskID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task
// @Summary Delete a task
// @Description Delete a task. Only its creator may delete it.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param taskId path string true "Task ID (UUID)"
// @Success 204 "Successfully deleted task"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 403 {object} ErrorResponse "Not the creator"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /projects/{id}/tasks/{taskId} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	projectID, taskID, ok := h.parseTaskPath(c)
	if !ok {
		return
	}

	developerID, authed := auth.GetDeveloperID(c)
	if !authed {
		respondError(c, apperrors.ErrNotAuthenticated)
		return
	}

	if err := h.taskService.DeleteTask(developerID, projectID, taskID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) parseTaskPath(c *gin.Context) (projectID, taskID uuid.UUID, ok bool) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid project ID"})
		return uuid.Nil, uuid.Nil, false
	}
	taskID, err = uuid.Parse(c.Param("taskId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid task ID"})
		return uuid.Nil, uuid.Nil, false
	}
	return projectID, taskID, true
}
