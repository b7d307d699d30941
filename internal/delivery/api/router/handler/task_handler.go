package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/delivery/api/response"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/usecase"
)

type createTaskRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=5000"`
	Status      string     `json:"status" validate:"omitempty,oneof=todo in_progress review done"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"dueDate"`
	AssigneeID  *int64     `json:"assigneeId" validate:"omitempty,min=1"`
	TeamID      *int64     `json:"teamId" validate:"omitempty,min=1"`
}

// updateTaskRequest is a partial update; absent fields stay unchanged.
type updateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=5000"`
	Status      *string    `json:"status" validate:"omitempty,oneof=todo in_progress review done"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"dueDate"`
	AssigneeID  *int64     `json:"assigneeId" validate:"omitempty,min=1"`
	TeamID      *int64     `json:"teamId" validate:"omitempty,min=1"`
}

func (r updateTaskRequest) patch() entity.TaskPatch {
	p := entity.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		AssigneeID:  r.AssigneeID,
		TeamID:      r.TeamID,
	}
	if r.Status != nil {
		status := entity.TaskStatus(*r.Status)
		p.Status = &status
	}
	if r.Priority != nil {
		priority := entity.TaskPriority(*r.Priority)
		p.Priority = &priority
	}

	return p
}

// TaskHandler serves the tasks of one project.
type TaskHandler struct {
	tasks usecase.TaskUsecase
}

// NewTaskHandler is the constructor for TaskHandler.
func NewTaskHandler(tasks usecase.TaskUsecase) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

func (h *TaskHandler) List(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}

	tasks, err := h.tasks.ListTasks(c.Request().Context(), user, projectID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tasks)
}

func (h *TaskHandler) Create(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.tasks.CreateTask(c.Request().Context(), user, projectID, usecase.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      entity.TaskStatus(req.Status),
		Priority:    entity.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
		AssigneeID:  req.AssigneeID,
		TeamID:      req.TeamID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, task)
}

func (h *TaskHandler) Get(c echo.Context) error {
	user, projectID, taskID, err := h.taskParams(c)
	if err != nil {
		return err
	}

	task, err := h.tasks.GetTask(c.Request().Context(), user, projectID, taskID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, task)
}

// Update applies the fields the caller's role allows and silently ignores the rest.
func (h *TaskHandler) Update(c echo.Context) error {
	user, projectID, taskID, err := h.taskParams(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.tasks.UpdateTask(c.Request().Context(), user, projectID, taskID, req.patch())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, task)
}

func (h *TaskHandler) Delete(c echo.Context) error {
	user, projectID, taskID, err := h.taskParams(c)
	if err != nil {
		return err
	}

	if err := h.tasks.DeleteTask(c.Request().Context(), user, projectID, taskID); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

func (h *TaskHandler) taskParams(c echo.Context) (*entity.User, int64, int64, error) {
	user, err := actor(c)
	if err != nil {
		return nil, 0, 0, err
	}
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return nil, 0, 0, err
	}
	taskID, err := pathID(c, "taskId")
	if err != nil {
		return nil, 0, 0, err
	}

	return user, projectID, taskID, nil
}
