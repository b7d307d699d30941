package usecase

import (
	"context"
	"time"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
)

// CreateTaskInput defines a new task. Empty status and priority fall back to todo and medium.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      entity.TaskStatus
	Priority    entity.TaskPriority
	DueDate     *time.Time
	AssigneeID  *int64
	TeamID      *int64
}

// TaskUsecase manages tasks. Every operation is gated by the AccessUsecase.
type TaskUsecase interface {
	CreateTask(ctx context.Context, actor *entity.User, projectID int64, input CreateTaskInput) (*entity.Task, error)
	// ListTasks returns every task to admins and leaders; members see tasks they are assigned
	// to or that belong to a team they lead.
	ListTasks(ctx context.Context, actor *entity.User, projectID int64) ([]*entity.Task, error)
	GetTask(ctx context.Context, actor *entity.User, projectID, taskID int64) (*entity.Task, error)
	// UpdateTask silently drops the fields the caller's role may not change.
	UpdateTask(ctx context.Context, actor *entity.User, projectID, taskID int64, patch entity.TaskPatch) (*entity.Task, error)
	DeleteTask(ctx context.Context, actor *entity.User, projectID, taskID int64) error
}
