package repository

import (
	"context"
	"errors"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
)

// ErrTaskNotFound is returned when a task does not exist in the given project.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository persists tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	// FindInProject returns the task only if it belongs to projectID.
	FindInProject(ctx context.Context, projectID, taskID int64) (*entity.Task, error)
	// ListByProject returns all tasks of a project.
	ListByProject(ctx context.Context, projectID int64) ([]*entity.Task, error)
	// ListVisible returns tasks of a project assigned to userID or owned by one of teamIDs.
	ListVisible(ctx context.Context, projectID, userID int64, teamIDs []int64) ([]*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, projectID, taskID int64) error
}
