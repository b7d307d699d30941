package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
	domainerrors "github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/repository"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/infra/persistence/model"
)

var taskUpdateColumns = []string{
	"team_id", "assignee_id", "title", "description", "status", "priority", "due_date",
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository is the constructor for taskRepository.
func NewTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

func (repo *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	taskM := fromTaskDomain(task)
	if err := repo.db.WithContext(ctx).Create(taskM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrNotFound.WithDetails("referenced project or team does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create task")
	}

	task.ID = taskM.ID
	task.CreatedAt = taskM.CreatedAt
	task.UpdatedAt = taskM.UpdatedAt

	return nil
}

func (repo *taskRepository) FindInProject(ctx context.Context, projectID, taskID int64) (*entity.Task, error) {
	var taskM model.TaskModel
	err := repo.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", taskID, projectID).
		First(&taskM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTaskNotFound
		}

		return nil, errors.Wrap(err, "failed to find task")
	}

	return toTaskDomain(&taskM), nil
}

func (repo *taskRepository) ListByProject(ctx context.Context, projectID int64) ([]*entity.Task, error) {
	var taskMs []*model.TaskModel
	err := repo.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("id").
		Find(&taskMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tasks")
	}

	return toTaskDomainList(taskMs), nil
}

func (repo *taskRepository) ListVisible(ctx context.Context, projectID, userID int64, teamIDs []int64) ([]*entity.Task, error) {
	query := repo.db.WithContext(ctx).Where("project_id = ?", projectID)
	if len(teamIDs) > 0 {
		query = query.Where("(assignee_id = ? OR team_id IN ?)", userID, teamIDs)
	} else {
		query = query.Where("assignee_id = ?", userID)
	}

	var taskMs []*model.TaskModel
	if err := query.Order("id").Find(&taskMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list visible tasks")
	}

	return toTaskDomainList(taskMs), nil
}

// Update writes every mutable column, including cleared ones.
func (repo *taskRepository) Update(ctx context.Context, task *entity.Task) error {
	taskM := fromTaskDomain(task)
	result := repo.db.WithContext(ctx).
		Model(taskM).
		Where("project_id = ?", task.ProjectID).
		Select(taskUpdateColumns).
		Updates(taskM)
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrNotFound.WithDetails("referenced team does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update task")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}

	task.UpdatedAt = taskM.UpdatedAt

	return nil
}

func (repo *taskRepository) Delete(ctx context.Context, projectID, taskID int64) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", taskID, projectID).
		Delete(&model.TaskModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete task")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}

	return nil
}

func toTaskDomain(data *model.TaskModel) *entity.Task {
	return &entity.Task{
		ID:          data.ID,
		ProjectID:   data.ProjectID,
		TeamID:      data.TeamID,
		AssigneeID:  data.AssigneeID,
		Title:       data.Title,
		Description: data.Description,
		Status:      entity.TaskStatus(data.Status),
		Priority:    entity.TaskPriority(data.Priority),
		DueDate:     data.DueDate,
		CreatedBy:   data.CreatedBy,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toTaskDomainList(data []*model.TaskModel) []*entity.Task {
	tasks := make([]*entity.Task, 0, len(data))
	for _, t := range data {
		tasks = append(tasks, toTaskDomain(t))
	}

	return tasks
}

func fromTaskDomain(data *entity.Task) *model.TaskModel {
	return &model.TaskModel{
		ID:          data.ID,
		ProjectID:   data.ProjectID,
		TeamID:      data.TeamID,
		AssigneeID:  data.AssigneeID,
		Title:       data.Title,
		Description: data.Description,
		Status:      string(data.Status),
		Priority:    string(data.Priority),
		DueDate:     data.DueDate,
		CreatedBy:   data.CreatedBy,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
