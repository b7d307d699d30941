package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.uber.org/fx"

	deliverycontext "github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/delivery/context"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
	domainerrors "github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/repository"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/usecase"
)

type taskService struct {
	taskRepo       repository.TaskRepository
	teamRepo       repository.TeamRepository
	membershipRepo repository.MembershipRepository
	access         usecase.AccessUsecase
	logger         *slog.Logger
}

// TaskServiceParams holds dependencies for TaskService, injected by Fx.
type TaskServiceParams struct {
	fx.In

	TaskRepo       repository.TaskRepository
	TeamRepo       repository.TeamRepository
	MembershipRepo repository.MembershipRepository
	Access         usecase.AccessUsecase
	Logger         *slog.Logger
}

// NewTaskService is the constructor for taskService.
func NewTaskService(params TaskServiceParams) usecase.TaskUsecase {
	return &taskService{
		taskRepo:       params.TaskRepo,
		teamRepo:       params.TeamRepo,
		membershipRepo: params.MembershipRepo,
		access:         params.Access,
		logger:         params.Logger,
	}
}

func (srv *taskService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *taskService) CreateTask(ctx context.Context, actor *entity.User, projectID int64, input usecase.CreateTaskInput) (*entity.Task, error) {
	if _, err := srv.access.AuthorizeTaskCreation(ctx, actor, projectID); err != nil {
		return nil, err
	}

	task := &entity.Task{
		ProjectID:   projectID,
		TeamID:      input.TeamID,
		AssigneeID:  input.AssigneeID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		CreatedBy:   actor.ID,
	}
	if task.Status == "" {
		task.Status = entity.TaskStatusTodo
	}
	if task.Priority == "" {
		task.Priority = entity.TaskPriorityMedium
	}

	if err := srv.validateTask(ctx, task, entity.AllTaskFields); err != nil {
		return nil, err
	}

	if err := srv.taskRepo.Create(ctx, task); err != nil {
		return nil, errors.Wrap(err, "failed to create task")
	}

	srv.log(ctx).Info("Task created",
		slog.Int64("projectID", projectID),
		slog.Int64("taskID", task.ID),
		slog.Int64("createdBy", actor.ID),
	)

	return task, nil
}

func (srv *taskService) ListTasks(ctx context.Context, actor *entity.User, projectID int64) ([]*entity.Task, error) {
	role, err := srv.access.ResolveProjectRole(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}

	if role != entity.RoleProjectMember {
		return srv.taskRepo.ListByProject(ctx, projectID)
	}

	led, err := srv.teamRepo.LedTeamIDs(ctx, projectID, actor.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load led teams")
	}

	return srv.taskRepo.ListVisible(ctx, projectID, actor.ID, led)
}

func (srv *taskService) GetTask(ctx context.Context, actor *entity.User, projectID, taskID int64) (*entity.Task, error) {
	_, task, err := srv.access.AuthorizeTaskAccess(ctx, actor, projectID, taskID)

	return task, err
}

// UpdateTask filters the patch down to what the caller's role permits before writing it.
func (srv *taskService) UpdateTask(ctx context.Context, actor *entity.User, projectID, taskID int64, patch entity.TaskPatch) (*entity.Task, error) {
	role, task, err := srv.access.AuthorizeTaskAccess(ctx, actor, projectID, taskID)
	if err != nil {
		return nil, err
	}

	allowed := patch.Restrict(role.PermittedTaskFields())
	if dropped := patch.Fields() &^ allowed.Fields(); dropped != 0 {
		srv.log(ctx).Debug("Dropped task fields outside role",
			slog.Int64("taskID", taskID),
			slog.String("role", role.String()),
			slog.Any("dropped", dropped.Names()),
		)
	}
	if allowed.IsEmpty() {
		return task, nil
	}

	allowed.ApplyTo(task)
	if err := srv.validateTask(ctx, task, allowed.Fields()); err != nil {
		return nil, err
	}

	if err := srv.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, domainerrors.ErrNotFound.WithDetails("task not found")
		}

		return nil, errors.Wrap(err, "failed to update task")
	}

	return task, nil
}

// DeleteTask requires project management rights. Existence is checked first.
func (srv *taskService) DeleteTask(ctx context.Context, actor *entity.User, projectID, taskID int64) error {
	role, _, err := srv.access.AuthorizeTaskAccess(ctx, actor, projectID, taskID)
	if err != nil {
		return err
	}
	if !role.CanManageProject() {
		return domainerrors.ErrForbidden
	}

	if err := srv.taskRepo.Delete(ctx, projectID, taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return domainerrors.ErrNotFound.WithDetails("task not found")
		}

		return errors.Wrap(err, "failed to delete task")
	}

	return nil
}

// validateTask checks the given fields of task: enum values, and that team and assignee belong to the task's project.
func (srv *taskService) validateTask(ctx context.Context, task *entity.Task, fields entity.TaskFieldSet) error {
	if fields.Has(entity.TaskFieldTitle) && strings.TrimSpace(task.Title) == "" {
		return domainerrors.ErrValidationFailed.WithDetails("title is required")
	}
	if fields.Has(entity.TaskFieldStatus) && !task.Status.IsValid() {
		return domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("invalid status %q", task.Status))
	}
	if fields.Has(entity.TaskFieldPriority) && !task.Priority.IsValid() {
		return domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("invalid priority %q", task.Priority))
	}

	if fields.Has(entity.TaskFieldTeam) && task.TeamID != nil {
		if _, err := srv.teamRepo.FindInProject(ctx, task.ProjectID, *task.TeamID); err != nil {
			if errors.Is(err, repository.ErrTeamNotFound) {
				return domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("team %d is not part of the project", *task.TeamID))
			}

			return errors.Wrap(err, "failed to load team")
		}
	}

	if fields.Has(entity.TaskFieldAssignee) && task.AssigneeID != nil {
		return requireProjectMember(ctx, srv.membershipRepo, task.ProjectID, *task.AssigneeID)
	}

	return nil
}
