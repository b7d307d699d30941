package impl

import (
	"context"
	"log/slog"
	"slices"

	"go.uber.org/fx"

	deliverycontext "github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/delivery/context"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
	domainerrors "github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/repository"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/usecase"
)

// accessService implements the three-tier resolution: system role, project membership, task scope.
type accessService struct {
	projectRepo    repository.ProjectRepository
	membershipRepo repository.MembershipRepository
	teamRepo       repository.TeamRepository
	taskRepo       repository.TaskRepository
	logger         *slog.Logger
}

// AccessServiceParams holds dependencies for AccessService, injected by Fx.
type AccessServiceParams struct {
	fx.In

	ProjectRepo    repository.ProjectRepository
	MembershipRepo repository.MembershipRepository
	TeamRepo       repository.TeamRepository
	TaskRepo       repository.TaskRepository
	Logger         *slog.Logger
}

// NewAccessService is the constructor for accessService.
func NewAccessService(params AccessServiceParams) usecase.AccessUsecase {
	return &accessService{
		projectRepo:    params.ProjectRepo,
		membershipRepo: params.MembershipRepo,
		teamRepo:       params.TeamRepo,
		taskRepo:       params.TaskRepo,
		logger:         params.Logger,
	}
}

func (srv *accessService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ResolveProjectRole checks membership before existence for non-admins, so a missing
// project and a project the caller cannot see both answer ErrForbidden.
func (srv *accessService) ResolveProjectRole(ctx context.Context, actor *entity.User, projectID int64) (entity.ResolvedRole, error) {
	if actor == nil {
		return entity.RoleNone, domainerrors.ErrUnauthenticated
	}

	if actor.IsAdmin() {
		if _, err := srv.projectRepo.FindByID(ctx, projectID); err != nil {
			if errors.Is(err, repository.ErrProjectNotFound) {
				return entity.RoleNone, domainerrors.ErrNotFound.WithDetails("project not found")
			}

			return entity.RoleNone, errors.Wrap(err, "failed to load project")
		}

		return entity.RoleElevated, nil
	}

	membership, err := srv.membershipRepo.Find(ctx, projectID, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrMembershipNotFound) {
			return entity.RoleNone, domainerrors.ErrForbidden
		}

		return entity.RoleNone, errors.Wrap(err, "failed to load project membership")
	}

	role := entity.ResolvedRoleFor(membership.Role)
	if role == entity.RoleNone {
		srv.log(ctx).Warn("Unknown project role",
			slog.Int64("projectID", projectID),
			slog.Int64("userID", actor.ID),
			slog.String("role", string(membership.Role)),
		)

		return entity.RoleNone, domainerrors.ErrForbidden
	}

	return role, nil
}

func (srv *accessService) AuthorizeTaskCreation(ctx context.Context, actor *entity.User, projectID int64) (entity.ResolvedRole, error) {
	role, err := srv.ResolveProjectRole(ctx, actor, projectID)
	if err != nil {
		return entity.RoleNone, err
	}

	if role != entity.RoleProjectMember {
		return role, nil
	}

	led, err := srv.teamRepo.LedTeamIDs(ctx, projectID, actor.ID)
	if err != nil {
		return entity.RoleNone, errors.Wrap(err, "failed to load led teams")
	}
	if len(led) == 0 {
		return entity.RoleNone, domainerrors.ErrForbidden.WithDetails("only team leaders may create tasks")
	}

	return role, nil
}

// AuthorizeTaskAccess answers ErrNotFound for a task outside the project before any permission check.
func (srv *accessService) AuthorizeTaskAccess(ctx context.Context, actor *entity.User, projectID, taskID int64) (entity.ResolvedRole, *entity.Task, error) {
	role, err := srv.ResolveProjectRole(ctx, actor, projectID)
	if err != nil {
		return entity.RoleNone, nil, err
	}

	task, err := srv.taskRepo.FindInProject(ctx, projectID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return entity.RoleNone, nil, domainerrors.ErrNotFound.WithDetails("task not found")
		}

		return entity.RoleNone, nil, errors.Wrap(err, "failed to load task")
	}

	if role != entity.RoleProjectMember || task.IsAssignedTo(actor.ID) {
		return role, task, nil
	}

	if task.TeamID != nil {
		led, err := srv.teamRepo.LedTeamIDs(ctx, projectID, actor.ID)
		if err != nil {
			return entity.RoleNone, nil, errors.Wrap(err, "failed to load led teams")
		}
		if slices.Contains(led, *task.TeamID) {
			return role, task, nil
		}
	}

	return entity.RoleNone, nil, domainerrors.ErrForbidden
}
