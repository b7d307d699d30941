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

type projectService struct {
	txManager      repository.TransactionManager
	projectRepo    repository.ProjectRepository
	membershipRepo repository.MembershipRepository
	userRepo       repository.UserRepository
	access         usecase.AccessUsecase
	logger         *slog.Logger
}

// ProjectServiceParams holds dependencies for ProjectService, injected by Fx.
type ProjectServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	ProjectRepo    repository.ProjectRepository
	MembershipRepo repository.MembershipRepository
	UserRepo       repository.UserRepository
	Access         usecase.AccessUsecase
	Logger         *slog.Logger
}

// NewProjectService is the constructor for projectService.
func NewProjectService(params ProjectServiceParams) usecase.ProjectUsecase {
	return &projectService{
		txManager:      params.TxManager,
		projectRepo:    params.ProjectRepo,
		membershipRepo: params.MembershipRepo,
		userRepo:       params.UserRepo,
		access:         params.Access,
		logger:         params.Logger,
	}
}

func (srv *projectService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateProject is admin only. The project and its initial memberships are written in one transaction.
func (srv *projectService) CreateProject(ctx context.Context, actor *entity.User, input usecase.CreateProjectInput) (*usecase.ProjectDetail, error) {
	if !actor.IsAdmin() {
		return nil, domainerrors.ErrForbidden.WithDetails("only admins may create projects")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name is required")
	}
	for _, m := range input.Members {
		if !m.Role.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("invalid project role %q", m.Role))
		}
	}

	project := &entity.Project{
		Name:        input.Name,
		Description: input.Description,
		CreatedBy:   actor.ID,
	}

	var members []*entity.ProjectMembership
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.ProjectRepo().Create(ctx, project); err != nil {
			return err
		}

		userRepo := repoFactory.UserRepo()
		membershipRepo := repoFactory.MembershipRepo()
		for _, m := range input.Members {
			if _, err := userRepo.FindByID(ctx, m.UserID); err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					return domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("user %d does not exist", m.UserID))
				}

				return err
			}

			membership := &entity.ProjectMembership{ProjectID: project.ID, UserID: m.UserID, Role: m.Role}
			if err := membershipRepo.Save(ctx, membership); err != nil {
				return err
			}
		}

		var err error
		members, err = membershipRepo.ListByProject(ctx, project.ID)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create project")
	}

	srv.log(ctx).Info("Project created",
		slog.Int64("projectID", project.ID),
		slog.Int("members", len(members)),
	)

	return &usecase.ProjectDetail{Project: project, Members: members, Role: entity.RoleElevated}, nil
}

// ListProjects returns every project to admins and only joined projects to everyone else.
func (srv *projectService) ListProjects(ctx context.Context, actor *entity.User) ([]*entity.Project, error) {
	if actor == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	if actor.IsAdmin() {
		return srv.projectRepo.List(ctx)
	}

	return srv.projectRepo.ListByMember(ctx, actor.ID)
}

func (srv *projectService) GetProject(ctx context.Context, actor *entity.User, projectID int64) (*usecase.ProjectDetail, error) {
	role, err := srv.access.ResolveProjectRole(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}

	project, err := srv.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	members, err := srv.membershipRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list project members")
	}

	return &usecase.ProjectDetail{Project: project, Members: members, Role: role}, nil
}

func (srv *projectService) UpdateProject(ctx context.Context, actor *entity.User, projectID int64, input usecase.UpdateProjectInput) (*entity.Project, error) {
	if err := srv.requireManage(ctx, actor, projectID); err != nil {
		return nil, err
	}

	project, err := srv.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, domainerrors.ErrValidationFailed.WithDetails("name must not be empty")
		}
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}

	if err := srv.projectRepo.Update(ctx, project); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, domainerrors.ErrNotFound.WithDetails("project not found")
		}

		return nil, errors.Wrap(err, "failed to update project")
	}

	return project, nil
}

// DeleteProject is admin only and removes the project's teams, tasks and memberships with it.
func (srv *projectService) DeleteProject(ctx context.Context, actor *entity.User, projectID int64) error {
	if !actor.IsAdmin() {
		return domainerrors.ErrForbidden.WithDetails("only admins may delete projects")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.ProjectRepo().Delete(ctx, projectID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return domainerrors.ErrNotFound.WithDetails("project not found")
		}

		return errors.Wrap(err, "failed to delete project")
	}

	srv.log(ctx).Info("Project deleted", slog.Int64("projectID", projectID))

	return nil
}

// AddMember adds a user to the project, or changes their role when already a member.
func (srv *projectService) AddMember(ctx context.Context, actor *entity.User, projectID int64, input usecase.ProjectMemberInput) (*entity.ProjectMembership, error) {
	if err := srv.requireManage(ctx, actor, projectID); err != nil {
		return nil, err
	}
	if !input.Role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("invalid project role %q", input.Role))
	}

	if _, err := srv.userRepo.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrNotFound.WithDetails("user not found")
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	membership := &entity.ProjectMembership{ProjectID: projectID, UserID: input.UserID, Role: input.Role}
	if err := srv.membershipRepo.Save(ctx, membership); err != nil {
		return nil, errors.Wrap(err, "failed to save project member")
	}

	return membership, nil
}

// RemoveMember drops the membership together with the user's team memberships in the project.
func (srv *projectService) RemoveMember(ctx context.Context, actor *entity.User, projectID, userID int64) error {
	if err := srv.requireManage(ctx, actor, projectID); err != nil {
		return err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.MembershipRepo().Remove(ctx, projectID, userID); err != nil {
			return err
		}

		return repoFactory.TeamRepo().RemoveMemberFromProject(ctx, projectID, userID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrMembershipNotFound) {
			return domainerrors.ErrNotFound.WithDetails("user is not a member of the project")
		}

		return errors.Wrap(err, "failed to remove project member")
	}

	return nil
}

func (srv *projectService) requireManage(ctx context.Context, actor *entity.User, projectID int64) error {
	role, err := srv.access.ResolveProjectRole(ctx, actor, projectID)
	if err != nil {
		return err
	}
	if !role.CanManageProject() {
		return domainerrors.ErrForbidden
	}

	return nil
}

func (srv *projectService) loadProject(ctx context.Context, projectID int64) (*entity.Project, error) {
	project, err := srv.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, domainerrors.ErrNotFound.WithDetails("project not found")
		}

		return nil, errors.Wrap(err, "failed to load project")
	}

	return project, nil
}
