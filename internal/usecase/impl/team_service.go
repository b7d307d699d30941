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

type teamService struct {
	txManager      repository.TransactionManager
	teamRepo       repository.TeamRepository
	membershipRepo repository.MembershipRepository
	access         usecase.AccessUsecase
	logger         *slog.Logger
}

// TeamServiceParams holds dependencies for TeamService, injected by Fx.
type TeamServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	TeamRepo       repository.TeamRepository
	MembershipRepo repository.MembershipRepository
	Access         usecase.AccessUsecase
	Logger         *slog.Logger
}

// NewTeamService is the constructor for teamService.
func NewTeamService(params TeamServiceParams) usecase.TeamUsecase {
	return &teamService{
		txManager:      params.TxManager,
		teamRepo:       params.TeamRepo,
		membershipRepo: params.MembershipRepo,
		access:         params.Access,
		logger:         params.Logger,
	}
}

func (srv *teamService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *teamService) CreateTeam(ctx context.Context, actor *entity.User, projectID int64, input usecase.CreateTeamInput) (*usecase.TeamDetail, error) {
	if err := srv.requireManage(ctx, actor, projectID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name is required")
	}
	for _, m := range input.Members {
		if !m.Role.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("invalid team role %q", m.Role))
		}
	}

	team := &entity.Team{ProjectID: projectID, Name: input.Name}
	members := make([]*entity.TeamMembership, 0, len(input.Members))
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		teamRepo := repoFactory.TeamRepo()
		if err := teamRepo.Create(ctx, team); err != nil {
			return err
		}

		membershipRepo := repoFactory.MembershipRepo()
		for _, m := range input.Members {
			if err := requireProjectMember(ctx, membershipRepo, projectID, m.UserID); err != nil {
				return err
			}

			membership := &entity.TeamMembership{TeamID: team.ID, UserID: m.UserID, Role: m.Role}
			if err := teamRepo.SaveMember(ctx, membership); err != nil {
				return err
			}
			members = append(members, membership)
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create team")
	}

	srv.log(ctx).Info("Team created", slog.Int64("projectID", projectID), slog.Int64("teamID", team.ID))

	return &usecase.TeamDetail{Team: team, Members: members}, nil
}

func (srv *teamService) AddTeamMember(ctx context.Context, actor *entity.User, projectID, teamID int64, input usecase.TeamMemberInput) (*entity.TeamMembership, error) {
	if err := srv.requireManage(ctx, actor, projectID); err != nil {
		return nil, err
	}
	if !input.Role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("invalid team role %q", input.Role))
	}

	if _, err := srv.teamRepo.FindInProject(ctx, projectID, teamID); err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return nil, domainerrors.ErrNotFound.WithDetails("team not found")
		}

		return nil, errors.Wrap(err, "failed to load team")
	}

	if err := requireProjectMember(ctx, srv.membershipRepo, projectID, input.UserID); err != nil {
		return nil, err
	}

	membership := &entity.TeamMembership{TeamID: teamID, UserID: input.UserID, Role: input.Role}
	if err := srv.teamRepo.SaveMember(ctx, membership); err != nil {
		return nil, errors.Wrap(err, "failed to save team member")
	}

	return membership, nil
}

func (srv *teamService) requireManage(ctx context.Context, actor *entity.User, projectID int64) error {
	role, err := srv.access.ResolveProjectRole(ctx, actor, projectID)
	if err != nil {
		return err
	}
	if !role.CanManageProject() {
		return domainerrors.ErrForbidden
	}

	return nil
}

// requireProjectMember rejects users without a membership in projectID.
func requireProjectMember(ctx context.Context, repo repository.MembershipRepository, projectID, userID int64) error {
	if _, err := repo.Find(ctx, projectID, userID); err != nil {
		if errors.Is(err, repository.ErrMembershipNotFound) {
			return domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("user %d is not a member of the project", userID))
		}

		return errors.Wrap(err, "failed to load project membership")
	}

	return nil
}
