package impl

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	deliverycontext "github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/delivery/context"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
	domainerrors "github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/repository"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/usecase"
)

type userService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Logger   *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		logger:   params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *userService) GetProfile(ctx context.Context, actor *entity.User) (*entity.User, error) {
	if actor == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	user, err := srv.userRepo.FindByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUnauthenticated
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	user.PasswordHash = ""

	return user, nil
}

func (srv *userService) UpdateUserStatus(ctx context.Context, actor *entity.User, userID int64, status entity.AccountStatus) (*entity.User, error) {
	if !actor.IsAdmin() {
		return nil, domainerrors.ErrForbidden
	}
	if !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("invalid status %q", status))
	}
	if actor.ID == userID && status != entity.StatusActive {
		return nil, domainerrors.ErrValidationFailed.WithDetails("admins cannot deactivate their own account")
	}

	if err := srv.userRepo.UpdateStatus(ctx, userID, status); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrNotFound.WithDetails("user not found")
		}

		return nil, errors.Wrap(err, "failed to update user status")
	}

	srv.log(ctx).Info("User status changed",
		slog.Int64("userID", userID),
		slog.String("status", status.String()),
		slog.Int64("changedBy", actor.ID),
	)

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload user")
	}
	user.PasswordHash = ""

	return user, nil
}
