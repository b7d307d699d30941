package impl

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	deliverycontext "github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/delivery/context"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
	domainerrors "github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/repository"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/usecase"
)

type authenticator struct {
	tokens   usecase.TokenUsecase
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// AuthenticatorParams holds dependencies for the authenticator, injected by Fx.
type AuthenticatorParams struct {
	fx.In

	Tokens   usecase.TokenUsecase
	UserRepo repository.UserRepository
	Logger   *slog.Logger
}

// NewAuthenticator is the constructor for authenticator.
func NewAuthenticator(params AuthenticatorParams) usecase.AuthenticatorUsecase {
	return &authenticator{
		tokens:   params.Tokens,
		userRepo: params.UserRepo,
		logger:   params.Logger,
	}
}

func (a *authenticator) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, a.logger)
}

// Authenticate verifies the token, then checks the live account rather than the token's snapshot.
func (a *authenticator) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	if accessToken == "" {
		return nil, domainerrors.ErrUnauthenticated
	}

	claims, err := a.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		// Invalid and expired collapse into one answer.
		a.log(ctx).Debug("Access token rejected", slog.Any("error", err))

		return nil, domainerrors.ErrUnauthenticated
	}

	user, err := a.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUnauthenticated
		}

		return nil, errors.Wrap(err, "failed to load authenticated user")
	}

	if user.IsSuspended() {
		a.log(ctx).Info("Suspended account rejected", slog.Int64("userID", user.ID))

		return nil, domainerrors.ErrAccountSuspended
	}

	user.PasswordHash = ""

	return user, nil
}
