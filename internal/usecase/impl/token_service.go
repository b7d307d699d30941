// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/fx"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/config"
	deliverycontext "github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/delivery/context"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
	domainerrors "github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/repository"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/service"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/usecase"
)

// tokenService implements the TokenUsecase interface.
type tokenService struct {
	accessTokens service.AccessTokenService
	generator    service.OpaqueTokenGenerator
	sessionRepo  repository.RefreshSessionRepository
	refreshTTL   time.Duration
	now          func() time.Time
	logger       *slog.Logger
}

// TokenServiceParams holds dependencies for TokenService, injected by Fx.
type TokenServiceParams struct {
	fx.In

	AccessTokens service.AccessTokenService
	Generator    service.OpaqueTokenGenerator
	SessionRepo  repository.RefreshSessionRepository
	Config       *config.Config
	Logger       *slog.Logger
}

// NewTokenService is the constructor for tokenService.
func NewTokenService(params TokenServiceParams) usecase.TokenUsecase {
	return &tokenService{
		accessTokens: params.AccessTokens,
		generator:    params.Generator,
		sessionRepo:  params.SessionRepo,
		refreshTTL:   params.Config.Auth.RefreshTokenTTL,
		now:          time.Now,
		logger:       params.Logger,
	}
}

func (srv *tokenService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *tokenService) IssueAccessToken(user *entity.User) (string, error) {
	return srv.accessTokens.Issue(user)
}

func (srv *tokenService) VerifyAccessToken(token string) (*service.AccessClaims, error) {
	return srv.accessTokens.Verify(token)
}

func (srv *tokenService) RefreshTokenTTL() time.Duration {
	return srv.refreshTTL
}

func (srv *tokenService) IssueRefreshToken(ctx context.Context, userID int64) (string, error) {
	token, err := srv.generator.Generate()
	if err != nil {
		return "", errors.Wrap(err, "failed to generate refresh token")
	}

	session := &entity.RefreshSession{
		UserID:    userID,
		TokenHash: srv.generator.Digest(token),
		ExpiresAt: srv.now().UTC().Add(srv.refreshTTL),
	}
	if err := srv.sessionRepo.Create(ctx, session); err != nil {
		return "", errors.Wrap(err, "failed to store refresh session")
	}

	srv.log(ctx).Debug("Refresh session created",
		slog.Int64("userID", userID),
		slog.Int64("sessionID", session.ID),
		slog.Time("expiresAt", session.ExpiresAt),
	)

	return token, nil
}

func (srv *tokenService) ValidateRefreshToken(ctx context.Context, token string) (*entity.RefreshSession, error) {
	session, err := srv.sessionRepo.FindByTokenHash(ctx, srv.generator.Digest(token))
	if err != nil {
		if errors.Is(err, repository.ErrRefreshSessionNotFound) {
			return nil, domainerrors.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to load refresh session")
	}

	if session.ExpiredAt(srv.now()) {
		return nil, domainerrors.ErrSessionExpired
	}

	return session, nil
}

func (srv *tokenService) RevokeRefreshToken(ctx context.Context, token string) error {
	removed, err := srv.sessionRepo.DeleteByTokenHash(ctx, srv.generator.Digest(token))
	if err != nil {
		return errors.Wrap(err, "failed to revoke refresh session")
	}

	srv.log(ctx).Debug("Refresh session revoked", slog.Int64("removed", removed))

	return nil
}
