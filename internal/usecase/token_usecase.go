// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/service"
)

// TokenUsecase mints and validates access tokens and refresh sessions.
type TokenUsecase interface {
	// IssueAccessToken signs a short-lived token carrying the user's id, role, email and status.
	IssueAccessToken(user *entity.User) (string, error)
	// VerifyAccessToken fails with ErrTokenInvalid or ErrTokenExpired. It does not touch storage.
	VerifyAccessToken(token string) (*service.AccessClaims, error)
	// IssueRefreshToken creates a refresh session for userID and returns its opaque token.
	IssueRefreshToken(ctx context.Context, userID int64) (string, error)
	// ValidateRefreshToken fails with ErrSessionNotFound or ErrSessionExpired. Expired rows are kept.
	ValidateRefreshToken(ctx context.Context, token string) (*entity.RefreshSession, error)
	// RevokeRefreshToken deletes every session for token. Unknown tokens are not an error.
	RevokeRefreshToken(ctx context.Context, token string) error
	// RefreshTokenTTL is the lifetime of a refresh session.
	RefreshTokenTTL() time.Duration
}
