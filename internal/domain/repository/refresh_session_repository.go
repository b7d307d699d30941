package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
)

// ErrRefreshSessionNotFound is returned when no session matches a token digest.
var ErrRefreshSessionNotFound = errors.New("refresh session not found")

// RefreshSessionRepository is the session store behind refresh tokens.
type RefreshSessionRepository interface {
	// Create persists a new session.
	Create(ctx context.Context, session *entity.RefreshSession) error

	// FindByTokenHash returns the session for a token digest, expired or not.
	FindByTokenHash(ctx context.Context, tokenHash string) (*entity.RefreshSession, error)

	// DeleteByTokenHash removes every session with the digest and returns how many were removed.
	DeleteByTokenHash(ctx context.Context, tokenHash string) (int64, error)

	// DeleteExpired removes every session whose expiry is at or before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
