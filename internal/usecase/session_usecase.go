package usecase

import "context"

// SessionUsecase maintains the refresh session store.
type SessionUsecase interface {
	// CleanupExpiredSessions deletes every session whose expiry is at or before now.
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}
