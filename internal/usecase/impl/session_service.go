package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/repository"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/usecase"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	sessionRepo repository.RefreshSessionRepository
	now         func() time.Time
	logger      *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(sessionRepo repository.RefreshSessionRepository, logger *slog.Logger) usecase.SessionUsecase {
	return &sessionService{
		sessionRepo: sessionRepo,
		now:         time.Now,
		logger:      logger,
	}
}

func (srv *sessionService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	removed, err := srv.sessionRepo.DeleteExpired(ctx, srv.now().UTC())
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete expired sessions")
	}

	srv.logger.InfoContext(ctx, "Expired sessions removed", slog.Int64("removed", removed))

	return removed, nil
}
