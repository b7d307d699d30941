package worker

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/usecase"
)

// Handler runs the tasks the worker consumes.
type Handler struct {
	sessions usecase.SessionUsecase
	logger   *slog.Logger
}

func NewHandler(sessions usecase.SessionUsecase, logger *slog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		logger:   logger,
	}
}

func (h *Handler) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeSessionCleanup, h.HandleSessionCleanup)
}

// HandleSessionCleanup deletes every refresh session that has reached its expiry.
func (h *Handler) HandleSessionCleanup(ctx context.Context, t *asynq.Task) error {
	deleted, err := h.sessions.CleanupExpiredSessions(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Session cleanup failed",
			slog.String("task", t.Type()),
			slog.Any("error", err),
		)

		return errors.Wrap(err, "cleanup expired sessions")
	}

	h.logger.InfoContext(ctx, "Session cleanup finished",
		slog.String("task", t.Type()),
		slog.Int64("deleted", deleted),
	)

	return nil
}
