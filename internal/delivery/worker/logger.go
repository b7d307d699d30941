package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
)

// asynqLogger routes asynq's internal logs into slog.
type asynqLogger struct {
	logger *slog.Logger
}

var _ asynq.Logger = (*asynqLogger)(nil)

func newAsynqLogger(logger *slog.Logger) *asynqLogger {
	return &asynqLogger{logger: logger.With(slog.String("component", "asynq"))}
}

func (l *asynqLogger) Debug(args ...any) { l.log(slog.LevelDebug, args) }
func (l *asynqLogger) Info(args ...any)  { l.log(slog.LevelInfo, args) }
func (l *asynqLogger) Warn(args ...any)  { l.log(slog.LevelWarn, args) }
func (l *asynqLogger) Error(args ...any) { l.log(slog.LevelError, args) }

// Fatal matches asynq's contract and exits the process.
func (l *asynqLogger) Fatal(args ...any) {
	l.log(slog.LevelError, args)
	os.Exit(1)
}

func (l *asynqLogger) log(level slog.Level, args []any) {
	l.logger.Log(context.Background(), level, fmt.Sprint(args...))
}
