package worker

import (
	"time"

	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeSessionCleanup = "session:cleanup"
)

const (
	cleanupQueue   = "low"
	cleanupTimeout = 5 * time.Minute
)

// NewSessionCleanupTask builds the periodic sweep task. It carries no payload.
func NewSessionCleanupTask() *asynq.Task {
	return asynq.NewTask(
		TypeSessionCleanup,
		nil,
		asynq.Queue(cleanupQueue),
		asynq.MaxRetry(1),
		asynq.Timeout(cleanupTimeout),
	)
}
