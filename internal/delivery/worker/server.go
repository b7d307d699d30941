// Package worker runs the background task server and its periodic scheduler.
package worker

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
	"go.uber.org/fx"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/config"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/delivery"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/lifecycle"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/errors"
)

const defaultConcurrency = 2

type workerServer struct {
	cfg       *config.Config
	logger    *slog.Logger
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
}

// ServerParams holds dependencies for the worker server
type ServerParams struct {
	fx.In

	Lc      fx.Lifecycle
	Cfg     *config.Config
	Logger  *slog.Logger
	Handler *Handler
}

// NewServer creates the asynq server consuming tasks and the scheduler enqueuing the session sweep.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	if params.Cfg.Redis == nil {
		return nil, errors.New("redis configuration is missing")
	}

	redisOpt := redisClientOpt(params.Cfg.Redis)
	asynqLog := newAsynqLogger(params.Logger)

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency(params.Cfg.Worker),
		Queues: map[string]int{
			"default":    3,
			cleanupQueue: 1,
		},
		Logger:          asynqLog,
		ShutdownTimeout: lifecycle.DefaultTimeout,
	})

	mux := asynq.NewServeMux()
	params.Handler.RegisterHandlers(mux)

	srv := &workerServer{
		cfg:    params.Cfg,
		logger: params.Logger,
		server: server,
		mux:    mux,
	}

	if spec := cleanupSpec(params.Cfg.Worker); spec != "" {
		srv.scheduler = asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{Logger: asynqLog})
		if _, err := srv.scheduler.Register(spec, NewSessionCleanupTask()); err != nil {
			return nil, errors.Wrapf(err, "failed to register session cleanup %q", spec)
		}
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// Serve starts consuming tasks and, when a sweep schedule is configured, the scheduler.
func (s *workerServer) Serve(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Starting worker", slog.String("redis", s.cfg.Redis.Addr()))
	if err := s.server.Start(s.mux); err != nil {
		return errors.WithStack(err)
	}

	if s.scheduler == nil {
		s.logger.WarnContext(ctx, "Session cleanup schedule is empty, sweep disabled")

		return nil
	}

	if err := s.scheduler.Start(); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (s *workerServer) stop(_ context.Context) error {
	s.logger.Info("Shutting down worker")

	if s.scheduler != nil {
		s.scheduler.Shutdown()
	}
	s.server.Shutdown()

	return nil
}

func redisClientOpt(cfg *config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func concurrency(cfg *config.WorkerConfig) int {
	if cfg == nil || cfg.Concurrency <= 0 {
		return defaultConcurrency
	}

	return cfg.Concurrency
}

func cleanupSpec(cfg *config.WorkerConfig) string {
	if cfg == nil {
		return ""
	}

	return cfg.SessionCleanupSpec
}
