package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/config"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/delivery"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/delivery/worker"
	logs "github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/infra/log"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/infra/persistence/postgres"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/usecase/impl"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			postgres.NewRefreshSessionRepository,
			impl.NewSessionService,
			worker.NewHandler,
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start worker", slog.Any("error", err))

				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
