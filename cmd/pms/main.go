package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/config"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/delivery"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/delivery/api"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/delivery/api/middleware"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/delivery/api/router/handler"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/infra/auth"
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
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewRefreshSessionRepository,
			postgres.NewProjectRepository,
			postgres.NewMembershipRepository,
			postgres.NewTeamRepository,
			postgres.NewTaskRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			auth.NewOpaqueTokenGenerator,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewTokenService,
			impl.NewAuthService,
			impl.NewAuthenticator,
			impl.NewUserService,
			impl.NewAccessService,
			impl.NewProjectService,
			impl.NewTeamService,
			impl.NewTaskService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewUserHandler,
			handler.NewProjectHandler,
			handler.NewTaskHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
