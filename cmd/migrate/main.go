package main

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/config"
	logs "github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/infra/log"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/infra/persistence/postgres"
)

type migrateParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	DB     *gorm.DB
	Logger *slog.Logger
}

func main() {
	fx.New(
		fx.NopLogger,
		fx.Provide(
			config.New,
			logs.New,
			postgres.New,
		),
		fx.Invoke(
			migrate,
		),
	).Run()
}

// migrate runs after the connection hook has pinged the database, then stops the app.
func migrate(params migrateParams) {
	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := postgres.Migrate(ctx, params.DB); err != nil {
				return err
			}
			params.Logger.Info("Schema migrated")

			return params.Shutdown()
		},
	})
}
