package bootstrap

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"participantes/internal/bootstrap/config"
	"participantes/internal/bootstrap/database"
	"participantes/internal/bootstrap/logging"
	cacheinfra "participantes/internal/infrastructure/cache"
	sqliterepo "participantes/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "participantes/internal/infrastructure/persistence/sqlite/uow"
	"participantes/internal/ports"
	"participantes/internal/usecase/registry"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideDatabase),
	fx.Provide(provideApp),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewRegistryRepository,
			fx.As(new(ports.CityRepository)),
			fx.As(new(ports.ParticipantRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliteuow.NewUnitOfWork,
			fx.As(new(ports.UnitOfWork)),
		),
	),
	fx.Provide(
		fx.Annotate(
			cacheinfra.NewSQLiteCache,
			fx.As(new(ports.Cache)),
		),
	),
	fx.Provide(registry.NewService),
)

type configParams struct {
	fx.In

	Ctx         context.Context
	ConfigFile  string `name:"configFile"`
	DSNOverride string `name:"dsnOverride" optional:"true"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	cfg, err := config.Load(ctx, p.ConfigFile)
	if err != nil {
		return config.Config{}, err
	}
	if p.DSNOverride != "" {
		cfg.Database.DSN = p.DSNOverride
	}
	return cfg, nil
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

func provideApp(cfg config.Config, db *gorm.DB) *App {
	return &App{
		Config: cfg,
		DB:     db,
	}
}
