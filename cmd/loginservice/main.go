package main

import (
	"context"
	"log/slog"
	"os"

	"loginservice/config"
	"loginservice/internal/delivery"
	"loginservice/internal/delivery/http"
	"loginservice/internal/delivery/http/middleware"
	"loginservice/internal/delivery/http/router/handler"
	"loginservice/internal/domain/repository"
	"loginservice/internal/errors"
	"loginservice/internal/infra/auth"
	logs "loginservice/internal/infra/log"
	"loginservice/internal/infra/persistence/cassandra"
	"loginservice/internal/infra/persistence/postgres"
	"loginservice/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectMiddleware(),
		injectHandler(),
		injectDelivery(),
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
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newDriverRepository,
		),
	)
}

// newDriverRepository resolves the configured store adapter. The backend is a
// deployment-time decision: exactly one adapter is constructed per process,
// and the use cases only ever see the repository interface.
func newDriverRepository(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (repository.DriverRepository, error) {
	switch cfg.Database.Backend {
	case config.BackendPostgres:
		db, err := postgres.New(postgres.Params{Lifecycle: lc, Config: cfg, Logger: logger})
		if err != nil {
			return nil, err
		}

		return postgres.NewDriverRepository(db), nil
	case config.BackendCassandra:
		cluster, err := cassandra.NewCluster(cfg)
		if err != nil {
			return nil, err
		}

		return cassandra.NewDriverRepository(cluster), nil
	default:
		return nil, errors.Errorf("unknown database backend: %q", cfg.Database.Backend)
	}
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
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
				os.Exit(1)
			}
		}()
	}
}
