package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/BryanPMX/CAF-sub004/pkg/config"
	"github.com/BryanPMX/CAF-sub004/pkg/httpserver"
	"github.com/BryanPMX/CAF-sub004/pkg/logger"
	"github.com/BryanPMX/CAF-sub004/pkg/pg"
	"github.com/BryanPMX/CAF-sub004/pkg/redis"
	"github.com/BryanPMX/CAF-sub004/pkg/session"
)

// appConfig selects the runtime environment and the session store backend.
type appConfig struct {
	Env          string `env:"APP_ENV" envDefault:"development" validate:"oneof=development staging production"`
	StoreBackend string `env:"SESSION_STORE" envDefault:"postgres" validate:"oneof=postgres redis"`
}

func main() {
	if err := run(); err != nil {
		slog.Error("sessiond exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	var (
		appCfg     appConfig
		sessionCfg session.Config
		httpCfg    httpserver.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&sessionCfg)
	config.MustLoad(&httpCfg)

	logOpts := []logger.Option{}
	if appCfg.Env == "development" {
		logOpts = append(logOpts, logger.WithDevelopment())
	}
	log := logger.New("sessiond", logOpts...)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, healthcheck, closeStore, err := buildStore(ctx, appCfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	svc := session.NewService(store, sessionCfg, log)

	cleaner := session.NewCleaner(svc, sessionCfg.CleanupInterval, log)
	go func() {
		// Returns only on context cancellation; sweep errors are handled
		// inside and never stop the loop.
		_ = cleaner.Start(ctx)
	}()

	router := newRouter(svc, healthcheck)

	return httpserver.New(httpCfg, log).Run(ctx, router)
}

// buildStore wires the configured session store backend together with its
// readiness probe and close hook.
func buildStore(ctx context.Context, appCfg appConfig, log *slog.Logger) (session.Store, func(context.Context) error, func(), error) {
	switch appCfg.StoreBackend {
	case "redis":
		var redisCfg redis.Config
		config.MustLoad(&redisCfg)

		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, nil, nil, err
		}
		closer := func() { _ = client.Close() }
		return session.NewRedisStore(client), redis.Healthcheck(client), closer, nil

	default:
		var pgCfg pg.Config
		config.MustLoad(&pgCfg)

		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		return session.NewPostgresStore(pool), pg.Healthcheck(pool), pool.Close, nil
	}
}
