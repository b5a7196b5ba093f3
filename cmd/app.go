package cmd

import (
	"context"

	"fieldkit/cli/internal/auth"
	"fieldkit/cli/internal/config"
	"fieldkit/cli/internal/farmos"
	"fieldkit/cli/internal/logging"
	"fieldkit/cli/internal/storage"
	"fieldkit/cli/internal/store"

	"go.uber.org/zap"
)

// app bundles everything a command needs for one run.
type app struct {
	cfg     config.Config
	log     *zap.Logger
	backend storage.Backend
	store   *store.Store
	auth    *auth.Service
}

// newApp loads configuration, applies the persistent flags and opens storage.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagDev {
		cfg.Env = config.EnvDevelopment
	}
	if flagStorage != "" {
		cfg.Storage.Backend = flagStorage
	}

	log, err := logging.New(cfg.LogLevel, flagVerbose)
	if err != nil {
		return nil, err
	}
	if cfg.Storage.DSN != "" {
		log.Debug("postgres storage configured", logging.Masked("dsn", cfg.Storage.DSN))
	}

	backend, err := storage.Open(ctx, cfg.Storage, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}

	st := store.New()
	st.Subscribe(func(mutation string, _ store.State) {
		log.Debug("store mutation", zap.String("mutation", mutation))
	})

	connect := farmos.NewConnector(farmos.Options{
		DevOrigin: cfg.DevOrigin,
		Timeout:   cfg.RequestTimeout(),
		UserAgent: userAgent(),
	})

	return &app{
		cfg:     cfg,
		log:     log,
		backend: backend,
		store:   st,
		auth: auth.New(auth.Options{
			Storage: backend,
			Store:   st,
			Connect: connect,
			DevMode: cfg.DevMode(),
			Logger:  log,
		}),
	}, nil
}

func (a *app) Close() {
	if err := a.backend.Close(); err != nil {
		a.log.Debug("close storage", zap.Error(err))
	}
	_ = a.log.Sync()
}
