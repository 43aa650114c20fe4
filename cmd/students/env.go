package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aanand-mishra/students-desk/internal/app"
	"github.com/aanand-mishra/students-desk/internal/config"
	"github.com/aanand-mishra/students-desk/internal/logger"
	"github.com/aanand-mishra/students-desk/internal/render"
	"github.com/aanand-mishra/students-desk/internal/storage/backend"
)

// openService performs steps 2 to 5 of the startup sequence. The returned
// close function releases the store and must be called once the
// subcommand is done.
func openService(ctx context.Context) (*app.Service, func(), error) {
	cfg := config.MustLoad()

	log := logger.Setup(cfg.Env, os.Stderr)
	log.Debug("starting students",
		slog.String("env", cfg.Env),
		slog.String("driver", cfg.Storage.Driver))

	store, err := backend.Open(ctx, cfg.Storage)
	if err != nil {
		log.Error("failed to initialise storage", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	log.Debug("storage initialised",
		slog.String("driver", cfg.Storage.Driver),
		slog.String("path", cfg.Storage.Path))

	renderer, err := render.FromFiles(cfg.Templates.Portfolio, cfg.Templates.Students)
	if err != nil {
		store.Close()
		log.Error("failed to load templates", slog.String("error", err.Error()))
		return nil, nil, err
	}

	closeFn := func() {
		if err := store.Close(); err != nil {
			log.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}

	return app.NewService(store, renderer, cfg.Output.Students, log), closeFn, nil
}
