package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"taskforge/backend/internal/app"
	"taskforge/backend/internal/config"
	"taskforge/backend/internal/logger"
)

func main() {
	log := logger.New(os.Stdout)
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	deps, err := app.Bootstrap(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.Warn("failed to release dependencies", "error", err)
		}
	}()

	application, err := app.New(cfg, deps.DB, deps.Producer, logger)
	if err != nil {
		return err
	}

	return application.Run(ctx)
}
