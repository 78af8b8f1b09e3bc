package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"SafeSpace/internal/app"
	"SafeSpace/internal/config"
	"SafeSpace/internal/infrastructure/ml"
	"SafeSpace/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.FromConfig(cfg.Logging)

	scan, err := app.NewScan(ctx, cfg, logger, os.Stdout)
	if err != nil {
		if errors.Is(err, ml.ErrModelLoad) {
			logger.Error("cannot load threat models", "error", err)
		} else {
			logger.Error("cannot start scan", "error", err)
		}
		os.Exit(1)
	}

	if err := scan.Run(ctx); err != nil {
		logger.Error("scan failed", "error", err)
		os.Exit(1)
	}
}
