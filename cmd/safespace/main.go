package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"SafeSpace/internal/app"
	"SafeSpace/internal/config"
	"SafeSpace/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.FromConfig(cfg.Logging)

	if err := app.NewAPI(cfg, logger).Run(ctx); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("server exited")
}
