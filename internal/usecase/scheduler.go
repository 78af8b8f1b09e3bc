package usecase

import (
	"context"
	"log/slog"
	"time"

	"SafeSpace/internal/ports"
)

// Scheduler wires the cron driver with the offline scan job.
type Scheduler struct {
	driver ports.Scheduler
	job    *ScanJob
	logger *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring scans.
func NewScheduler(driver ports.Scheduler, job *ScanJob, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{driver: driver, job: job, logger: logger.With("component", "scheduler")}
}

// Start registers the scan job with the provided scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.job == nil {
		return nil
	}

	job := func(trigger time.Time) {
		s.logger.Info("scheduled scan triggered", "at", trigger.Format(time.RFC3339))
		if err := s.job.Execute(ctx); err != nil {
			s.logger.Error("scheduled scan failed", "error", err)
		}
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
