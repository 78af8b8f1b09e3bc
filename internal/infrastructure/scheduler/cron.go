package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"SafeSpace/internal/ports"
	"SafeSpace/pkg/logger"
)

// CronScheduler triggers the offline scan on a standard five-field cron
// expression (descriptors such as "@hourly" are accepted).
type CronScheduler struct {
	mu        sync.Mutex
	spec      string
	loc       *time.Location
	cron      *cron.Cron
	logger    *slog.Logger
	runnerLog cron.Logger
}

var _ ports.Scheduler = (*CronScheduler)(nil)

// NewCronScheduler builds a scheduler configured via cron expression string.
func NewCronScheduler(spec string, loc *time.Location, baseLogger *slog.Logger) *CronScheduler {
	if loc == nil {
		loc = time.UTC
	}
	if baseLogger == nil {
		baseLogger = slog.Default()
	}
	return &CronScheduler{
		spec:      spec,
		loc:       loc,
		logger:    baseLogger.With("component", "cron"),
		runnerLog: cron.PrintfLogger(logger.New(baseLogger, "cron.runner", slog.LevelDebug)),
	}
}

// Start registers job and begins firing it. Runs never overlap: a trigger
// that arrives while the previous run is active is skipped.
func (c *CronScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return errors.New("cron job must not be nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cron != nil {
		return nil
	}

	runner := cron.New(
		cron.WithLocation(c.loc),
		cron.WithLogger(c.runnerLog),
		cron.WithChain(cron.SkipIfStillRunning(c.runnerLog)),
	)
	id, err := runner.AddFunc(c.spec, func() {
		if ctx.Err() != nil {
			return
		}
		job(time.Now().In(c.loc))
	})
	if err != nil {
		return fmt.Errorf("add cron %q: %w", c.spec, err)
	}

	runner.Start()
	c.cron = runner
	c.logger.Info("scan scheduled", "spec", c.spec, "timezone", c.loc.String(), "next", runner.Entry(id).Next.Format(time.RFC3339))
	return nil
}

// Stop halts the scheduler and waits for a running job to finish, or for
// ctx to expire.
func (c *CronScheduler) Stop(ctx context.Context) error {
	c.mu.Lock()
	runner := c.cron
	c.cron = nil
	c.mu.Unlock()

	if runner == nil {
		return nil
	}

	select {
	case <-runner.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
