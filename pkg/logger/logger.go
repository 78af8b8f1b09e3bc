// Package logger bridges slog to libraries that expect a stdlib *log.Logger
// (the Telegram bot client, the cron runner).
package logger

import (
	"log"
	"log/slog"
)

// New returns a *log.Logger whose lines are emitted through base as
// records tagged with component at the given level.
func New(base *slog.Logger, component string, level slog.Level) *log.Logger {
	if base == nil {
		base = slog.Default()
	}
	return slog.NewLogLogger(base.With("component", component).Handler(), level)
}
