package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"SafeSpace/internal/config"
)

// New creates a console slog.Logger with provided level string.
func New(level string) *slog.Logger {
	return newLogger(os.Stdout, level)
}

// FromConfig builds a logger that also writes to a rotating file when
// cfg.File is set.
func FromConfig(cfg config.LoggingConfig) *slog.Logger {
	if strings.TrimSpace(cfg.File) == "" {
		return New(cfg.Level)
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	return newLogger(io.MultiWriter(os.Stdout, rotator), cfg.Level)
}

func newLogger(w io.Writer, level string) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: levelFromString(level),
	})
	return slog.New(handler)
}

func levelFromString(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "info":
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
