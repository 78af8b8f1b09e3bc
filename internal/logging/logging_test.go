package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"SafeSpace/internal/config"
)

func TestLevelFromString(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"error":    slog.LevelError,
		" WARN ":   slog.LevelWarn,
		"warning":  slog.LevelWarn,
		"info":     slog.LevelInfo,
		"debug":    slog.LevelDebug,
		"whatever": slog.LevelDebug,
	}
	for in, want := range cases {
		if got := levelFromString(in); got != want {
			t.Fatalf("levelFromString(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFromConfigWritesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "safespace.log")
	logger := FromConfig(config.LoggingConfig{Level: "info", File: path, MaxSizeMB: 1})

	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("debug must be disabled at info level")
	}
	logger.Info("threat feed ready", "location", "Delhi")

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(raw), "location=Delhi") {
		t.Fatalf("log line missing from file: %q", raw)
	}
}
