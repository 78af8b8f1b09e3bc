package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(newsAPIKeyEnv, "")
	t.Setenv(allowedOriginEnv, "")

	cfg := Load()

	if cfg.News.DefaultLocation != "Delhi" {
		t.Fatalf("unexpected default location: %s", cfg.News.DefaultLocation)
	}
	if cfg.News.PageSize != 20 || cfg.News.Language != "en" {
		t.Fatalf("unexpected news defaults: %+v", cfg.News)
	}
	if len(cfg.News.Keywords) != 11 {
		t.Fatalf("expected 11 keywords, got %d", len(cfg.News.Keywords))
	}
	if cfg.ML.Threshold != 0.6 || cfg.ML.MaxTokens != 128 {
		t.Fatalf("unexpected ml defaults: %+v", cfg.ML)
	}
	if cfg.Scan.MaxArticles != 10 {
		t.Fatalf("unexpected scan limit: %d", cfg.Scan.MaxArticles)
	}
	if cfg.Server.AllowedOrigin != "http://localhost:3000" {
		t.Fatalf("unexpected origin: %s", cfg.Server.AllowedOrigin)
	}
	if cfg.Scheduler.Location() == nil {
		t.Fatal("scheduler location must be bound")
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "safespace.yaml")
	raw := `
server:
  addr: ":9000"
news:
  provider: rss
  pageSize: 5
advice:
  model: file-model
  timeout: 5s
ml:
  threshold: 0.75
scheduler:
  cronExpression: "0 6 * * *"
  timezone: Asia/Kolkata
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(adviceModelEnv, "env-model")
	t.Setenv(newsAPIKeyEnv, "news-key")
	t.Setenv(telegramChatIDEnv, "12345")

	cfg := Load()

	if cfg.Server.Addr != ":9000" {
		t.Fatalf("file override lost: %s", cfg.Server.Addr)
	}
	if cfg.News.Provider != "rss" || cfg.News.PageSize != 5 {
		t.Fatalf("news overrides lost: %+v", cfg.News)
	}
	if cfg.News.Language != "en" {
		t.Fatalf("default language should survive merge, got %q", cfg.News.Language)
	}
	if cfg.Advice.Model != "env-model" {
		t.Fatalf("env must win over file, got %s", cfg.Advice.Model)
	}
	if cfg.Advice.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.Advice.Timeout)
	}
	if cfg.News.APIKey != "news-key" {
		t.Fatalf("api key not read from env")
	}
	if cfg.ML.Threshold != 0.75 {
		t.Fatalf("unexpected threshold: %v", cfg.ML.Threshold)
	}
	if cfg.Notifications.Telegram.ChatID != 12345 {
		t.Fatalf("unexpected chat id: %d", cfg.Notifications.Telegram.ChatID)
	}
	if cfg.Scheduler.Location().String() != "Asia/Kolkata" {
		t.Fatalf("unexpected timezone: %s", cfg.Scheduler.Location())
	}
}
