package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"SafeSpace/internal/config"
	"SafeSpace/internal/httpapi"
	"SafeSpace/internal/infrastructure/llm"
	"SafeSpace/internal/infrastructure/ml"
	"SafeSpace/internal/infrastructure/news"
	"SafeSpace/internal/infrastructure/scheduler"
	"SafeSpace/internal/infrastructure/telegram"
	"SafeSpace/internal/logging"
	"SafeSpace/internal/metrics"
	"SafeSpace/internal/ports"
	"SafeSpace/internal/scanner"
	"SafeSpace/internal/usecase"
	"SafeSpace/pkg/logger"
)

const outboundTimeout = 30 * time.Second

// API wires configs to the threat query service and the HTTP server.
type API struct {
	server *httpapi.Server
}

// NewAPI builds the HTTP application.
func NewAPI(cfg config.Config, baseLogger *slog.Logger) *API {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	metrics.Register()

	client := &http.Client{Timeout: outboundTimeout}
	source := newNewsSource(cfg.News, client, baseLogger)
	advisor := newAdvisor(cfg.Advice, baseLogger)

	threats := usecase.NewThreatService(source, usecase.NewAssembler(advisor), baseLogger)
	router := httpapi.NewRouter(cfg.Server, threats, baseLogger)

	return &API{server: httpapi.NewServer(cfg.Server.Addr, router, baseLogger)}
}

// Run serves until ctx is cancelled.
func (a *API) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Scan wires the offline confirmation job, optionally on a cron schedule.
type Scan struct {
	job       *usecase.ScanJob
	scheduler *usecase.Scheduler
	logger    *slog.Logger
}

// NewScan loads the models and builds the offline job. Model load failures
// are returned wrapped with ml.ErrModelLoad.
func NewScan(ctx context.Context, cfg config.Config, baseLogger *slog.Logger, out io.Writer) (*Scan, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	metrics.Register()

	client := &http.Client{Timeout: outboundTimeout}
	models, err := ml.LoadModels(ctx, cfg.ML, client)
	if err != nil {
		return nil, err
	}

	notifier, err := newNotifier(cfg.Notifications.Telegram, client, baseLogger)
	if err != nil {
		return nil, err
	}

	location := cfg.Scan.Location
	if location == "" {
		location = scanner.DefaultLocation
	}

	confirmer := usecase.NewConfirmer(usecase.ConfirmerDeps{
		Source:      newNewsSource(cfg.News, client, baseLogger),
		Predictor:   models,
		Scorer:      models,
		Advisor:     newAdvisor(cfg.Advice, baseLogger),
		Threshold:   cfg.ML.Threshold,
		MaxArticles: cfg.Scan.MaxArticles,
		Logger:      baseLogger,
	})

	job := usecase.NewScanJob(usecase.ScanJobDeps{
		Confirmer: confirmer,
		Notifier:  notifier,
		Out:       out,
		Location:  location,
		Logger:    baseLogger,
	})

	scan := &Scan{job: job, logger: baseLogger.With("component", "app")}
	if cfg.Scheduler.CronExpression != "" {
		driver := scheduler.NewCronScheduler(cfg.Scheduler.CronExpression, cfg.Scheduler.Location(), baseLogger)
		scan.scheduler = usecase.NewScheduler(driver, job, baseLogger)
	}
	return scan, nil
}

// Run performs a single pass, or blocks on the cron schedule until ctx is
// cancelled when one is configured.
func (s *Scan) Run(ctx context.Context) error {
	if s.scheduler == nil {
		s.logger.Info("running single scan pass")
		return s.job.Execute(ctx)
	}

	if err := s.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	<-ctx.Done()
	s.logger.Info("stopping scheduled scans")

	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	return s.scheduler.Stop(stopCtx)
}

func newNewsSource(cfg config.NewsConfig, client *http.Client, baseLogger *slog.Logger) *news.StrategySource {
	registry := scanner.NewRegistry()
	registry.Register(news.NewNewsAPIScanner(cfg.Endpoint, cfg.APIKey, client, baseLogger.With("component", "scanner.newsapi")))
	registry.Register(news.NewRSSScanner(cfg.RSSEndpoint, client, baseLogger.With("component", "scanner.rss")))

	if cfg.Provider == "newsapi" && cfg.APIKey == "" {
		baseLogger.Warn("NEWSAPI_KEY is not set; news searches will be rejected by the provider")
	}
	return news.NewStrategySource(registry, cfg, baseLogger.With("component", "source"))
}

func newAdvisor(cfg config.AdviceConfig, baseLogger *slog.Logger) *llm.Advisor {
	if cfg.APIKey == "" {
		baseLogger.Warn("OPENROUTER_API_KEY is not set; advice requests will fall back to defaults")
	}
	return llm.NewAdvisor(cfg, baseLogger)
}

// newNotifier returns nil when Telegram is not configured.
func newNotifier(cfg config.TelegramConfig, client *http.Client, baseLogger *slog.Logger) (ports.Notifier, error) {
	if cfg.BotToken == "" || cfg.ChatID == 0 {
		return nil, nil
	}
	if err := tgbotapi.SetLogger(logger.New(baseLogger, "telegram.api", slog.LevelDebug)); err != nil {
		return nil, fmt.Errorf("telegram logger: %w", err)
	}
	notifier, err := telegram.NewNotifier(cfg, client, baseLogger)
	if err != nil {
		return nil, err
	}
	return notifier, nil
}
