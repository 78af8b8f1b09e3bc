package news

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"SafeSpace/internal/config"
	"SafeSpace/internal/domain"
	"SafeSpace/internal/ports"
	"SafeSpace/internal/scanner"
)

// StrategySource implements NewsSource via the configured scanner strategy.
type StrategySource struct {
	registry *scanner.Registry
	cfg      config.NewsConfig
	logger   *slog.Logger
	now      func() time.Time
}

var _ ports.NewsSource = (*StrategySource)(nil)

// NewStrategySource wires the scanner registry with the news config.
func NewStrategySource(reg *scanner.Registry, cfg config.NewsConfig, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry: reg,
		cfg:      cfg,
		logger:   log,
		now:      time.Now,
	}
}

// FetchNews runs one search for location through the configured provider.
func (s *StrategySource) FetchNews(ctx context.Context, location string) ([]domain.Article, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("scanner registry is not configured")
	}

	strategy, err := s.registry.Resolve(s.cfg.Provider)
	if err != nil {
		return nil, fmt.Errorf("news provider: %w", err)
	}

	if location == "" {
		location = s.cfg.DefaultLocation
	}
	req := s.request(location)
	s.debug("fetch news", "provider", strategy.Name(), "location", req.Location, "from", req.FromDate())

	articles, err := strategy.Scan(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", strategy.Name(), err)
	}

	s.debug("news fetched", "provider", strategy.Name(), "count", len(articles))
	return articles, nil
}

func (s *StrategySource) request(location string) scanner.Request {
	req := scanner.NewRequest(location, s.now())
	if len(s.cfg.Keywords) > 0 {
		req.Keywords = s.cfg.Keywords
	}
	if s.cfg.Language != "" {
		req.Language = s.cfg.Language
	}
	if s.cfg.PageSize > 0 {
		req.PageSize = s.cfg.PageSize
	}
	return req
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
