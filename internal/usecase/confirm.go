package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"SafeSpace/internal/domain"
	"SafeSpace/internal/metrics"
	"SafeSpace/internal/ports"
)

const (
	defaultMaxArticles = 10
	defaultThreshold   = 0.6
)

// ErrNoArticles ends a confirmation run when the news source returns nothing.
var ErrNoArticles = errors.New("no articles found")

// ConfirmerDeps wires the adapters used by the offline confirmation job.
type ConfirmerDeps struct {
	Source      ports.NewsSource
	Predictor   ports.ThreatPredictor
	Scorer      ports.ConfidenceScorer
	Advisor     ports.AdviceGenerator
	Threshold   float64
	MaxArticles int
	Logger      *slog.Logger
}

// Confirmer runs the two-stage ML confirmation over freshly fetched news.
type Confirmer struct {
	source      ports.NewsSource
	predictor   ports.ThreatPredictor
	scorer      ports.ConfidenceScorer
	advisor     ports.AdviceGenerator
	threshold   float64
	maxArticles int
	logger      *slog.Logger
}

// NewConfirmer constructs the confirmation use case.
func NewConfirmer(deps ConfirmerDeps) *Confirmer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	threshold := deps.Threshold
	if threshold <= 0 {
		threshold = defaultThreshold
	}
	maxArticles := deps.MaxArticles
	if maxArticles <= 0 {
		maxArticles = defaultMaxArticles
	}
	return &Confirmer{
		source:      deps.Source,
		predictor:   deps.Predictor,
		scorer:      deps.Scorer,
		advisor:     deps.Advisor,
		threshold:   threshold,
		maxArticles: maxArticles,
		logger:      logger.With("component", "confirmer"),
	}
}

// Run fetches news for location and returns the articles both models agree
// are threats, in article order. Advice is requested only for confirmed
// articles.
func (c *Confirmer) Run(ctx context.Context, location string) ([]domain.ConfirmedThreat, error) {
	articles, err := c.source.FetchNews(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}
	if len(articles) == 0 {
		return nil, ErrNoArticles
	}
	if len(articles) > c.maxArticles {
		articles = articles[:c.maxArticles]
	}

	var confirmed []domain.ConfirmedThreat
	for _, article := range articles {
		text := articleText(article)

		if c.predictor.Predict(text) != 1 {
			metrics.ConfirmationTotal.WithLabelValues("safe").Inc()
			continue
		}

		confidence, err := c.scorer.Confidence(ctx, text)
		if err != nil {
			metrics.ConfirmationTotal.WithLabelValues("error").Inc()
			c.logger.Warn("confidence scoring failed", "url", article.URL, "error", err)
			continue
		}

		if confidence <= c.threshold {
			metrics.ConfirmationTotal.WithLabelValues("discarded").Inc()
			c.logger.Debug("candidate discarded", "title", article.TitleText(), "confidence", confidence)
			continue
		}

		metrics.ConfirmationTotal.WithLabelValues("confirmed").Inc()
		confirmed = append(confirmed, domain.ConfirmedThreat{
			Title:      article.TitleText(),
			URL:        article.URL,
			Confidence: math.Round(confidence*100) / 100,
			Advice:     c.advise(ctx, article),
		})
	}

	c.logger.Info("confirmation finished", "location", location, "scanned", len(articles), "confirmed", len(confirmed))
	return confirmed, nil
}

func (c *Confirmer) advise(ctx context.Context, article domain.Article) string {
	if c.advisor == nil {
		return ""
	}
	return c.advisor.Advise(ctx, article.TitleText(), article.DescriptionText())
}

// articleText joins title, description and content; absent fields are empty.
func articleText(article domain.Article) string {
	return strings.Join([]string{
		article.TitleText(),
		article.DescriptionText(),
		article.ContentText(),
	}, ". ")
}
