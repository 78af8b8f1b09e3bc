package ports

import (
	"context"
	"time"

	"SafeSpace/internal/domain"
)

// NewsSource pulls recent incident articles for a location.
// A provider outage is reported as an empty result, not an error.
type NewsSource interface {
	FetchNews(ctx context.Context, location string) ([]domain.Article, error)
}

// AdviceGenerator asks a language model for safety advice. It never fails:
// every failure is folded into a fixed sentinel string.
type AdviceGenerator interface {
	Advise(ctx context.Context, title, description string) string
}

// ThreatPredictor is the cheap first-pass classifier (1 = threat, 0 = safe).
type ThreatPredictor interface {
	Predict(text string) int
}

// ConfidenceScorer returns the probability that text describes a threat.
type ConfidenceScorer interface {
	Confidence(ctx context.Context, text string) (float64, error)
}

// Notifier streams confirmed threat digests to Telegram or other channels.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when the offline job executes.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
