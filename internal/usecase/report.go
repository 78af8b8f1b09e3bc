package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"SafeSpace/internal/domain"
	"SafeSpace/internal/ports"
)

const (
	noArticlesMessage = "No articles found."
	noThreatsMessage  = "No confirmed threats found."
)

// ScanJobDeps wires the confirmation run with its outputs.
type ScanJobDeps struct {
	Confirmer *Confirmer
	Notifier  ports.Notifier
	Out       io.Writer
	Location  string
	Logger    *slog.Logger
}

// ScanJob runs one confirmation pass, prints the report and optionally
// publishes a digest.
type ScanJob struct {
	confirmer *Confirmer
	notifier  ports.Notifier
	out       io.Writer
	location  string
	logger    *slog.Logger
}

// NewScanJob constructs the offline job.
func NewScanJob(deps ScanJobDeps) *ScanJob {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	out := deps.Out
	if out == nil {
		out = io.Discard
	}
	return &ScanJob{
		confirmer: deps.Confirmer,
		notifier:  deps.Notifier,
		out:       out,
		location:  deps.Location,
		logger:    logger.With("component", "scan"),
	}
}

// Execute performs a single pass. An empty news result is reported and is
// not an error.
func (j *ScanJob) Execute(ctx context.Context) error {
	threats, err := j.confirmer.Run(ctx, j.location)
	if errors.Is(err, ErrNoArticles) {
		j.logger.Info("no articles to scan", "location", j.location)
		_, werr := fmt.Fprintln(j.out, noArticlesMessage)
		return werr
	}
	if err != nil {
		return fmt.Errorf("confirm threats: %w", err)
	}

	if _, err := io.WriteString(j.out, FormatReport(threats)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if j.notifier == nil || len(threats) == 0 {
		return nil
	}
	if err := j.notifier.PublishDigest(ctx, FormatDigest(j.location, threats)); err != nil {
		return fmt.Errorf("publish digest: %w", err)
	}
	return nil
}

// FormatReport renders confirmed threats as a numbered plain-text report.
func FormatReport(threats []domain.ConfirmedThreat) string {
	var b strings.Builder
	b.WriteString("CONFIRMED THREATS\n\n")
	if len(threats) == 0 {
		b.WriteString(noThreatsMessage + "\n")
		return b.String()
	}
	for i, threat := range threats {
		fmt.Fprintf(&b, "%d. %s\n", i+1, threat.Title)
		fmt.Fprintf(&b, "   URL: %s\n", threat.URL)
		fmt.Fprintf(&b, "   Confidence: %.2f%%\n", threat.Confidence*100)
		fmt.Fprintf(&b, "   Advice: %s\n\n", threat.Advice)
	}
	return b.String()
}

// FormatDigest renders a compact message for chat channels.
func FormatDigest(location string, threats []domain.ConfirmedThreat) string {
	if len(threats) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Confirmed threats near %s\n\n", location)
	for _, threat := range threats {
		fmt.Fprintf(&b, "- %s\nConfidence: %.0f%%\n%s\n%s\n\n",
			threat.Title,
			threat.Confidence*100,
			strings.TrimSpace(threat.Advice),
			threat.URL)
	}
	return strings.TrimRight(b.String(), "\n")
}
