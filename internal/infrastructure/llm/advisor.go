package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"SafeSpace/internal/config"
	"SafeSpace/internal/metrics"
	"SafeSpace/internal/ports"
)

// NoAdvice is returned whenever advice cannot be produced.
const NoAdvice = "No advice available."

const promptTemplate = `
You are a safety advisor AI. Given the following news headline and description, give practical safety advice to the public. Keep your answer short, actionable, and in bullet points (max 3). Don't mention the news source.

News Headline: %s
Description: %s

Safety Advice:
`

// Advisor implements ports.AdviceGenerator on top of any OpenAI-compatible
// chat completion API (OpenRouter by default).
type Advisor struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

var _ ports.AdviceGenerator = (*Advisor)(nil)

// NewAdvisor builds a client from configuration.
func NewAdvisor(cfg config.AdviceConfig, logger *slog.Logger) *Advisor {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientCfg.BaseURL = strings.TrimSuffix(cfg.Endpoint, "/")
	}
	if logger != nil {
		logger = logger.With("component", "advisor")
	}
	return &Advisor{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

// Prompt renders the advice prompt for a headline and description.
func Prompt(title, description string) string {
	return fmt.Sprintf(promptTemplate, title, description)
}

// Advise sends one completion request and returns the trimmed text of the
// first choice, or NoAdvice on any failure.
func (a *Advisor) Advise(ctx context.Context, title, description string) string {
	if a == nil || a.client == nil {
		return NoAdvice
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	started := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: Prompt(title, description),
			},
		},
	})
	metrics.AdviceDurationSeconds.Observe(time.Since(started).Seconds())

	if err != nil {
		metrics.AdviceTotal.WithLabelValues("error").Inc()
		a.warn("safety advice generation failed", "error", err, "title", title)
		return NoAdvice
	}
	if len(resp.Choices) == 0 {
		metrics.AdviceTotal.WithLabelValues("empty").Inc()
		a.warn("unexpected advice response format", "title", title)
		return NoAdvice
	}

	metrics.AdviceTotal.WithLabelValues("ok").Inc()
	return strings.TrimSpace(resp.Choices[0].Message.Content)
}

func (a *Advisor) warn(msg string, args ...interface{}) {
	if a.logger != nil {
		a.logger.Warn(msg, args...)
	}
}
