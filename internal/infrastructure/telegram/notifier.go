package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"SafeSpace/internal/config"
	"SafeSpace/internal/ports"
)

// maxMessageRunes is Telegram's limit for a single text message.
const maxMessageRunes = 4096

// Notifier sends confirmed threat digests to a Telegram chat via the bot API.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *slog.Logger
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier authenticates the bot token and binds the target chat.
func NewNotifier(cfg config.TelegramConfig, client *http.Client, logger *slog.Logger) (*Notifier, error) {
	return newNotifier(cfg, tgbotapi.APIEndpoint, client, logger)
}

func newNotifier(cfg config.TelegramConfig, endpoint string, client *http.Client, logger *slog.Logger) (*Notifier, error) {
	if cfg.BotToken == "" || cfg.ChatID == 0 {
		return nil, errors.New("telegram notifier misconfigured: bot token and chat id are required")
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}

	api, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}

	return &Notifier{
		api:    api,
		chatID: cfg.ChatID,
		logger: logger.With("component", "telegram"),
	}, nil
}

// PublishDigest posts the digest as plain text, split on line boundaries
// when it exceeds a single message.
func (n *Notifier) PublishDigest(ctx context.Context, digest string) error {
	digest = strings.TrimSpace(digest)
	if digest == "" {
		return nil
	}

	for i, chunk := range splitMessage(digest, maxMessageRunes) {
		if err := ctx.Err(); err != nil {
			return err
		}
		sent, err := n.api.Send(tgbotapi.NewMessage(n.chatID, chunk))
		if err != nil {
			return fmt.Errorf("send digest part %d: %w", i+1, err)
		}
		n.logger.Debug("digest part sent", "chat_id", n.chatID, "message_id", sent.MessageID)
	}
	return nil
}

// splitMessage cuts text into chunks of at most limit runes, preferring
// line breaks as cut points.
func splitMessage(text string, limit int) []string {
	var (
		chunks  []string
		current strings.Builder
		size    int
	)
	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, strings.TrimRight(current.String(), "\n"))
			current.Reset()
			size = 0
		}
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		n := utf8.RuneCountInString(line)
		if size+n > limit {
			flush()
		}
		for n > limit {
			runes := []rune(line)
			chunks = append(chunks, string(runes[:limit]))
			line = string(runes[limit:])
			n -= limit
		}
		current.WriteString(line)
		size += n
	}
	flush()
	return chunks
}
