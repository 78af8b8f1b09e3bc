package news

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"SafeSpace/internal/domain"
	"SafeSpace/internal/metrics"
	"SafeSpace/internal/scanner"
)

// RSSScanner searches an RSS news search endpoint (Google News style) and
// flattens the HTML item bodies into plain text.
type RSSScanner struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

var _ scanner.Scanner = (*RSSScanner)(nil)

// NewRSSScanner wires an HTTP client; a nil client gets a 20s timeout.
func NewRSSScanner(endpoint string, client *http.Client, logger *slog.Logger) *RSSScanner {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &RSSScanner{endpoint: endpoint, client: client, logger: logger}
}

// Name identifies the strategy inside the registry.
func (s *RSSScanner) Name() string {
	return "rss"
}

// Scan fetches the feed once, drops items published before req.From and
// keeps at most req.PageSize items in feed order.
func (s *RSSScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.Article, error) {
	feedURL, err := buildFeedURL(s.endpoint, req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("User-Agent", "SafeSpace/1.0")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		metrics.NewsFetchTotal.WithLabelValues(s.Name(), "error").Inc()
		return nil, fmt.Errorf("request feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.NewsFetchTotal.WithLabelValues(s.Name(), "unavailable").Inc()
		if s.logger != nil {
			s.logger.Warn("failed to fetch news feed", "status", resp.StatusCode, "location", req.Location)
		}
		return nil, nil
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		metrics.NewsFetchTotal.WithLabelValues(s.Name(), "error").Inc()
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	metrics.NewsFetchTotal.WithLabelValues(s.Name(), "ok").Inc()

	articles := make([]domain.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if req.PageSize > 0 && len(articles) == req.PageSize {
			break
		}
		if item.PublishedParsed != nil && item.PublishedParsed.Before(req.From) {
			continue
		}
		articles = append(articles, itemToArticle(item, feed.Title))
	}
	return articles, nil
}

func itemToArticle(item *gofeed.Item, feedTitle string) domain.Article {
	article := domain.Article{
		Title:       optional(strings.TrimSpace(item.Title)),
		Description: optional(htmlToText(item.Description)),
		Content:     optional(htmlToText(item.Content)),
		PublishedAt: item.Published,
		URL:         item.Link,
		SourceName:  feedTitle,
	}
	if item.PublishedParsed != nil {
		article.PublishedAt = item.PublishedParsed.UTC().Format(time.RFC3339)
	}
	return article
}

// htmlToText returns the visible text of an HTML fragment. Plain text passes
// through unchanged apart from whitespace collapsing.
func htmlToText(fragment string) string {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func buildFeedURL(base string, req scanner.Request) (string, error) {
	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid feed endpoint %s: %w", base, err)
	}

	query := parsed.Query()
	query.Set("q", req.Query())
	if req.Language != "" {
		query.Set("hl", req.Language)
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
