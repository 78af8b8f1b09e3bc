package news

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"SafeSpace/internal/domain"
	"SafeSpace/internal/metrics"
	"SafeSpace/internal/scanner"
)

// NewsAPIScanner queries the newsapi.org "everything" endpoint.
type NewsAPIScanner struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   *slog.Logger
}

var _ scanner.Scanner = (*NewsAPIScanner)(nil)

// NewNewsAPIScanner wires an HTTP client; a nil client gets a 20s timeout.
func NewNewsAPIScanner(endpoint, apiKey string, client *http.Client, logger *slog.Logger) *NewsAPIScanner {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &NewsAPIScanner{endpoint: endpoint, apiKey: apiKey, client: client, logger: logger}
}

// Name identifies the strategy inside the registry.
func (s *NewsAPIScanner) Name() string {
	return "newsapi"
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	PublishedAt string  `json:"publishedAt"`
	URL         string  `json:"url"`
	Source      *struct {
		Name string `json:"name"`
	} `json:"source"`
}

// Scan performs a single search. A non-200 answer is logged and treated as
// zero results; transport and decoding failures are returned.
func (s *NewsAPIScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.Article, error) {
	pageURL, err := buildSearchURL(s.endpoint, req, s.apiKey)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("User-Agent", "SafeSpace/1.0")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		metrics.NewsFetchTotal.WithLabelValues(s.Name(), "error").Inc()
		return nil, fmt.Errorf("request news: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.NewsFetchTotal.WithLabelValues(s.Name(), "unavailable").Inc()
		if s.logger != nil {
			s.logger.Warn("failed to fetch news", "status", resp.StatusCode, "location", req.Location)
		}
		return nil, nil
	}

	var payload newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		metrics.NewsFetchTotal.WithLabelValues(s.Name(), "error").Inc()
		return nil, fmt.Errorf("decode news: %w", err)
	}
	metrics.NewsFetchTotal.WithLabelValues(s.Name(), "ok").Inc()

	articles := make([]domain.Article, 0, len(payload.Articles))
	for _, item := range payload.Articles {
		articles = append(articles, item.toDomain())
	}
	return articles, nil
}

func (a newsAPIArticle) toDomain() domain.Article {
	article := domain.Article{
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
		PublishedAt: a.PublishedAt,
		URL:         a.URL,
	}
	if a.Source != nil {
		article.SourceName = a.Source.Name
	}
	return article
}

func buildSearchURL(base string, req scanner.Request, apiKey string) (string, error) {
	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid news endpoint %s: %w", base, err)
	}

	query := parsed.Query()
	query.Set("q", req.Query())
	query.Set("from", req.FromDate())
	query.Set("sortBy", req.SortBy)
	query.Set("language", req.Language)
	query.Set("pageSize", strconv.Itoa(req.PageSize))
	query.Set("apiKey", apiKey)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
