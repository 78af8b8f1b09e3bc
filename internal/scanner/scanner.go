package scanner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"SafeSpace/internal/domain"
)

const (
	// DefaultLocation is used when a caller omits the location.
	DefaultLocation = "Delhi"
	fromLayout      = "2006-01-02"
)

// DefaultKeywords is the fixed incident disjunction appended to every query.
var DefaultKeywords = []string{
	"attack", "violence", "theft", "shooting", "assault", "kidnap",
	"fire", "riot", "accident", "flood", "earthquake",
}

// Request carries all parameters required to execute a news search.
type Request struct {
	Location string
	Keywords []string
	From     time.Time
	SortBy   string
	Language string
	PageSize int
}

// NewRequest builds a search over the trailing calendar month relative to now.
func NewRequest(location string, now time.Time) Request {
	location = strings.TrimSpace(location)
	if location == "" {
		location = DefaultLocation
	}
	return Request{
		Location: location,
		Keywords: DefaultKeywords,
		From:     monthBefore(now),
		SortBy:   "publishedAt",
		Language: "en",
		PageSize: 20,
	}
}

// monthBefore steps back one calendar month, clamping the day to the end of
// the shorter month (31 Mar -> 29 Feb) instead of overflowing.
func monthBefore(t time.Time) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m-1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

// Query renders "<location> kw1 OR kw2 OR ...".
func (r Request) Query() string {
	return fmt.Sprintf("%s %s", r.Location, strings.Join(r.Keywords, " OR "))
}

// FromDate renders the lower publish-date bound as YYYY-MM-DD.
func (r Request) FromDate() string {
	return r.From.Format(fromLayout)
}

// Scanner captures a single provider implementation (NewsAPI, RSS, etc.).
type Scanner interface {
	Name() string
	Scan(ctx context.Context, req Request) ([]domain.Article, error)
}

// Registry keeps a mapping from scanner names to their implementations.
type Registry struct {
	scanners map[string]Scanner
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{scanners: map[string]Scanner{}}
}

// Register adds or replaces a scanner implementation.
func (r *Registry) Register(scanner Scanner) {
	if r.scanners == nil {
		r.scanners = map[string]Scanner{}
	}
	r.scanners[scanner.Name()] = scanner
}

// Resolve returns a scanner by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Scanner, error) {
	if scanner, ok := r.scanners[name]; ok {
		return scanner, nil
	}
	return nil, fmt.Errorf("scanner %s is not registered", name)
}
