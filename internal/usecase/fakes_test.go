package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"SafeSpace/internal/domain"
)

type fakeSource struct {
	articles []domain.Article
	err      error

	mu        sync.Mutex
	locations []string
}

func (f *fakeSource) FetchNews(_ context.Context, location string) ([]domain.Article, error) {
	f.mu.Lock()
	f.locations = append(f.locations, location)
	f.mu.Unlock()
	return f.articles, f.err
}

type fakeAdvisor struct {
	reply string

	mu     sync.Mutex
	titles []string
}

func (f *fakeAdvisor) Advise(_ context.Context, title, _ string) string {
	f.mu.Lock()
	f.titles = append(f.titles, title)
	f.mu.Unlock()
	return f.reply
}

func (f *fakeAdvisor) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.titles...)
}

// fakeModels flags any text containing "threat" in Stage A and scores
// Stage B by the title prefix of the text.
type fakeModels struct {
	scores map[string]float64
	errs   map[string]error

	mu     sync.Mutex
	scored []string
}

func (f *fakeModels) Predict(text string) int {
	if strings.Contains(strings.ToLower(text), "threat") {
		return 1
	}
	return 0
}

func (f *fakeModels) Confidence(_ context.Context, text string) (float64, error) {
	f.mu.Lock()
	f.scored = append(f.scored, text)
	f.mu.Unlock()
	for title, err := range f.errs {
		if strings.HasPrefix(text, title+".") {
			return 0, err
		}
	}
	for title, score := range f.scores {
		if strings.HasPrefix(text, title+".") {
			return score, nil
		}
	}
	return 0, nil
}

type fakeNotifier struct {
	mu      sync.Mutex
	digests []string
	err     error
}

func (f *fakeNotifier) PublishDigest(_ context.Context, digest string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.digests = append(f.digests, digest)
	return f.err
}

type fakeDriver struct {
	job     func(time.Time)
	stopped bool
}

func (f *fakeDriver) Start(_ context.Context, job func(time.Time)) error {
	f.job = job
	return nil
}

func (f *fakeDriver) Stop(context.Context) error {
	f.stopped = true
	return nil
}

func titled(title string) domain.Article {
	return domain.Article{
		Title:      domain.StringPtr(title),
		URL:        "https://news.example/" + strings.ReplaceAll(strings.ToLower(title), " ", "-"),
		SourceName: "Example",
	}
}
