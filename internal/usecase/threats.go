package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"SafeSpace/internal/advice"
	"SafeSpace/internal/classifier"
	"SafeSpace/internal/domain"
	"SafeSpace/internal/ports"
	"SafeSpace/internal/scanner"
)

const (
	// MaxThreats bounds the number of records built per request.
	MaxThreats = 15

	summaryContentRunes = 200
	noDescription       = "No description available"
	unknownSource       = "Unknown"

	minAffectedPeople = 100
	maxAffectedPeople = 50000
)

// Assembler turns fetched articles into threat records.
type Assembler struct {
	advisor  ports.AdviceGenerator
	now      func() time.Time
	affected func() int
}

// NewAssembler constructs an Assembler. A nil advisor yields default advice
// for every record.
func NewAssembler(advisor ports.AdviceGenerator) *Assembler {
	return &Assembler{
		advisor:  advisor,
		now:      time.Now,
		affected: simulatedAffectedPeople,
	}
}

// Assemble walks articles in fetch order, skipping untitled ones, and builds
// at most MaxThreats records with ids 1..n over the retained articles.
// Advice calls are made one at a time, after classification.
func (a *Assembler) Assemble(ctx context.Context, articles []domain.Article, location string) []domain.ThreatRecord {
	threats := make([]domain.ThreatRecord, 0, min(len(articles), MaxThreats))
	for _, article := range articles {
		if len(threats) == MaxThreats {
			break
		}

		title := article.TitleText()
		if title == "" {
			continue
		}
		description := article.DescriptionText()

		category, level := classifier.Classify(title, description)

		var raw string
		if a.advisor != nil {
			raw = a.advisor.Advise(ctx, title, description)
		}

		threats = append(threats, domain.ThreatRecord{
			ID:             len(threats) + 1,
			Title:          title,
			Location:       location,
			Category:       category,
			Level:          level,
			Timestamp:      a.timestamp(article),
			Summary:        summarize(article),
			AffectedPeople: a.affected(),
			AIAdvice:       advice.OrDefault(advice.Parse(raw)),
			URL:            article.URL,
			Source:         sourceName(article),
		})
	}
	return threats
}

func (a *Assembler) timestamp(article domain.Article) string {
	if article.PublishedAt != "" {
		return article.PublishedAt
	}
	return a.now().Format(time.RFC3339)
}

// summarize prefers the description, then a 200-rune content excerpt.
func summarize(article domain.Article) string {
	if d := article.DescriptionText(); d != "" {
		return d
	}
	content := article.ContentText()
	if content == "" {
		return noDescription
	}
	if utf8.RuneCountInString(content) > summaryContentRunes {
		content = string([]rune(content)[:summaryContentRunes])
	}
	return content + "..."
}

func sourceName(article domain.Article) string {
	if name := strings.TrimSpace(article.SourceName); name != "" {
		return name
	}
	return unknownSource
}

// simulatedAffectedPeople is a placeholder; no real signal backs the number.
func simulatedAffectedPeople() int {
	return minAffectedPeople + rand.Intn(maxAffectedPeople-minAffectedPeople+1)
}

// ThreatService serves the threat list and detail queries.
type ThreatService struct {
	source    ports.NewsSource
	assembler *Assembler
	logger    *slog.Logger
	now       func() time.Time
}

// NewThreatService wires the news source with the assembler.
func NewThreatService(source ports.NewsSource, assembler *Assembler, logger *slog.Logger) *ThreatService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ThreatService{
		source:    source,
		assembler: assembler,
		logger:    logger.With("component", "threats"),
		now:       time.Now,
	}
}

// List fetches news for location and assembles threat records. An outage
// of the news provider yields an empty list.
func (s *ThreatService) List(ctx context.Context, location string) ([]domain.ThreatRecord, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		location = scanner.DefaultLocation
	}

	articles, err := s.source.FetchNews(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("fetch news for %s: %w", location, err)
	}

	threats := s.assembler.Assemble(ctx, articles, location)
	s.logger.Info("threats assembled", "location", location, "articles", len(articles), "threats", len(threats))
	return threats, nil
}

// Detail returns placeholder detail content for id. It does not look up
// any list result.
func (s *ThreatService) Detail(id int) domain.ThreatDetail {
	return domain.ThreatDetail{
		ID:             id,
		Title:          fmt.Sprintf("Threat %d Details", id),
		Location:       scanner.DefaultLocation,
		Category:       domain.CategoryCrime,
		Level:          domain.LevelMedium,
		Timestamp:      s.now().Format(time.RFC3339),
		Summary:        "Detailed threat information would be fetched from the database",
		AffectedPeople: 1500,
		AIAdvice: []string{
			"Stay alert in the area",
			"Avoid traveling alone at night",
			"Keep emergency contacts handy",
		},
		TrendData: []int{3, 5, 4, 7, 6, 4, 2},
	}
}
