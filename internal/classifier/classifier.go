// Package classifier tags article text with a threat category and severity
// using ordered keyword-set membership tests.
//
// Category and severity are computed independently from the same text, so a
// text may be category=traffic and level=high when it mentions both an
// accident and a fire. Both the decoupling and the category order are part
// of the observable behaviour and must not be reordered.
package classifier

import (
	"strings"

	"SafeSpace/internal/domain"
)

type rule struct {
	category domain.Category
	keywords []string
}

// categoryRules are tested in order; the first match wins.
var categoryRules = []rule{
	{domain.CategoryCrime, []string{"theft", "robbery", "murder", "assault", "kidnap", "crime", "police", "arrest"}},
	{domain.CategoryNatural, []string{"flood", "earthquake", "cyclone", "storm", "landslide", "drought"}},
	{domain.CategoryTraffic, []string{"accident", "traffic", "collision", "road", "highway", "vehicle"}},
	{domain.CategoryRiot, []string{"riot", "protest", "violence", "clash", "unrest"}},
	{domain.CategoryFire, []string{"fire", "explosion", "blast", "burn"}},
	{domain.CategoryMedical, []string{"disease", "outbreak", "virus", "pandemic", "health"}},
}

var (
	highSeverity   = []string{"murder", "explosion", "earthquake", "flood", "riot", "fire", "kidnap"}
	mediumSeverity = []string{"theft", "accident", "protest", "storm", "clash"}
)

// Classify returns the category and level for an article title and
// description. Matching is by substring on the lower-cased text.
func Classify(title, description string) (domain.Category, domain.Level) {
	text := strings.ToLower(title + " " + description)
	return categoryOf(text), levelOf(text)
}

func categoryOf(text string) domain.Category {
	for _, r := range categoryRules {
		if containsAny(text, r.keywords) {
			return r.category
		}
	}
	return domain.CategoryOther
}

func levelOf(text string) domain.Level {
	switch {
	case containsAny(text, highSeverity):
		return domain.LevelHigh
	case containsAny(text, mediumSeverity):
		return domain.LevelMedium
	default:
		return domain.LevelLow
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
