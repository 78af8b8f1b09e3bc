package classifier

import (
	"testing"

	"SafeSpace/internal/domain"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		title       string
		description string
		category    domain.Category
		level       domain.Level
	}{
		{"empty", "", "", domain.CategoryOther, domain.LevelLow},
		{"crime before natural", "Theft reported during flood", "", domain.CategoryCrime, domain.LevelHigh},
		{"natural", "Earthquake shakes the capital", "", domain.CategoryNatural, domain.LevelHigh},
		{"traffic with fire severity", "Accident on ring road", "Vehicle caught fire", domain.CategoryTraffic, domain.LevelHigh},
		{"traffic medium", "Accident near market", "", domain.CategoryTraffic, domain.LevelMedium},
		{"riot", "Clash between groups", "", domain.CategoryRiot, domain.LevelMedium},
		{"fire", "Massive fire breaks out in Delhi market", "A fire caused panic", domain.CategoryFire, domain.LevelHigh},
		{"medical", "Virus outbreak in ward", "", domain.CategoryMedical, domain.LevelLow},
		{"case insensitive", "MURDER in the old city", "", domain.CategoryCrime, domain.LevelHigh},
		{"description only", "", "Police detain two after protest", domain.CategoryCrime, domain.LevelMedium},
		{"substring match", "Firefighters praised", "", domain.CategoryFire, domain.LevelHigh},
		{"no keywords", "Local team wins final", "Celebrations continue", domain.CategoryOther, domain.LevelLow},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			category, level := Classify(tc.title, tc.description)
			if category != tc.category {
				t.Fatalf("category = %s, want %s", category, tc.category)
			}
			if level != tc.level {
				t.Fatalf("level = %s, want %s", level, tc.level)
			}
		})
	}
}

func TestLevelIndependentOfCategory(t *testing.T) {
	t.Parallel()

	for _, kw := range highSeverity {
		if _, level := Classify("Report", kw); level != domain.LevelHigh {
			t.Fatalf("keyword %q should give high, got %s", kw, level)
		}
	}
	for _, kw := range mediumSeverity {
		if _, level := Classify(kw, ""); level != domain.LevelMedium {
			t.Fatalf("keyword %q should give medium, got %s", kw, level)
		}
	}
}
