package ml

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"
)

// tokenPattern mirrors scikit-learn's default token_pattern `(?u)\b\w\w+\b`.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]{2,}`)

// LinearModel is a bag-of-words NB-SVM exported from the training pipeline:
// features are n-gram counts (or presence flags), optionally idf-weighted
// and L2-normalised, scaled by the naive Bayes log-count ratios and fed to a
// linear decision function.
type LinearModel struct {
	Vocabulary    map[string]int `json:"vocabulary"`
	NgramRange    [2]int         `json:"ngram_range"`
	Lowercase     *bool          `json:"lowercase"`
	Binary        bool           `json:"binary"`
	IDF           []float64      `json:"idf"`
	Norm          string         `json:"norm"`
	LogCountRatio []float64      `json:"log_count_ratio"`
	Coef          []float64      `json:"coef"`
	Intercept     float64        `json:"intercept"`
}

// LoadLinearModel reads and validates a JSON model artifact.
func LoadLinearModel(path string) (*LinearModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read linear model: %w", err)
	}

	var model LinearModel
	if err := json.Unmarshal(raw, &model); err != nil {
		return nil, fmt.Errorf("parse linear model %s: %w", path, err)
	}
	if err := model.validate(); err != nil {
		return nil, fmt.Errorf("linear model %s: %w", path, err)
	}
	return &model, nil
}

func (m *LinearModel) validate() error {
	n := len(m.Coef)
	if n == 0 {
		return fmt.Errorf("no coefficients")
	}
	if len(m.Vocabulary) == 0 {
		return fmt.Errorf("empty vocabulary")
	}
	for term, idx := range m.Vocabulary {
		if idx < 0 || idx >= n {
			return fmt.Errorf("term %q index %d out of range [0,%d)", term, idx, n)
		}
	}
	if len(m.LogCountRatio) != 0 && len(m.LogCountRatio) != n {
		return fmt.Errorf("log_count_ratio has %d entries, want %d", len(m.LogCountRatio), n)
	}
	if len(m.IDF) != 0 && len(m.IDF) != n {
		return fmt.Errorf("idf has %d entries, want %d", len(m.IDF), n)
	}
	if m.Norm != "" && m.Norm != "l2" {
		return fmt.Errorf("unsupported norm %q", m.Norm)
	}
	if m.NgramRange == [2]int{} {
		m.NgramRange = [2]int{1, 1}
	}
	if m.NgramRange[0] < 1 || m.NgramRange[1] < m.NgramRange[0] {
		return fmt.Errorf("invalid ngram_range %v", m.NgramRange)
	}
	return nil
}

// Score evaluates the decision function for text.
func (m *LinearModel) Score(text string) float64 {
	features := m.vectorize(text)

	var norm float64
	if m.Norm == "l2" {
		for _, v := range features {
			norm += v * v
		}
		norm = math.Sqrt(norm)
	}

	score := m.Intercept
	for idx, v := range features {
		if norm > 0 {
			v /= norm
		}
		if len(m.LogCountRatio) > 0 {
			v *= m.LogCountRatio[idx]
		}
		score += m.Coef[idx] * v
	}
	return score
}

// Predict returns 1 for a threat and 0 for safe text.
func (m *LinearModel) Predict(text string) int {
	if m.Score(text) > 0 {
		return 1
	}
	return 0
}

func (m *LinearModel) vectorize(text string) map[int]float64 {
	if m.Lowercase == nil || *m.Lowercase {
		text = strings.ToLower(text)
	}
	tokens := tokenPattern.FindAllString(text, -1)

	features := make(map[int]float64)
	for n := m.NgramRange[0]; n <= m.NgramRange[1]; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			idx, ok := m.Vocabulary[strings.Join(tokens[i:i+n], " ")]
			if !ok {
				continue
			}
			if m.Binary {
				features[idx] = 1
			} else {
				features[idx]++
			}
		}
	}

	if len(m.IDF) > 0 {
		for idx := range features {
			features[idx] *= m.IDF[idx]
		}
	}
	return features
}
