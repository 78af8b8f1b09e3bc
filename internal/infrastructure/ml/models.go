package ml

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	"SafeSpace/internal/config"
	"SafeSpace/internal/ports"
)

// ErrModelLoad marks any failure to bring up one of the pre-trained models.
var ErrModelLoad = errors.New("model load failed")

const defaultMaxTokens = 128

// Models bundles the loaded classifiers. It is immutable after LoadModels
// returns and safe to share between goroutines.
type Models struct {
	linear    *LinearModel
	tokenizer *Tokenizer
	inference *InferenceClient
	inputs    []string
	output    string
	maxTokens int
}

var (
	_ ports.ThreatPredictor  = (*Models)(nil)
	_ ports.ConfidenceScorer = (*Models)(nil)
)

// LoadModels loads the linear classifier, the tokenizer vocabulary and the
// transformer's metadata from the inference server. Any failure is fatal
// and wrapped with ErrModelLoad.
func LoadModels(ctx context.Context, cfg config.MLConfig, client *http.Client) (*Models, error) {
	linear, err := LoadLinearModel(cfg.LinearModelPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelLoad, err)
	}

	tokenizer, err := LoadTokenizer(cfg.VocabPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelLoad, err)
	}

	inference := NewInferenceClient(cfg.InferenceURL, cfg.ModelName, client)
	meta, err := inference.Metadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: transformer metadata: %v", ErrModelLoad, err)
	}

	return newModels(linear, tokenizer, inference, meta, cfg.MaxTokens)
}

func newModels(linear *LinearModel, tokenizer *Tokenizer, inference *InferenceClient, meta ModelMetadata, maxTokens int) (*Models, error) {
	if len(meta.Outputs) == 0 {
		return nil, fmt.Errorf("%w: transformer %q declares no outputs", ErrModelLoad, meta.Name)
	}
	if len(meta.Inputs) == 0 {
		return nil, fmt.Errorf("%w: transformer %q declares no inputs", ErrModelLoad, meta.Name)
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	inputs := make([]string, 0, len(meta.Inputs))
	for _, in := range meta.Inputs {
		inputs = append(inputs, in.Name)
	}

	return &Models{
		linear:    linear,
		tokenizer: tokenizer,
		inference: inference,
		inputs:    inputs,
		output:    meta.Outputs[0].Name,
		maxTokens: maxTokens,
	}, nil
}

// Predict runs the linear bag-of-words classifier (1 = threat).
func (m *Models) Predict(text string) int {
	return m.linear.Predict(text)
}

// Confidence returns the transformer's probability for the threat class.
// Tokenizer outputs the model does not declare (token_type_ids for most
// DistilBERT-style exports) are dropped before inference.
func (m *Models) Confidence(ctx context.Context, text string) (float64, error) {
	enc := m.tokenizer.Encode(text, m.maxTokens)
	features := enc.Features()

	shape := []int64{1, int64(m.maxTokens)}
	feed := make([]InferInput, 0, len(m.inputs))
	for _, name := range m.inputs {
		data, ok := features[name]
		if !ok {
			return 0, fmt.Errorf("model input %q has no tokenizer feature", name)
		}
		feed = append(feed, InferInput{Name: name, Shape: shape, Datatype: "INT64", Data: data})
	}

	logits, err := m.inference.Infer(ctx, feed, m.output)
	if err != nil {
		return 0, fmt.Errorf("transformer inference: %w", err)
	}
	if len(logits) < 2 {
		return 0, fmt.Errorf("expected 2 logits, got %d", len(logits))
	}

	return Softmax(logits[:2])[1], nil
}

// Softmax converts logits into probabilities.
func Softmax(logits []float64) []float64 {
	if len(logits) == 0 {
		return nil
	}
	maxLogit := logits[0]
	for _, v := range logits[1:] {
		if v > maxLogit {
			maxLogit = v
		}
	}

	probs := make([]float64, len(logits))
	var sum float64
	for i, v := range logits {
		probs[i] = math.Exp(v - maxLogit)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
