package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TensorMetadata describes one model input or output.
type TensorMetadata struct {
	Name     string  `json:"name"`
	Datatype string  `json:"datatype"`
	Shape    []int64 `json:"shape"`
}

// ModelMetadata is the KServe v2 model metadata document.
type ModelMetadata struct {
	Name     string           `json:"name"`
	Platform string           `json:"platform"`
	Inputs   []TensorMetadata `json:"inputs"`
	Outputs  []TensorMetadata `json:"outputs"`
}

// InferInput is one named INT64 tensor sent for inference.
type InferInput struct {
	Name     string  `json:"name"`
	Shape    []int64 `json:"shape"`
	Datatype string  `json:"datatype"`
	Data     []int64 `json:"data"`
}

type inferRequest struct {
	Inputs  []InferInput          `json:"inputs"`
	Outputs []inferOutputSelector `json:"outputs,omitempty"`
}

type inferOutputSelector struct {
	Name string `json:"name"`
}

type inferResponse struct {
	Outputs []struct {
		Name     string    `json:"name"`
		Shape    []int64   `json:"shape"`
		Datatype string    `json:"datatype"`
		Data     []float64 `json:"data"`
	} `json:"outputs"`
}

// InferenceClient talks to a model server speaking the KServe v2 REST
// protocol (Triton, KServe, Seldon MLServer).
type InferenceClient struct {
	endpoint string
	model    string
	http     *http.Client
}

// NewInferenceClient creates a reusable HTTP client for one model.
func NewInferenceClient(endpoint, model string, client *http.Client) *InferenceClient {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &InferenceClient{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		model:    model,
		http:     client,
	}
}

// Metadata fetches the model's declared inputs and outputs.
func (c *InferenceClient) Metadata(ctx context.Context) (ModelMetadata, error) {
	var meta ModelMetadata
	if err := c.do(ctx, http.MethodGet, c.modelPath(), nil, &meta); err != nil {
		return ModelMetadata{}, err
	}
	return meta, nil
}

// Infer runs the model and returns the flattened data of the named output.
func (c *InferenceClient) Infer(ctx context.Context, inputs []InferInput, output string) ([]float64, error) {
	payload := inferRequest{Inputs: inputs}
	if output != "" {
		payload.Outputs = []inferOutputSelector{{Name: output}}
	}

	var resp inferResponse
	if err := c.do(ctx, http.MethodPost, c.modelPath()+"/infer", payload, &resp); err != nil {
		return nil, err
	}

	for _, out := range resp.Outputs {
		if output == "" || out.Name == output {
			return out.Data, nil
		}
	}
	return nil, fmt.Errorf("output %q missing from inference response", output)
}

func (c *InferenceClient) modelPath() string {
	return "/v2/models/" + url.PathEscape(c.model)
}

func (c *InferenceClient) do(ctx context.Context, method, path string, payload any, v any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
