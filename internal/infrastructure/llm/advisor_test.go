package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"SafeSpace/internal/config"
)

func completionServer(t *testing.T, status int, body string, gotReq *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		if gotReq != nil {
			var payload map[string]any
			_ = json.NewDecoder(r.Body).Decode(&payload)
			payload["authorization"] = r.Header.Get("Authorization")
			*gotReq = payload
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func newTestAdvisor(endpoint string) *Advisor {
	return NewAdvisor(config.AdviceConfig{
		Endpoint: endpoint,
		Model:    "test/model",
		APIKey:   "sk-test",
		Timeout:  5 * time.Second,
	}, nil)
}

func TestAdviseReturnsFirstChoice(t *testing.T) {
	t.Parallel()

	var got map[string]any
	server := completionServer(t, http.StatusOK, `{
		"id": "cmpl-1",
		"object": "chat.completion",
		"choices": [
			{"index": 0, "message": {"role": "assistant", "content": "  - Stay away\n- Call emergency services\n"}, "finish_reason": "stop"},
			{"index": 1, "message": {"role": "assistant", "content": "ignored"}, "finish_reason": "stop"}
		]
	}`, &got)
	defer server.Close()

	advice := newTestAdvisor(server.URL+"/api/v1").Advise(context.Background(), "Fire in market", "A fire caused panic")
	if advice != "- Stay away\n- Call emergency services" {
		t.Fatalf("unexpected advice: %q", advice)
	}

	if got["model"] != "test/model" {
		t.Fatalf("unexpected model: %v", got["model"])
	}
	if got["authorization"] != "Bearer sk-test" {
		t.Fatalf("missing bearer token: %v", got["authorization"])
	}
	messages, ok := got["messages"].([]any)
	if !ok || len(messages) != 1 {
		t.Fatalf("expected one message, got %v", got["messages"])
	}
	msg := messages[0].(map[string]any)
	if msg["role"] != "user" {
		t.Fatalf("unexpected role: %v", msg["role"])
	}
	content, _ := msg["content"].(string)
	if !strings.Contains(content, "News Headline: Fire in market") || !strings.Contains(content, "Description: A fire caused panic") {
		t.Fatalf("prompt does not embed the article: %q", content)
	}
}

func TestAdviseFallbacks(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"no choices", http.StatusOK, `{"id":"x","choices":[]}`},
		{"missing choices", http.StatusOK, `{"error":{"message":"rate limited"}}`},
		{"server error", http.StatusInternalServerError, `{"error":{"message":"boom","type":"server_error"}}`},
		{"malformed", http.StatusOK, `not json`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			server := completionServer(t, tc.status, tc.body, nil)
			defer server.Close()

			if got := newTestAdvisor(server.URL).Advise(context.Background(), "t", ""); got != NoAdvice {
				t.Fatalf("expected sentinel, got %q", got)
			}
		})
	}
}

func TestAdviseNetworkFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	if got := newTestAdvisor(endpoint).Advise(context.Background(), "", ""); got != NoAdvice {
		t.Fatalf("expected sentinel on network failure, got %q", got)
	}
}

func TestAdviseNilAdvisor(t *testing.T) {
	t.Parallel()

	var a *Advisor
	if got := a.Advise(context.Background(), "t", "d"); got != NoAdvice {
		t.Fatalf("expected sentinel, got %q", got)
	}
}

func TestPrompt(t *testing.T) {
	t.Parallel()

	p := Prompt("Flood alert", "")
	if !strings.Contains(p, "bullet points (max 3)") || !strings.Contains(p, "Don't mention the news source") {
		t.Fatalf("prompt lost its instructions: %q", p)
	}
	if !strings.Contains(p, "Description: \n") {
		t.Fatalf("empty description should render empty: %q", p)
	}
}
