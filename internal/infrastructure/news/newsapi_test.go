package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"SafeSpace/internal/scanner"
)

const newsAPIBody = `{
  "status": "ok",
  "totalResults": 2,
  "articles": [
    {
      "source": {"id": null, "name": "X"},
      "title": "Massive fire breaks out in Delhi market",
      "description": "A fire caused panic",
      "content": null,
      "publishedAt": "2024-01-01T00:00:00Z",
      "url": "http://x"
    },
    {
      "source": {"id": null, "name": "Y"},
      "title": null,
      "description": null,
      "content": "Body text",
      "publishedAt": "2024-01-02T00:00:00Z",
      "url": "http://y"
    }
  ]
}`

func TestNewsAPIScannerScan(t *testing.T) {
	t.Parallel()

	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"q":        q.Get("q"),
			"from":     q.Get("from"),
			"sortBy":   q.Get("sortBy"),
			"language": q.Get("language"),
			"pageSize": q.Get("pageSize"),
			"apiKey":   q.Get("apiKey"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(newsAPIBody))
	}))
	defer server.Close()

	sc := NewNewsAPIScanner(server.URL+"/v2/everything", "secret", server.Client(), nil)
	req := scanner.NewRequest("Delhi", time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC))

	articles, err := sc.Scan(context.Background(), req)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}

	if gotQuery["q"] != req.Query() {
		t.Fatalf("unexpected q: %s", gotQuery["q"])
	}
	if gotQuery["from"] != "2024-01-10" {
		t.Fatalf("unexpected from: %s", gotQuery["from"])
	}
	if gotQuery["sortBy"] != "publishedAt" || gotQuery["language"] != "en" || gotQuery["pageSize"] != "20" {
		t.Fatalf("unexpected fixed params: %v", gotQuery)
	}
	if gotQuery["apiKey"] != "secret" {
		t.Fatalf("api key not forwarded: %v", gotQuery)
	}

	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	first := articles[0]
	if first.TitleText() != "Massive fire breaks out in Delhi market" || first.SourceName != "X" {
		t.Fatalf("unexpected first article: %+v", first)
	}
	if first.Content != nil {
		t.Fatalf("null content must stay absent, got %q", *first.Content)
	}
	second := articles[1]
	if second.Title != nil || second.Description != nil {
		t.Fatalf("null fields must stay absent: %+v", second)
	}
	if second.ContentText() != "Body text" {
		t.Fatalf("unexpected content: %q", second.ContentText())
	}
}

func TestNewsAPIScannerNonOKIsEmpty(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":"error","code":"apiKeyInvalid"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	sc := NewNewsAPIScanner(server.URL, "bad", server.Client(), nil)
	articles, err := sc.Scan(context.Background(), scanner.NewRequest("Delhi", time.Now()))
	if err != nil {
		t.Fatalf("non-200 must not be an error: %v", err)
	}
	if len(articles) != 0 {
		t.Fatalf("expected no articles, got %d", len(articles))
	}
}

func TestNewsAPIScannerTransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	sc := NewNewsAPIScanner(endpoint, "key", nil, nil)
	if _, err := sc.Scan(context.Background(), scanner.NewRequest("Delhi", time.Now())); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestNewsAPIScannerMalformedBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	sc := NewNewsAPIScanner(server.URL, "key", server.Client(), nil)
	if _, err := sc.Scan(context.Background(), scanner.NewRequest("Delhi", time.Now())); err == nil {
		t.Fatal("expected decode error")
	}
}
