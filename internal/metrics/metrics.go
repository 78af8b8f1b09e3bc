package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// NewsFetchTotal counts news provider calls by provider and outcome.
	NewsFetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "safespace",
		Subsystem: "news",
		Name:      "fetch_total",
		Help:      "Total number of news search calls, labeled by provider and result (ok, unavailable, error).",
	}, []string{"provider", "result"})

	// AdviceTotal counts advice generation calls by outcome.
	AdviceTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "safespace",
		Subsystem: "advice",
		Name:      "requests_total",
		Help:      "Total number of safety advice requests, labeled by result (ok, empty, error).",
	}, []string{"result"})

	// AdviceDurationSeconds is the latency of a single advice completion call.
	AdviceDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "safespace",
		Subsystem: "advice",
		Name:      "request_duration_seconds",
		Help:      "Latency of chat completion calls used for safety advice.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 60},
	})

	// ConfirmationTotal counts offline confirmation decisions per article.
	ConfirmationTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "safespace",
		Subsystem: "scan",
		Name:      "decisions_total",
		Help:      "Offline confirmation decisions, labeled by outcome (safe, discarded, confirmed, error).",
	}, []string{"decision"})

	// HTTPRequestsTotal counts served API requests.
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "safespace",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests, labeled by method, route and status code.",
	}, []string{"method", "route", "status"})

	// HTTPRequestDurationSeconds is end-to-end handler latency per route.
	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "safespace",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "End-to-end latency of HTTP requests per route.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
	}, []string{"route"})
)

// Register registers collectors with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			NewsFetchTotal,
			AdviceTotal,
			AdviceDurationSeconds,
			ConfirmationTotal,
			HTTPRequestsTotal,
			HTTPRequestDurationSeconds,
		)
	})
}
