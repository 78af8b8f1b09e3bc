package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterIsIdempotent(t *testing.T) {
	Register()
	Register()

	AdviceTotal.WithLabelValues("ok").Inc()
	if got := testutil.ToFloat64(AdviceTotal.WithLabelValues("ok")); got < 1 {
		t.Fatalf("advice counter = %v", got)
	}

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() == "safespace_advice_requests_total" {
			found = true
		}
	}
	if !found {
		t.Fatal("advice counter not registered with the default registry")
	}
}
