package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserve(t *testing.T) {
	m := New()
	m.Observe("next", 200, 3, time.Millisecond)
	m.Observe("next", 404, 0, time.Millisecond)
	m.Observe("next", 200, 1, time.Millisecond)

	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("next", "200")); got != 2 {
		t.Errorf("requests{next,200} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("next", "404")); got != 1 {
		t.Errorf("requests{next,404} = %v, want 1", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.Observe("words", 200, 1, time.Millisecond)
}

func TestHandler(t *testing.T) {
	m := New()
	m.Observe("stats", 200, 4, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `pgalyzer_requests_total{action="stats",code="200"} 1`) {
		t.Errorf("scrape output missing counter:\n%s", rec.Body.String())
	}
}
