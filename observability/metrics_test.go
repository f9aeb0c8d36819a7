// ABOUTME: Tests for the Prometheus collector
// ABOUTME: Counter behavior, the nil-safe no-op path, and the HTTP handler

package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorObservations(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveAnalysis(2)
	c.ObserveAnalysis(0)
	c.ObserveLink(50*time.Millisecond, 3)
	c.ObserveLink(10*time.Millisecond, 0)

	if got := testutil.ToFloat64(c.AnalysesTotal); got != 2 {
		t.Errorf("Expected 2 analyses, got %g", got)
	}
	if got := testutil.ToFloat64(c.AnalysisErrors); got != 2 {
		t.Errorf("Expected 2 link failures, got %g", got)
	}
	if got := testutil.ToFloat64(c.LinksAnalyzed); got != 2 {
		t.Errorf("Expected 2 links analyzed, got %g", got)
	}
	if got := testutil.ToFloat64(c.LossEvents); got != 3 {
		t.Errorf("Expected 3 loss events, got %g", got)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	// Must not panic.
	c.ObserveAnalysis(1)
	c.ObserveLink(time.Second, 5)
	if c.Handler() == nil {
		t.Error("Nil collector must still serve a metrics handler")
	}
}

func TestCollectorHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.ObserveAnalysis(0)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "capacity_analyses_total") {
		t.Error("Expected engine metrics in exposition output")
	}
}
