// ABOUTME: HTTP-level tests for the analyze, topology, and health endpoints
// ABOUTME: Inline synthetic traffic through the full handler stack

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fronthaul-tools/capacity-planner/cache"
	"github.com/fronthaul-tools/capacity-planner/config"
	"github.com/fronthaul-tools/capacity-planner/models"
)

func testHandler(t *testing.T) *Handler {
	t.Helper()
	cfg := &config.Config{
		Port:     "8080",
		CacheTTL: 60,
		Defaults: models.DefaultAnalysisParams(),
	}
	return NewHandler(cfg, cache.New(time.Minute), models.DefaultTierTable(), nil)
}

// flatSamples builds one mid-rate sample per slot, spaced slightly over a
// slot so float rounding cannot merge adjacent samples.
func flatSamples(n int, gbps float64) []models.TrafficSample {
	spacing := models.SlotDurationSec * (1 + 0.5/float64(n))
	samples := make([]models.TrafficSample, n)
	for i := range samples {
		samples[i] = models.TrafficSample{
			Time: float64(i) * spacing,
			Bits: gbps * models.GbpsScale * models.SlotDurationSec,
		}
	}
	return samples
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAnalyzeInlineCells(t *testing.T) {
	h := testHandler(t)

	params := models.DefaultAnalysisParams()
	params.TargetLinkCount = 1
	req := models.AnalysisRequest{
		Cells: []models.CellInput{
			{CellID: 1, Samples: flatSamples(100, 1.0)},
			{CellID: 2, Samples: flatSamples(100, 2.0)},
		},
		Params: &params,
	}

	rec := postJSON(t, h.Analyze, "/api/v1/analyze", req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.AnalysisResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad response body: %v", err)
	}
	report, ok := resp.Links["Link_1"]
	if !ok {
		t.Fatalf("Expected Link_1, got %v", resp.Links)
	}
	if report.Result.PeakGbps < 2.9 || report.Result.PeakGbps > 3.1 {
		t.Errorf("Expected aggregate peak ~3 Gbps, got %.4f", report.Result.PeakGbps)
	}
	if resp.Meta.Cached {
		t.Error("First response must not be marked cached")
	}

	// The identical request hits the cache.
	rec = postJSON(t, h.Analyze, "/api/v1/analyze", req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 on repeat, got %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad response body: %v", err)
	}
	if !resp.Meta.Cached {
		t.Error("Repeat response must be served from cache")
	}
}

func TestAnalyzeRejectsBadRequests(t *testing.T) {
	h := testHandler(t)

	t.Run("invalid json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()
		h.Analyze(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})

	t.Run("neither source", func(t *testing.T) {
		rec := postJSON(t, h.Analyze, "/api/v1/analyze", models.AnalysisRequest{})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})

	t.Run("both sources", func(t *testing.T) {
		rec := postJSON(t, h.Analyze, "/api/v1/analyze", models.AnalysisRequest{
			DataDir: "/tmp/traces",
			Cells:   []models.CellInput{{CellID: 1, Samples: flatSamples(5, 1)}},
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})

	t.Run("duplicate cell ids", func(t *testing.T) {
		rec := postJSON(t, h.Analyze, "/api/v1/analyze", models.AnalysisRequest{
			Cells: []models.CellInput{
				{CellID: 1, Samples: flatSamples(5, 1)},
				{CellID: 1, Samples: flatSamples(5, 1)},
			},
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})

	t.Run("bad params", func(t *testing.T) {
		params := models.DefaultAnalysisParams()
		params.Percentile = 50
		rec := postJSON(t, h.Analyze, "/api/v1/analyze", models.AnalysisRequest{
			Cells:  []models.CellInput{{CellID: 1, Samples: flatSamples(5, 1)}},
			Params: &params,
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for bad params, got %d", rec.Code)
		}
	})
}

func TestOptimizeTopology(t *testing.T) {
	h := testHandler(t)

	req := models.TopologyRequest{
		Cells: []models.CellInput{
			{CellID: 1, Samples: flatSamples(50, 1)},
			{CellID: 2, Samples: flatSamples(50, 2)},
			{CellID: 3, Samples: flatSamples(50, 3)},
			{CellID: 4, Samples: flatSamples(50, 1)},
		},
		NumLinks:   2,
		Iterations: 10,
	}

	rec := postJSON(t, h.OptimizeTopology, "/api/v1/topology/optimize", req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.TopologyResult
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad response body: %v", err)
	}
	if len(resp.Mapping) != 4 {
		t.Errorf("Expected 4 mapped cells, got %d", len(resp.Mapping))
	}
	if resp.TotalCostINR <= 0 {
		t.Errorf("Expected positive total cost, got %.2f", resp.TotalCostINR)
	}
}

func TestHealth(t *testing.T) {
	h := testHandler(t)

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Bad response body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body["status"])
	}
	if body["insights"] != "not_configured" {
		t.Errorf("Expected insights not_configured, got %v", body["insights"])
	}
}

func TestRegisterRoutes(t *testing.T) {
	h := testHandler(t)
	mux := http.NewServeMux()
	h.Register(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("Expected routed health to return 200, got %d", rec.Code)
	}

	// Method patterns reject mismatched verbs.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analyze", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405 for GET on analyze, got %d", rec.Code)
	}
}
