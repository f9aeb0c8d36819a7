// ABOUTME: Tests for the recommendation advisor fallback path
// ABOUTME: The external API is never called in tests

package services

import (
	"context"
	"strings"
	"testing"

	"github.com/fronthaul-tools/capacity-planner/models"
)

func sampleReport() models.LinkReport {
	return models.LinkReport{
		Link: "Link_1",
		Result: models.BufferAwareResult{
			OptimizedGbps: 6.5,
			PeakGbps:      10,
			MeanGbps:      4,
		},
		Percentile:      99,
		PercentileGbps:  8.1,
		RecommendedGbps: 10,
	}
}

func TestAdvisorUnconfigured(t *testing.T) {
	advisor := NewAdvisor("")
	if advisor.Configured() {
		t.Error("Advisor without an API key must report unconfigured")
	}

	rec := advisor.Recommend(context.Background(), sampleReport())
	if rec != FallbackRecommendation(sampleReport()) {
		t.Errorf("Expected fallback recommendation, got %q", rec)
	}
}

func TestFallbackRecommendationContent(t *testing.T) {
	rec := FallbackRecommendation(sampleReport())

	if !strings.Contains(rec, "10G Ethernet") {
		t.Errorf("Expected tier in recommendation, got %q", rec)
	}
	if !strings.Contains(rec, "6.50 Gbps") {
		t.Errorf("Expected optimized capacity in recommendation, got %q", rec)
	}
	// CAPEX saving: (10 - 6.5) / 10 = 35%
	if !strings.Contains(rec, "35.0%") {
		t.Errorf("Expected 35.0%% saving in recommendation, got %q", rec)
	}
}

func TestAdvisorConfigured(t *testing.T) {
	advisor := NewAdvisor("test-key")
	if !advisor.Configured() {
		t.Error("Advisor with an API key must report configured")
	}
}
