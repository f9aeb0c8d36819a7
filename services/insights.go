// ABOUTME: Per-link executive recommendations via the Anthropic Messages API
// ABOUTME: Falls back to deterministic text when unconfigured or on API failure

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/fronthaul-tools/capacity-planner/models"
)

const insightTimeout = 30 * time.Second

// Advisor generates short deployment recommendations for link results. The
// API key is optional; without one every call returns the deterministic
// fallback so the analysis pipeline never depends on the external service.
type Advisor struct {
	client *anthropic.Client
	model  anthropic.Model
}

// NewAdvisor creates an advisor. An empty API key yields a fallback-only
// advisor.
func NewAdvisor(apiKey string) *Advisor {
	a := &Advisor{model: anthropic.ModelClaude3_5SonnetLatest}
	if apiKey != "" {
		client := anthropic.NewClient(option.WithAPIKey(apiKey))
		a.client = &client
	}
	return a
}

// Configured reports whether the external service is available.
func (a *Advisor) Configured() bool {
	return a.client != nil
}

// Recommend produces a 3-sentence deployment recommendation for one link.
// Any API failure degrades to the fallback text; recommendations never fail
// an analysis.
func (a *Advisor) Recommend(ctx context.Context, report models.LinkReport) string {
	fallback := FallbackRecommendation(report)
	if a.client == nil {
		return fallback
	}

	ctx, cancel := context.WithTimeout(ctx, insightTimeout)
	defer cancel()

	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: 200,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(recommendPrompt(report))),
		},
	})
	if err != nil || len(msg.Content) == 0 {
		slog.Warn("recommendation request failed, using fallback", "link", report.Link, "error", err)
		return fallback
	}
	return msg.Content[0].Text
}

// FallbackRecommendation is the deterministic recommendation used when the
// external service is absent or failing.
func FallbackRecommendation(r models.LinkReport) string {
	return fmt.Sprintf(
		"Deploy %gG Ethernet link for optimal cost-performance. Required capacity: %.2f Gbps with %.1f%% CAPEX savings vs peak provisioning.",
		r.RecommendedGbps, r.Result.OptimizedGbps, capexSavingPct(r.Result),
	)
}

func recommendPrompt(r models.LinkReport) string {
	return fmt.Sprintf(`You are a senior network planning engineer.

Analyze this fronthaul link capacity result for %s:
- Peak Traffic: %.2f Gbps
- P%.1f Traffic: %.2f Gbps
- Optimized Capacity (Buffer-Aware): %.2f Gbps
- Recommended Link: %gG Ethernet
- CAPEX Saving vs Peak: %.1f%%

Provide a 3-sentence executive recommendation to the CTO on deployment strategy. Be specific, technical, and business-focused.`,
		r.Link, r.Result.PeakGbps, r.Percentile, r.PercentileGbps,
		r.Result.OptimizedGbps, r.RecommendedGbps, capexSavingPct(r.Result))
}

func capexSavingPct(res models.BufferAwareResult) float64 {
	if res.PeakGbps <= 0 {
		return 0
	}
	return (res.PeakGbps - res.OptimizedGbps) / res.PeakGbps * 100
}
