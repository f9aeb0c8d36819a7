// ABOUTME: Engineering parameters for one analysis run, with range validation
// ABOUTME: Out-of-range values are rejected with ConfigError, never clamped

package models

import "fmt"

// AnalysisParams are the externally supplied engineering controls. Zero
// values are replaced by defaults in ApplyDefaults; Validate rejects anything
// outside the documented ranges.
type AnalysisParams struct {
	// Percentile is the provisioning percentile, informational for the
	// search itself but reported for comparison. Range [95.0, 99.9].
	Percentile float64 `json:"percentile"`
	// BufferSymbols is the switch buffer depth in 35.7us symbols. Range [0, 10].
	BufferSymbols int `json:"buffer_symbols"`
	// MaxLossPct is the slot loss budget in percent. Range [0.1, 5.0].
	MaxLossPct float64 `json:"max_loss_pct"`
	// TargetLinkCount is the number of aggregated links. Range [1, 12].
	TargetLinkCount int `json:"target_link_count"`
	// LicenseCostPerGbps prices capacity licenses in INR per Gbps. Must be > 0.
	LicenseCostPerGbps float64 `json:"license_cost_per_gbps"`
	// ScenarioMultiplier scales all traffic before the search; 1.0 is the
	// observed load, 1.3 models worst-case synchronized peaks. Must be >= 1.
	ScenarioMultiplier float64 `json:"scenario_multiplier"`
	// WithInsights requests per-link executive recommendations.
	WithInsights bool `json:"with_insights"`
}

// DefaultAnalysisParams mirror the original engineering defaults: P99
// provisioning, a 4-symbol buffer, 1% loss budget, three links.
func DefaultAnalysisParams() AnalysisParams {
	return AnalysisParams{
		Percentile:         99.0,
		BufferSymbols:      4,
		MaxLossPct:         1.0,
		TargetLinkCount:    3,
		LicenseCostPerGbps: 25000,
		ScenarioMultiplier: 1.0,
	}
}

// ApplyDefaults fills unset (zero) fields from the defaults. BufferSymbols
// is left alone: zero is a meaningful buffer size.
func (p *AnalysisParams) ApplyDefaults() {
	d := DefaultAnalysisParams()
	if p.Percentile == 0 {
		p.Percentile = d.Percentile
	}
	if p.MaxLossPct == 0 {
		p.MaxLossPct = d.MaxLossPct
	}
	if p.TargetLinkCount == 0 {
		p.TargetLinkCount = d.TargetLinkCount
	}
	if p.LicenseCostPerGbps == 0 {
		p.LicenseCostPerGbps = d.LicenseCostPerGbps
	}
	if p.ScenarioMultiplier == 0 {
		p.ScenarioMultiplier = d.ScenarioMultiplier
	}
}

// Validate rejects parameters outside their documented ranges.
func (p AnalysisParams) Validate() error {
	if p.Percentile < 95.0 || p.Percentile > 99.9 {
		return &ConfigError{Param: "percentile", Reason: fmt.Sprintf("must be in [95.0, 99.9], got %g", p.Percentile)}
	}
	if p.BufferSymbols < 0 || p.BufferSymbols > 10 {
		return &ConfigError{Param: "buffer_symbols", Reason: fmt.Sprintf("must be in [0, 10], got %d", p.BufferSymbols)}
	}
	if p.MaxLossPct < 0.1 || p.MaxLossPct > 5.0 {
		return &ConfigError{Param: "max_loss_pct", Reason: fmt.Sprintf("must be in [0.1, 5.0], got %g", p.MaxLossPct)}
	}
	if p.TargetLinkCount < 1 || p.TargetLinkCount > 12 {
		return &ConfigError{Param: "target_link_count", Reason: fmt.Sprintf("must be in [1, 12], got %d", p.TargetLinkCount)}
	}
	if p.LicenseCostPerGbps <= 0 {
		return &ConfigError{Param: "license_cost_per_gbps", Reason: "must be positive"}
	}
	if p.ScenarioMultiplier < 1.0 {
		return &ConfigError{Param: "scenario_multiplier", Reason: fmt.Sprintf("must be >= 1.0, got %g", p.ScenarioMultiplier)}
	}
	return nil
}
