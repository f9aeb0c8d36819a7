// ABOUTME: Tests for analysis parameter defaults and range validation
// ABOUTME: Out-of-range values must be rejected, never clamped

package models

import (
	"errors"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	var p AnalysisParams
	p.ApplyDefaults()

	d := DefaultAnalysisParams()
	if p.Percentile != d.Percentile || p.MaxLossPct != d.MaxLossPct ||
		p.TargetLinkCount != d.TargetLinkCount ||
		p.LicenseCostPerGbps != d.LicenseCostPerGbps ||
		p.ScenarioMultiplier != d.ScenarioMultiplier {
		t.Errorf("Defaults not applied: %+v", p)
	}

	// Zero buffer is a meaningful setting and must survive.
	if p.BufferSymbols != 0 {
		t.Errorf("BufferSymbols must stay 0, got %d", p.BufferSymbols)
	}

	set := AnalysisParams{Percentile: 97, BufferSymbols: 2, MaxLossPct: 0.5,
		TargetLinkCount: 5, LicenseCostPerGbps: 1000, ScenarioMultiplier: 1.3}
	set.ApplyDefaults()
	if set.Percentile != 97 || set.TargetLinkCount != 5 || set.ScenarioMultiplier != 1.3 {
		t.Errorf("Explicit values overwritten: %+v", set)
	}
}

func TestValidateRanges(t *testing.T) {
	valid := DefaultAnalysisParams()
	if err := valid.Validate(); err != nil {
		t.Fatalf("Defaults must validate, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*AnalysisParams)
	}{
		{"percentile too low", func(p *AnalysisParams) { p.Percentile = 94.9 }},
		{"percentile too high", func(p *AnalysisParams) { p.Percentile = 99.91 }},
		{"negative buffer", func(p *AnalysisParams) { p.BufferSymbols = -1 }},
		{"buffer too deep", func(p *AnalysisParams) { p.BufferSymbols = 11 }},
		{"loss budget too small", func(p *AnalysisParams) { p.MaxLossPct = 0.05 }},
		{"loss budget too large", func(p *AnalysisParams) { p.MaxLossPct = 5.1 }},
		{"zero links", func(p *AnalysisParams) { p.TargetLinkCount = 0 }},
		{"too many links", func(p *AnalysisParams) { p.TargetLinkCount = 13 }},
		{"free license", func(p *AnalysisParams) { p.LicenseCostPerGbps = 0 }},
		{"shrinking scenario", func(p *AnalysisParams) { p.ScenarioMultiplier = 0.9 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultAnalysisParams()
			tt.mutate(&p)
			err := p.Validate()
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Expected ConfigError, got %v", err)
			}
		})
	}
}

func TestValidateBoundaries(t *testing.T) {
	// Range edges are inclusive.
	p := DefaultAnalysisParams()
	p.Percentile = 95.0
	p.BufferSymbols = 0
	p.MaxLossPct = 0.1
	p.TargetLinkCount = 1
	if err := p.Validate(); err != nil {
		t.Errorf("Lower bounds must validate, got %v", err)
	}

	p = DefaultAnalysisParams()
	p.Percentile = 99.9
	p.BufferSymbols = 10
	p.MaxLossPct = 5.0
	p.TargetLinkCount = 12
	if err := p.Validate(); err != nil {
		t.Errorf("Upper bounds must validate, got %v", err)
	}
}
