// ABOUTME: Tests for environment-driven configuration loading
// ABOUTME: Defaults, overrides, and validation failures

package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.CacheTTL != 300 {
		t.Errorf("Expected default cache TTL 300, got %d", cfg.CacheTTL)
	}
	if !cfg.RateLimitEnabled {
		t.Error("Expected rate limiting enabled by default")
	}
	if cfg.Defaults.Percentile != 99.0 || cfg.Defaults.BufferSymbols != 4 {
		t.Errorf("Unexpected default params: %+v", cfg.Defaults)
	}
	if cfg.InsightsConfigured() {
		t.Error("Insights must be unconfigured without an API key")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_TTL", "60")
	t.Setenv("DEFAULT_PERCENTILE", "95.5")
	t.Setenv("DEFAULT_BUFFER_SYMBOLS", "2")
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if cfg.CacheTTL != 60 {
		t.Errorf("Expected cache TTL 60, got %d", cfg.CacheTTL)
	}
	if cfg.Defaults.Percentile != 95.5 || cfg.Defaults.BufferSymbols != 2 {
		t.Errorf("Env params not applied: %+v", cfg.Defaults)
	}
	if !cfg.InsightsConfigured() {
		t.Error("Expected insights configured")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("rate limit out of range", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_ANALYZE", "0")
		if _, err := Load(); err == nil {
			t.Error("Expected error for zero rate limit")
		}
	})

	t.Run("negative cache TTL", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "-1")
		if _, err := Load(); err == nil {
			t.Error("Expected error for negative TTL")
		}
	})

	t.Run("bad default percentile", func(t *testing.T) {
		t.Setenv("DEFAULT_PERCENTILE", "50")
		if _, err := Load(); err == nil {
			t.Error("Expected error for out-of-range percentile")
		}
	})
}

func TestTierTableFallback(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	table, err := cfg.TierTable()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(table.Tiers) == 0 {
		t.Error("Expected built-in tier table")
	}
}
