// ABOUTME: Configuration loader for the capacity planner service
// ABOUTME: Loads settings from a .env file and environment variables with defaults

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/fronthaul-tools/capacity-planner/models"
)

type Config struct {
	// Server
	Port     string
	CacheTTL int // seconds, analysis response cache

	// Rate Limiting
	RateLimitEnabled bool // Enable rate limiting (default: true)
	RateLimitAnalyze int  // Requests per minute for analysis endpoints (default: 30)
	RateLimitDefault int  // Requests per minute for all other endpoints (default: 100)

	// Speed tier catalog; empty path uses the built-in table
	TierTablePath string

	// Anthropic API (optional, enables AI recommendations)
	AnthropicAPIKey string

	// Default engineering parameters, overridable per request
	Defaults models.AnalysisParams
}

// InsightsConfigured returns true if the recommendation service can be used
func (c *Config) InsightsConfigured() bool {
	return c.AnthropicAPIKey != ""
}

// TierTable loads the configured speed tier catalog, falling back to the
// built-in table when no path is set.
func (c *Config) TierTable() (*models.TierTable, error) {
	if c.TierTablePath == "" {
		return models.DefaultTierTable(), nil
	}
	return models.LoadTierTable(c.TierTablePath)
}

func Load() (*Config, error) {
	// A missing .env file is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		CacheTTL: getEnvInt("CACHE_TTL", 300),

		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitAnalyze: getEnvInt("RATE_LIMIT_ANALYZE", 30),
		RateLimitDefault: getEnvInt("RATE_LIMIT_DEFAULT", 100),

		TierTablePath:   os.Getenv("TIER_TABLE_PATH"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),

		Defaults: models.AnalysisParams{
			Percentile:         getEnvFloat("DEFAULT_PERCENTILE", 99.0),
			BufferSymbols:      getEnvInt("DEFAULT_BUFFER_SYMBOLS", 4),
			MaxLossPct:         getEnvFloat("DEFAULT_MAX_LOSS_PCT", 1.0),
			TargetLinkCount:    getEnvInt("DEFAULT_LINK_COUNT", 3),
			LicenseCostPerGbps: getEnvFloat("LICENSE_COST_PER_GBPS", 25000),
			ScenarioMultiplier: getEnvFloat("DEFAULT_SCENARIO_MULTIPLIER", 1.0),
		},
	}

	// Validate rate limit values
	for _, rl := range []struct {
		name  string
		value int
	}{
		{"RATE_LIMIT_ANALYZE", cfg.RateLimitAnalyze},
		{"RATE_LIMIT_DEFAULT", cfg.RateLimitDefault},
	} {
		if rl.value < 1 || rl.value > 10000 {
			return nil, fmt.Errorf("%s must be between 1 and 10000, got %d", rl.name, rl.value)
		}
	}

	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("CACHE_TTL must not be negative, got %d", cfg.CacheTTL)
	}

	// Engineering parameter defaults go through the same validation as
	// per-request overrides so a bad deployment fails at startup.
	if err := cfg.Defaults.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
