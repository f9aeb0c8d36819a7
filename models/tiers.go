// ABOUTME: Static speed tier table with CAPEX costs and power coefficients
// ABOUTME: Immutable, YAML-loadable, injected into the selector and cost translator

package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SpeedTier is one discrete equipment capacity a link can be provisioned at.
type SpeedTier struct {
	SpeedGbps     float64 `json:"speed_gbps" yaml:"speed_gbps"`
	CostINR       float64 `json:"cost_inr" yaml:"cost_inr"`
	PowerPerGbpsW float64 `json:"power_per_gbps_w" yaml:"power_per_gbps_w"`
}

// TierTable is the ordered set of available speed tiers plus the power
// tariff constants used by the OPEX calculation. Read-only after load; safe
// to share across goroutines.
type TierTable struct {
	Tiers             []SpeedTier `json:"tiers" yaml:"tiers"`
	PowerTariffPerKWh float64     `json:"power_tariff_per_kwh" yaml:"power_tariff_per_kwh"`
	CoolingOverhead   float64     `json:"cooling_overhead" yaml:"cooling_overhead"`
}

// AnnualHours is the hour count used to annualize power cost.
const AnnualHours = 8760

// DefaultTierTable returns the built-in tier set: typical operator pricing in
// INR, 2.5 W per Gbps optical transceiver draw, Rs 8.5/kWh with 20% cooling
// overhead.
func DefaultTierTable() *TierTable {
	return &TierTable{
		Tiers: []SpeedTier{
			{SpeedGbps: 1, CostINR: 45000, PowerPerGbpsW: 2.5},
			{SpeedGbps: 2.5, CostINR: 85000, PowerPerGbpsW: 2.5},
			{SpeedGbps: 5, CostINR: 120000, PowerPerGbpsW: 2.5},
			{SpeedGbps: 10, CostINR: 170000, PowerPerGbpsW: 2.5},
			{SpeedGbps: 25, CostINR: 680000, PowerPerGbpsW: 2.5},
			{SpeedGbps: 40, CostINR: 1275000, PowerPerGbpsW: 2.5},
			{SpeedGbps: 50, CostINR: 1530000, PowerPerGbpsW: 2.5},
			{SpeedGbps: 100, CostINR: 2975000, PowerPerGbpsW: 2.5},
			{SpeedGbps: 400, CostINR: 8900000, PowerPerGbpsW: 2.5},
		},
		PowerTariffPerKWh: 8.5,
		CoolingOverhead:   1.2,
	}
}

// LoadTierTable reads a tier table from a YAML file and validates it.
func LoadTierTable(path string) (*TierTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tier table: %w", err)
	}
	var t TierTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse tier table: %w", err)
	}
	if t.PowerTariffPerKWh == 0 {
		t.PowerTariffPerKWh = 8.5
	}
	if t.CoolingOverhead == 0 {
		t.CoolingOverhead = 1.2
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks that the table is non-empty, strictly ascending, and priced.
func (t *TierTable) Validate() error {
	if len(t.Tiers) == 0 {
		return &ConfigError{Param: "tiers", Reason: "tier table is empty"}
	}
	prev := 0.0
	for _, tier := range t.Tiers {
		if tier.SpeedGbps <= prev {
			return &ConfigError{
				Param:  "tiers",
				Reason: fmt.Sprintf("tier speeds must be strictly ascending, got %g after %g", tier.SpeedGbps, prev),
			}
		}
		if tier.CostINR <= 0 {
			return &ConfigError{
				Param:  "tiers",
				Reason: fmt.Sprintf("%gG tier has non-positive cost", tier.SpeedGbps),
			}
		}
		if tier.PowerPerGbpsW < 0 {
			return &ConfigError{
				Param:  "tiers",
				Reason: fmt.Sprintf("%gG tier has negative power coefficient", tier.SpeedGbps),
			}
		}
		prev = tier.SpeedGbps
	}
	return nil
}

// Largest returns the highest tier, the saturating fallback of the selector.
func (t *TierTable) Largest() SpeedTier {
	return t.Tiers[len(t.Tiers)-1]
}

// Find returns the tier with the given speed.
func (t *TierTable) Find(speedGbps float64) (SpeedTier, bool) {
	for _, tier := range t.Tiers {
		if tier.SpeedGbps == speedGbps {
			return tier, true
		}
	}
	return SpeedTier{}, false
}

// CostFor returns the CAPEX cost of the tier with the given speed, or a
// LookupError if the table has no such entry.
func (t *TierTable) CostFor(speedGbps float64) (float64, error) {
	tier, ok := t.Find(speedGbps)
	if !ok {
		return 0, &LookupError{SpeedGbps: speedGbps}
	}
	return tier.CostINR, nil
}
