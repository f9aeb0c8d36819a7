// ABOUTME: CAPEX/OPEX/TCO translation of tier selections against peak provisioning
// ABOUTME: Pure arithmetic over the injected tier table, no iteration

package services

import "github.com/fronthaul-tools/capacity-planner/models"

// tcoYears is the ownership horizon for the TCO figure.
const tcoYears = 5

// CostTranslator prices the delta between peak-based and optimized
// provisioning. A missing tier in the table is a configuration defect and
// fails only this step; the capacity result it would have priced stands.
type CostTranslator struct {
	table *models.TierTable
}

// NewCostTranslator creates a translator over the given tier table.
func NewCostTranslator(table *models.TierTable) *CostTranslator {
	return &CostTranslator{table: table}
}

// Translate computes the savings of provisioning at the optimized tier
// instead of the peak tier:
//
//	hardware delta = cost(peak tier) - cost(optimized tier)
//	license delta  = (peak - optimized capacity) * license cost per Gbps
//	power delta    = (peak - optimized tier speed) * power coefficient
//	annual OPEX    = power delta kW * 8760h * tariff * cooling overhead
//	five-year TCO  = CAPEX + 5 * annual OPEX
func (t *CostTranslator) Translate(peakTier, optTier models.SpeedTier, peakGbps, optimizedGbps, licenseCostPerGbps float64) (models.CostBreakdown, error) {
	peakCost, err := t.table.CostFor(peakTier.SpeedGbps)
	if err != nil {
		return models.CostBreakdown{}, err
	}
	optCost, err := t.table.CostFor(optTier.SpeedGbps)
	if err != nil {
		return models.CostBreakdown{}, err
	}

	hardware := peakCost - optCost
	license := (peakGbps - optimizedGbps) * licenseCostPerGbps
	capex := hardware + license

	powerDeltaKW := (peakTier.SpeedGbps - optTier.SpeedGbps) * peakTier.PowerPerGbpsW / 1000
	annualOpex := powerDeltaKW * models.AnnualHours * t.table.PowerTariffPerKWh * t.table.CoolingOverhead

	return models.CostBreakdown{
		HardwareDeltaINR: hardware,
		LicenseDeltaINR:  license,
		TotalCapexINR:    capex,
		PowerDeltaKW:     powerDeltaKW,
		AnnualOpexINR:    annualOpex,
		FiveYearTCOINR:   capex + tcoYears*annualOpex,
	}, nil
}
