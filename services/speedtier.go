// ABOUTME: Discrete link speed selection under utilization headroom constraints
// ABOUTME: Maps continuous capacity figures onto the ordered equipment tier set

package services

import "github.com/fronthaul-tools/capacity-planner/models"

// utilizationHeadroom is the industry 80% utilization target: the optimized
// capacity must fit within this fraction of the selected tier.
const utilizationHeadroom = 0.8

// SpeedSelector picks equipment tiers from an injected immutable table.
type SpeedSelector struct {
	table *models.TierTable
}

// NewSpeedSelector creates a selector over the given tier table.
func NewSpeedSelector(table *models.TierTable) *SpeedSelector {
	return &SpeedSelector{table: table}
}

// Select scans tiers ascending and returns the first whose speed gives the
// optimized capacity 80% headroom and still covers the observed peak at line
// rate. When no tier satisfies both, the largest tier is returned: a link is
// never left unprovisioned, it degrades to the biggest available pipe.
func (s *SpeedSelector) Select(optimizedGbps, peakGbps float64) models.SpeedTier {
	for _, tier := range s.table.Tiers {
		if optimizedGbps <= tier.SpeedGbps*utilizationHeadroom && peakGbps <= tier.SpeedGbps {
			return tier
		}
	}
	return s.table.Largest()
}

// SelectByPeak applies only the 80% rule to a single capacity figure. Used
// for the peak-provisioning comparison baseline and the topology search.
func (s *SpeedSelector) SelectByPeak(gbps float64) models.SpeedTier {
	for _, tier := range s.table.Tiers {
		if gbps <= tier.SpeedGbps*utilizationHeadroom {
			return tier
		}
	}
	return s.table.Largest()
}
