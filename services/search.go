// ABOUTME: Binary search for the minimum link capacity meeting the loss budget
// ABOUTME: Drives the queue simulator between mean and peak traffic rates

package services

import (
	"github.com/fronthaul-tools/capacity-planner/models"
)

// searchIterations fixes the binary search depth. 15 halvings shrink the
// [mean, peak] interval well below any tier granularity on realistic inputs;
// it is a precision knob, not a convergence requirement.
const searchIterations = 15

// CapacitySearch finds the minimum capacity whose simulated loss count stays
// within the loss budget. It relies on loss being monotone non-increasing in
// capacity; pathological bursts interacting with buffer clamping can break
// that, in which case the result is feasible but possibly not minimal.
type CapacitySearch struct {
	sim *QueueSimulator
}

// NewCapacitySearch creates a search backed by a fresh simulator.
func NewCapacitySearch() *CapacitySearch {
	return &CapacitySearch{sim: NewQueueSimulator()}
}

// Run searches [mean, peak] for the smallest feasible capacity. The loss
// budget is total_slots * maxLossPct / 100, truncated. Capacity at the peak
// is always feasible, so the peak is the fallback when no midpoint ever
// satisfied the budget.
func (s *CapacitySearch) Run(series *models.TrafficSeries, bufferSymbols int, maxLossPct float64) (models.BufferAwareResult, error) {
	total := series.TotalSlots()
	if total == 0 {
		return models.BufferAwareResult{}, &models.DataError{Subject: series.ID, Reason: "series has zero slots"}
	}

	mean, peak := MeanPeakGbps(series)
	maxAllowedLoss := int(float64(total) * maxLossPct / 100)

	low, high := mean, peak
	best := high
	for i := 0; i < searchIterations; i++ {
		mid := (low + high) / 2
		loss := s.sim.Run(series, mid, bufferSymbols)
		if loss <= maxAllowedLoss {
			best = mid
			high = mid
		} else {
			low = mid
		}
	}

	return models.BufferAwareResult{
		OptimizedGbps: best,
		PeakGbps:      peak,
		MeanGbps:      mean,
		LossCount:     s.sim.Run(series, best, bufferSymbols),
		TotalSlots:    total,
	}, nil
}
