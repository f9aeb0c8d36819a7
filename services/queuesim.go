// ABOUTME: Deterministic leaky-bucket queue simulator with a finite buffer
// ABOUTME: Replays one traffic series at a candidate capacity and counts loss events

package services

import "github.com/fronthaul-tools/capacity-planner/models"

// QueueSimulator replays a slot-level traffic series through a finite-buffer
// leaky-bucket queue. It is a pure function over its inputs: no state is kept
// between calls and the input series is never modified.
type QueueSimulator struct{}

// NewQueueSimulator creates a new simulator.
func NewQueueSimulator() *QueueSimulator {
	return &QueueSimulator{}
}

// Run counts loss events for the series at the given capacity and buffer
// depth. The buffer ceiling is expressed in time: bufferSymbols symbols of
// 35.7us each, filled at line rate.
//
// The server drains the queue completely in any slot where the backlog fits
// within one slot's capacity. This is deliberately not a partial drain: it
// models a self-clocking server and must be preserved as-is for numeric
// compatibility with the established capacity figures.
func (q *QueueSimulator) Run(series *models.TrafficSeries, capacityGbps float64, bufferSymbols int) int {
	capacityBitsPerSlot := capacityGbps * models.GbpsScale * models.SlotDurationSec
	bufferTimeSec := float64(bufferSymbols) * models.SymbolDurationSec
	maxBufferBits := bufferTimeSec * capacityGbps * models.GbpsScale

	occupancy := 0.0
	loss := 0
	for _, bits := range series.Bits {
		occupancy += bits

		if occupancy > capacityBitsPerSlot {
			occupancy -= capacityBitsPerSlot
		} else {
			occupancy = 0
		}

		// Overflowing traffic is dropped, not retained: clamping keeps the
		// overflow from propagating past the buffer ceiling.
		if occupancy > maxBufferBits {
			loss++
			occupancy = maxBufferBits
		}
	}
	return loss
}
