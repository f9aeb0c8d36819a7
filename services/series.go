// ABOUTME: Traffic series builder: slot aggregation, link aggregation, partitioning
// ABOUTME: Converts raw per-cell samples into contiguous slot-indexed series

package services

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/fronthaul-tools/capacity-planner/models"
)

// SeriesBuilder converts raw throughput samples into slot-level traffic
// series and aggregates them to link level.
type SeriesBuilder struct{}

// NewSeriesBuilder creates a new series builder.
func NewSeriesBuilder() *SeriesBuilder {
	return &SeriesBuilder{}
}

// BuildCellSeries assigns each sample to slot floor((t-origin)/slotDuration),
// summing bits that land in the same slot (co-located samples are sub-slot
// fragments) and zero-filling gaps. The origin is the minimum timestamp
// across the whole dataset so that all cells share a slot axis.
func (b *SeriesBuilder) BuildCellSeries(cellID int, samples []models.TrafficSample, origin float64) (*models.TrafficSeries, error) {
	subject := fmt.Sprintf("cell %d", cellID)
	if len(samples) == 0 {
		return nil, &models.DataError{Subject: subject, Reason: "no traffic samples"}
	}

	maxSlot := 0
	slots := make(map[int]float64, len(samples))
	for _, s := range samples {
		if s.Bits < 0 {
			return nil, &models.DataError{Subject: subject, Reason: fmt.Sprintf("negative bit count %g at t=%g", s.Bits, s.Time)}
		}
		idx := int(math.Floor((s.Time - origin) / models.SlotDurationSec))
		if idx < 0 {
			return nil, &models.DataError{Subject: subject, Reason: fmt.Sprintf("sample at t=%g precedes series origin", s.Time)}
		}
		slots[idx] += s.Bits
		if idx > maxSlot {
			maxSlot = idx
		}
	}

	bits := make([]float64, maxSlot+1)
	for idx, v := range slots {
		bits[idx] = v
	}
	return &models.TrafficSeries{ID: subject, Bits: bits}, nil
}

// AggregateLink sums the per-slot series of all cells on a link, slot by
// slot, after zero-padding every constituent to the longest length. This is
// the statistical multiplexing step: simultaneous bursts add up, offset
// bursts interleave.
func (b *SeriesBuilder) AggregateLink(linkID string, cells []*models.TrafficSeries) (*models.TrafficSeries, error) {
	if len(cells) == 0 {
		return nil, &models.DataError{Subject: linkID, Reason: "no constituent cell series"}
	}

	length := 0
	for _, c := range cells {
		if c.TotalSlots() > length {
			length = c.TotalSlots()
		}
	}

	bits := make([]float64, length)
	for _, c := range cells {
		for i, v := range c.Bits {
			bits[i] += v
		}
	}
	return &models.TrafficSeries{ID: linkID, Bits: bits}, nil
}

// Scale returns a copy of the series with all traffic multiplied by factor.
// Used for the worst-case synchronized-peak scenario.
func (b *SeriesBuilder) Scale(s *models.TrafficSeries, factor float64) *models.TrafficSeries {
	if factor == 1.0 {
		return s
	}
	bits := make([]float64, len(s.Bits))
	for i, v := range s.Bits {
		bits[i] = v * factor
	}
	return &models.TrafficSeries{ID: s.ID, Bits: bits}
}

// PartitionCells splits the sorted cell IDs into n contiguous chunks and
// names them Link_1..Link_n. Every cell lands in exactly one link; links are
// non-empty whenever n <= len(cellIDs).
func PartitionCells(cellIDs []int, n int) (models.LinkMapping, error) {
	if n < 1 {
		return nil, &models.ConfigError{Param: "target_link_count", Reason: "must be at least 1"}
	}
	if len(cellIDs) == 0 {
		return nil, &models.DataError{Subject: "partition", Reason: "no cells to assign"}
	}

	sorted := make([]int, len(cellIDs))
	copy(sorted, cellIDs)
	sort.Ints(sorted)

	chunk := (len(sorted) + n - 1) / n
	mapping := make(models.LinkMapping, len(sorted))
	for i, cell := range sorted {
		link := i/chunk + 1
		if link > n {
			link = n
		}
		mapping[cell] = fmt.Sprintf("Link_%d", link)
	}
	return mapping, nil
}

// gbpsValues converts a series to per-slot Gbps rates.
func gbpsValues(s *models.TrafficSeries) []float64 {
	out := make([]float64, len(s.Bits))
	for i := range s.Bits {
		out[i] = s.GbpsAt(i)
	}
	return out
}

// MeanPeakGbps returns the average and maximum slot rates of a series.
func MeanPeakGbps(s *models.TrafficSeries) (mean, peak float64) {
	if s.TotalSlots() == 0 {
		return 0, 0
	}
	gbps := gbpsValues(s)
	mean = stat.Mean(gbps, nil)
	for _, v := range gbps {
		if v > peak {
			peak = v
		}
	}
	return mean, peak
}

// PercentileGbps returns the pct-th percentile (e.g. 99.0) of the slot rates.
func PercentileGbps(s *models.TrafficSeries, pct float64) float64 {
	if s.TotalSlots() == 0 {
		return 0
	}
	gbps := gbpsValues(s)
	sort.Float64s(gbps)
	return stat.Quantile(pct/100, stat.Empirical, gbps, nil)
}

// SLAScore is the percentage of slots whose traffic fits within the given
// capacity: (1 - exceeded/total) * 100.
func SLAScore(s *models.TrafficSeries, capacityGbps float64) float64 {
	total := s.TotalSlots()
	if total == 0 {
		return 0
	}
	exceeded := 0
	for i := range s.Bits {
		if s.GbpsAt(i) > capacityGbps {
			exceeded++
		}
	}
	return (1 - float64(exceeded)/float64(total)) * 100
}
