// ABOUTME: Randomized cell-to-link re-partition search minimizing tier CAPEX
// ABOUTME: Reproducible permutations via a named rngstream generator

package services

import (
	"fmt"
	"sort"

	"github.com/iti/rngstream"

	"github.com/fronthaul-tools/capacity-planner/models"
)

// TopologyOptimizer searches random balanced partitions of the cell set for
// one with lower total equipment CAPEX. Grouping cells whose peaks do not
// overlap improves statistical multiplexing, so a re-partition can land
// every link in a cheaper tier.
type TopologyOptimizer struct {
	builder  *SeriesBuilder
	selector *SpeedSelector
	table    *models.TierTable
	rng      *rngstream.RngStream
}

// NewTopologyOptimizer creates an optimizer with its own RNG stream so runs
// are reproducible across processes.
func NewTopologyOptimizer(table *models.TierTable) *TopologyOptimizer {
	return &TopologyOptimizer{
		builder:  NewSeriesBuilder(),
		selector: NewSpeedSelector(table),
		table:    table,
		rng:      rngstream.New("topology"),
	}
}

// Optimize shuffles the cells into numLinks balanced chunks for the given
// number of iterations and keeps the cheapest mapping found. The cell series
// must already be slot-aligned (built against a common origin).
func (o *TopologyOptimizer) Optimize(cells map[int]*models.TrafficSeries, numLinks, iterations int) (*models.TopologyResult, error) {
	if numLinks < 1 {
		return nil, &models.ConfigError{Param: "num_links", Reason: "must be at least 1"}
	}
	if iterations < 1 {
		return nil, &models.ConfigError{Param: "iterations", Reason: "must be at least 1"}
	}
	if len(cells) == 0 {
		return nil, &models.DataError{Subject: "topology", Reason: "no cell series"}
	}

	ids := make([]int, 0, len(cells))
	for id := range cells {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var best *models.TopologyResult
	for it := 0; it < iterations; it++ {
		o.shuffle(ids)
		mapping := chunkAssign(ids, numLinks)

		cost, links, err := o.EvaluateMapping(cells, mapping)
		if err != nil {
			return nil, err
		}
		if best == nil || cost < best.TotalCostINR {
			best = &models.TopologyResult{
				Mapping:      cloneMapping(mapping),
				TotalCostINR: cost,
				Links:        links,
			}
		}
	}
	best.Iterations = iterations
	return best, nil
}

// EvaluateMapping prices one candidate mapping: aggregate each link, take
// its peak rate, pick the tier by the 80% rule, and sum tier costs.
func (o *TopologyOptimizer) EvaluateMapping(cells map[int]*models.TrafficSeries, mapping models.LinkMapping) (float64, map[string]models.TopologyLink, error) {
	grouped := make(map[string][]*models.TrafficSeries)
	for cell, link := range mapping {
		series, ok := cells[cell]
		if !ok {
			return 0, nil, &models.DataError{Subject: fmt.Sprintf("cell %d", cell), Reason: "mapped cell has no series"}
		}
		grouped[link] = append(grouped[link], series)
	}

	total := 0.0
	links := make(map[string]models.TopologyLink, len(grouped))
	for link, members := range grouped {
		agg, err := o.builder.AggregateLink(link, members)
		if err != nil {
			return 0, nil, err
		}
		_, peak := MeanPeakGbps(agg)
		tier := o.selector.SelectByPeak(peak)
		total += tier.CostINR
		links[link] = models.TopologyLink{
			PeakGbps:  peak,
			SpeedGbps: tier.SpeedGbps,
			CostINR:   tier.CostINR,
		}
	}
	return total, links, nil
}

// shuffle is a Fisher-Yates permutation driven by the rngstream generator.
func (o *TopologyOptimizer) shuffle(ids []int) {
	for i := len(ids) - 1; i > 0; i-- {
		j := o.rng.RandInt(0, i)
		ids[i], ids[j] = ids[j], ids[i]
	}
}

// chunkAssign splits the id sequence into numLinks balanced contiguous
// chunks (ceiling division, trailing chunks absorb the remainder).
func chunkAssign(ids []int, numLinks int) models.LinkMapping {
	chunk := (len(ids) + numLinks - 1) / numLinks
	mapping := make(models.LinkMapping, len(ids))
	for i, cell := range ids {
		link := i/chunk + 1
		if link > numLinks {
			link = numLinks
		}
		mapping[cell] = fmt.Sprintf("Link_%d", link)
	}
	return mapping
}

func cloneMapping(m models.LinkMapping) models.LinkMapping {
	out := make(models.LinkMapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
