// ABOUTME: Orchestrates the full per-link analysis: build, search, score, price
// ABOUTME: Parallel per-link searches with partial-result semantics

package services

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fronthaul-tools/capacity-planner/models"
	"github.com/fronthaul-tools/capacity-planner/observability"
)

// AnalysisInput is the fully materialized input of one run: raw samples per
// cell, optional packet counters per cell, and the engineering parameters.
type AnalysisInput struct {
	Cells       map[int][]models.TrafficSample
	PacketStats map[int][]models.PacketStat
	Params      models.AnalysisParams
}

// Analyzer wires the engine components together and runs one capacity search
// per link, in parallel. Each link's search is a pure function over its own
// series, so links share nothing but the read-only tier table.
type Analyzer struct {
	builder  *SeriesBuilder
	search   *CapacitySearch
	selector *SpeedSelector
	scorer   *CongestionScorer
	cost     *CostTranslator
	advisor  *Advisor
	metrics  *observability.Collector
}

// NewAnalyzer creates an analyzer over the given tier table.
func NewAnalyzer(table *models.TierTable) *Analyzer {
	return &Analyzer{
		builder:  NewSeriesBuilder(),
		search:   NewCapacitySearch(),
		selector: NewSpeedSelector(table),
		scorer:   NewCongestionScorer(),
		cost:     NewCostTranslator(table),
	}
}

// WithAdvisor attaches an optional recommendation advisor.
func (a *Analyzer) WithAdvisor(advisor *Advisor) *Analyzer {
	a.advisor = advisor
	return a
}

// WithMetrics attaches an optional metrics collector.
func (a *Analyzer) WithMetrics(m *observability.Collector) *Analyzer {
	a.metrics = m
	return a
}

// BuildCellSeries slots every cell against the dataset-wide origin so all
// series share a slot axis. Cells with bad data are reported in the failed
// map and excluded; good cells proceed.
func (a *Analyzer) BuildCellSeries(cells map[int][]models.TrafficSample) (map[int]*models.TrafficSeries, map[int]error) {
	origin := math.Inf(1)
	for _, samples := range cells {
		for _, s := range samples {
			if s.Time < origin {
				origin = s.Time
			}
		}
	}

	series := make(map[int]*models.TrafficSeries, len(cells))
	failed := make(map[int]error)
	for id, samples := range cells {
		s, err := a.builder.BuildCellSeries(id, samples, origin)
		if err != nil {
			failed[id] = err
			continue
		}
		series[id] = s
	}
	return series, failed
}

// Run executes the full analysis. Parameters are validated before any
// simulation; a single link's failure lands in Failed without aborting the
// other links.
func (a *Analyzer) Run(ctx context.Context, in AnalysisInput) (*models.AnalysisResponse, error) {
	start := time.Now()

	params := in.Params
	params.ApplyDefaults()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(in.Cells) == 0 {
		return nil, &models.DataError{Subject: "input", Reason: "no cells supplied"}
	}

	resp := &models.AnalysisResponse{
		Links:  make(map[string]models.LinkReport),
		Failed: make(map[string]string),
	}

	cellSeries, badCells := a.BuildCellSeries(in.Cells)

	ids := make([]int, 0, len(in.Cells))
	for id := range in.Cells {
		ids = append(ids, id)
	}
	mapping, err := PartitionCells(ids, params.TargetLinkCount)
	if err != nil {
		return nil, err
	}

	// Group cells per link; a link inherits the failure of any of its cells
	// since its aggregate would silently under-count traffic otherwise.
	linkCells := make(map[string][]int)
	for _, id := range ids {
		link := mapping[id]
		linkCells[link] = append(linkCells[link], id)
	}

	type task struct {
		link  string
		cells []int
	}
	var tasks []task
	for link, members := range linkCells {
		sort.Ints(members)
		skip := false
		for _, id := range members {
			if err, bad := badCells[id]; bad {
				resp.Failed[link] = err.Error()
				skip = true
				break
			}
		}
		if !skip {
			tasks = append(tasks, task{link: link, cells: members})
		}
	}

	type outcome struct {
		link   string
		report models.LinkReport
		err    error
	}
	results := make([]outcome, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	for i, tk := range tasks {
		g.Go(func() error {
			report, err := a.analyzeLink(gctx, tk.link, tk.cells, cellSeries, in.PacketStats, params)
			results[i] = outcome{link: tk.link, report: report, err: err}
			return nil
		})
	}
	// Worker funcs never return errors; failures are carried per link.
	_ = g.Wait()

	for _, r := range results {
		if r.err != nil {
			var lookupErr *models.LookupError
			if errors.As(r.err, &lookupErr) {
				// The capacity result stands; only the cost step failed.
				resp.Links[r.link] = r.report
			}
			resp.Failed[r.link] = r.err.Error()
			continue
		}
		resp.Links[r.link] = r.report
	}

	a.metrics.ObserveAnalysis(len(resp.Failed))

	resp.Meta = models.AnalysisMeta{
		Timestamp:       time.Now().UTC(),
		ExecutionMS:     time.Since(start).Milliseconds(),
		TotalCells:      len(in.Cells),
		TargetLinkCount: params.TargetLinkCount,
	}
	return resp, nil
}

// analyzeLink runs the complete pipeline for one link.
func (a *Analyzer) analyzeLink(ctx context.Context, link string, cells []int, cellSeries map[int]*models.TrafficSeries, packetStats map[int][]models.PacketStat, params models.AnalysisParams) (models.LinkReport, error) {
	started := time.Now()

	members := make([]*models.TrafficSeries, 0, len(cells))
	for _, id := range cells {
		members = append(members, cellSeries[id])
	}
	series, err := a.builder.AggregateLink(link, members)
	if err != nil {
		return models.LinkReport{}, err
	}
	series = a.builder.Scale(series, params.ScenarioMultiplier)

	result, err := a.search.Run(series, params.BufferSymbols, params.MaxLossPct)
	if err != nil {
		return models.LinkReport{}, err
	}
	a.metrics.ObserveLink(time.Since(started), result.LossCount)

	pGbps := PercentileGbps(series, params.Percentile)
	optTier := a.selector.Select(result.OptimizedGbps, result.PeakGbps)
	peakTier := a.selector.SelectByPeak(result.PeakGbps)

	overprovision := 0.0
	if result.PeakGbps > 0 {
		overprovision = (result.PeakGbps - pGbps) / result.PeakGbps * 100
	}

	report := models.LinkReport{
		Link:             link,
		Cells:            cells,
		Result:           result,
		Percentile:       params.Percentile,
		PercentileGbps:   pGbps,
		RecommendedGbps:  optTier.SpeedGbps,
		PeakTierGbps:     peakTier.SpeedGbps,
		SLAScorePct:      SLAScore(series, result.OptimizedGbps),
		OverprovisionPct: overprovision,
		Congestion:       a.scoreLink(cells, packetStats, result.LossCount),
	}

	cost, err := a.cost.Translate(peakTier, optTier, result.PeakGbps, result.OptimizedGbps, params.LicenseCostPerGbps)
	if err != nil {
		return report, err
	}
	report.Cost = cost

	if params.WithInsights && a.advisor != nil {
		report.Recommendation = a.advisor.Recommend(ctx, report)
	}
	return report, nil
}

// scoreLink aggregates the packet counters of the link's cells, falling back
// to the binary byte-loss signal when no cell has counters.
func (a *Analyzer) scoreLink(cells []int, packetStats map[int][]models.PacketStat, lossCount int) models.CongestionScore {
	var stats []models.PacketStat
	for _, id := range cells {
		stats = append(stats, packetStats[id]...)
	}
	if len(stats) == 0 {
		return a.scorer.ScoreFromLoss(lossCount)
	}
	return a.scorer.ScoreFromStats(stats)
}
