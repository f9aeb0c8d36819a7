// ABOUTME: Prometheus metrics for the capacity engine and HTTP surface
// ABOUTME: Collector bundles counters/histograms and exposes the /metrics handler

package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the engine's Prometheus metrics. A nil *Collector is
// safe to call: every observation method no-ops, so the engine can run
// without metrics wired (e.g. the batch CLI).
type Collector struct {
	gatherer prometheus.Gatherer

	AnalysesTotal  prometheus.Counter
	AnalysisErrors prometheus.Counter
	LinksAnalyzed  prometheus.Counter
	LossEvents     prometheus.Counter
	SearchDuration prometheus.Histogram
}

// NewCollector registers the engine metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.Gatherer(prometheus.DefaultGatherer)
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{
		gatherer: gatherer,
		AnalysesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "capacity_analyses_total",
			Help: "Total number of completed capacity analysis runs.",
		}),
		AnalysisErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "capacity_analysis_errors_total",
			Help: "Total number of per-link analysis failures.",
		}),
		LinksAnalyzed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "capacity_links_analyzed_total",
			Help: "Total number of links whose capacity search completed.",
		}),
		LossEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "capacity_slot_loss_events_total",
			Help: "Slot loss events observed at the optimized capacities.",
		}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "capacity_link_search_duration_seconds",
			Help:    "Wall time of one per-link capacity search.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		}),
	}

	reg.MustRegister(c.AnalysesTotal, c.AnalysisErrors, c.LinksAnalyzed, c.LossEvents, c.SearchDuration)
	return c
}

// Handler serves the metrics endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// ObserveAnalysis records one completed run with its per-link failure count.
func (c *Collector) ObserveAnalysis(failed int) {
	if c == nil {
		return
	}
	c.AnalysesTotal.Inc()
	c.AnalysisErrors.Add(float64(failed))
}

// ObserveLink records one finished per-link search.
func (c *Collector) ObserveLink(duration time.Duration, lossCount int) {
	if c == nil {
		return
	}
	c.LinksAnalyzed.Inc()
	c.LossEvents.Add(float64(lossCount))
	c.SearchDuration.Observe(duration.Seconds())
}
