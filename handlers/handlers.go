// ABOUTME: HTTP handlers for the capacity planner API endpoints
// ABOUTME: Holds shared dependencies and the JSON response helpers

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fronthaul-tools/capacity-planner/cache"
	"github.com/fronthaul-tools/capacity-planner/config"
	"github.com/fronthaul-tools/capacity-planner/models"
	"github.com/fronthaul-tools/capacity-planner/observability"
	"github.com/fronthaul-tools/capacity-planner/services"
)

// maxRequestBodySize limits JSON request bodies. Inline traffic payloads are
// large (one float pair per sample per cell), so the cap is generous.
const maxRequestBodySize = 64 << 20 // 64MB

type Handler struct {
	cfg       *config.Config
	cache     *cache.Cache
	table     *models.TierTable
	analyzer  *services.Analyzer
	topo      *services.TopologyOptimizer
	advisor   *services.Advisor
	metrics   *observability.Collector
	startTime time.Time
}

// NewHandler wires the engine components behind the HTTP surface. The cache
// and metrics collector are optional.
func NewHandler(cfg *config.Config, c *cache.Cache, table *models.TierTable, metrics *observability.Collector) *Handler {
	h := &Handler{
		cfg:       cfg,
		cache:     c,
		table:     table,
		metrics:   metrics,
		topo:      services.NewTopologyOptimizer(table),
		startTime: time.Now(),
	}

	h.advisor = services.NewAdvisor("")
	if cfg != nil {
		h.advisor = services.NewAdvisor(cfg.AnthropicAPIKey)
	}

	h.analyzer = services.NewAnalyzer(table).
		WithAdvisor(h.advisor).
		WithMetrics(metrics)

	return h
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
