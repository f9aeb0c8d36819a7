// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes and registers them with the shared middleware chain

package handlers

import (
	"net/http"
	"time"

	"github.com/fronthaul-tools/capacity-planner/middleware"
)

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path (e.g., "/api/v1/health")
	Handler http.HandlerFunc // Handler function
	Heavy   bool             // true for simulation endpoints with the tight rate limit
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health & Status
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},

		// Capacity engine
		{Method: http.MethodPost, Path: "/api/v1/analyze", Handler: h.Analyze, Heavy: true},
		{Method: http.MethodPost, Path: "/api/v1/topology/optimize", Handler: h.OptimizeTopology, Heavy: true},
	}
}

// Register installs all routes on the mux using Go 1.22+ method patterns,
// wrapped in the standard middleware chain. Simulation endpoints get the
// tighter analyze rate limit.
func (h *Handler) Register(mux *http.ServeMux) {
	var analyzeLimiter, defaultLimiter *middleware.RateLimiter
	if h.cfg != nil && h.cfg.RateLimitEnabled {
		analyzeLimiter = middleware.NewRateLimiter(h.cfg.RateLimitAnalyze, time.Minute)
		defaultLimiter = middleware.NewRateLimiter(h.cfg.RateLimitDefault, time.Minute)
	}

	for _, route := range h.Routes() {
		limiter := defaultLimiter
		if route.Heavy {
			limiter = analyzeLimiter
		}
		handler := middleware.Chain(route.Handler,
			middleware.LogRequest,
			middleware.Recover,
			middleware.CORS,
			middleware.RateLimit(limiter),
		)
		mux.HandleFunc(route.Method+" "+route.Path, handler)
	}

	if h.metrics != nil {
		mux.Handle("GET /metrics", h.metrics.Handler())
	}
}
