// ABOUTME: HTTP handler for the buffer-aware capacity analysis endpoint
// ABOUTME: Accepts inline traffic or a server-side data directory, with caching

package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/fronthaul-tools/capacity-planner/loader"
	"github.com/fronthaul-tools/capacity-planner/models"
	"github.com/fronthaul-tools/capacity-planner/services"
)

// Analyze runs the full capacity analysis for the submitted traffic.
// HTTP method validation handled by Go 1.22+ router pattern matching.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.writeError(w, "Request body too large", http.StatusBadRequest)
			return
		}
		h.writeError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req models.AnalysisRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.writeError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	// Identical requests within the TTL return the cached response; the
	// fingerprint covers the full body so any parameter change misses.
	cacheKey := "analysis:" + fingerprint(body)
	if h.cache != nil {
		if cached, found := h.cache.Get(cacheKey); found {
			resp := cached.(*models.AnalysisResponse)
			resp.Meta.Cached = true
			h.writeJSON(w, http.StatusOK, resp)
			return
		}
	}

	input, err := h.buildInput(r, req)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	resp, err := h.analyzer.Run(r.Context(), *input)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	if h.cache != nil {
		h.cache.Set(cacheKey, resp)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// buildInput materializes the request's traffic, either from the inline
// payload or from a server-side data directory.
func (h *Handler) buildInput(r *http.Request, req models.AnalysisRequest) (*services.AnalysisInput, error) {
	if (req.DataDir == "") == (len(req.Cells) == 0) {
		return nil, &models.DataError{Subject: "request", Reason: "exactly one of data_dir or cells must be provided"}
	}

	params := h.cfg.Defaults
	if req.Params != nil {
		params = *req.Params
	}
	input := &services.AnalysisInput{Params: params}

	if req.DataDir != "" {
		ds, err := loader.LoadDirectory(r.Context(), req.DataDir)
		if err != nil {
			return nil, err
		}
		input.Cells = ds.Cells
		input.PacketStats = ds.PacketStats
		return input, nil
	}

	input.Cells = make(map[int][]models.TrafficSample, len(req.Cells))
	input.PacketStats = make(map[int][]models.PacketStat)
	for _, c := range req.Cells {
		if _, dup := input.Cells[c.CellID]; dup {
			return nil, &models.DataError{Subject: "request", Reason: "duplicate cell_id in payload"}
		}
		input.Cells[c.CellID] = c.Samples
		if len(c.PacketStats) > 0 {
			input.PacketStats[c.CellID] = c.PacketStats
		}
	}
	return input, nil
}

// writeEngineError maps engine error types to HTTP status codes. Bad data
// and bad parameters are client errors; anything else is a 500.
func (h *Handler) writeEngineError(w http.ResponseWriter, err error) {
	var dataErr *models.DataError
	var cfgErr *models.ConfigError
	switch {
	case errors.As(err, &dataErr), errors.As(err, &cfgErr):
		h.writeError(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("Analysis failed", "error", err)
		h.writeError(w, err.Error(), http.StatusInternalServerError)
	}
}

func fingerprint(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
