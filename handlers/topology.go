// ABOUTME: HTTP handler for the randomized topology optimization endpoint
// ABOUTME: Searches cell-to-link assignments for a cheaper tier mix

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fronthaul-tools/capacity-planner/loader"
	"github.com/fronthaul-tools/capacity-planner/models"
)

// defaultTopologyIterations bounds the search when the client does not ask
// for a specific budget.
const defaultTopologyIterations = 200

// OptimizeTopology searches random balanced cell-to-link partitions and
// returns the cheapest mapping found.
// HTTP method validation handled by Go 1.22+ router pattern matching.
func (h *Handler) OptimizeTopology(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var req models.TopologyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.writeError(w, "Request body too large", http.StatusBadRequest)
			return
		}
		h.writeError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if (req.DataDir == "") == (len(req.Cells) == 0) {
		h.writeError(w, "exactly one of data_dir or cells must be provided", http.StatusBadRequest)
		return
	}
	if req.NumLinks == 0 {
		req.NumLinks = h.cfg.Defaults.TargetLinkCount
	}
	if req.Iterations == 0 {
		req.Iterations = defaultTopologyIterations
	}

	cells := make(map[int][]models.TrafficSample, len(req.Cells))
	if req.DataDir != "" {
		ds, err := loader.LoadDirectory(r.Context(), req.DataDir)
		if err != nil {
			h.writeEngineError(w, err)
			return
		}
		cells = ds.Cells
	} else {
		for _, c := range req.Cells {
			cells[c.CellID] = c.Samples
		}
	}

	series, failed := h.analyzer.BuildCellSeries(cells)
	if len(series) == 0 {
		h.writeError(w, "no usable cell series in payload", http.StatusBadRequest)
		return
	}

	result, err := h.topo.Optimize(series, req.NumLinks, req.Iterations)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	resp := struct {
		*models.TopologyResult
		Failed map[int]string `json:"failed_cells,omitempty"`
	}{TopologyResult: result}
	if len(failed) > 0 {
		resp.Failed = make(map[int]string, len(failed))
		for id, ferr := range failed {
			resp.Failed[id] = ferr.Error()
		}
	}
	h.writeJSON(w, http.StatusOK, resp)
}
