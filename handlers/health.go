// ABOUTME: HTTP handler for the health endpoint
// ABOUTME: Reports host CPU/memory, cache population, and service uptime

package handlers

import (
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Health returns service status with host resource usage. Resource probes
// failing does not fail the health check; the service itself is up.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"status":     "ok",
		"uptime_sec": int64(time.Since(h.startTime).Seconds()),
		"goroutines": runtime.NumGoroutine(),
		"insights":   "not_configured",
	}

	if h.advisor != nil && h.advisor.Configured() {
		resp["insights"] = "ok"
	}
	if h.cache != nil {
		resp["cached_entries"] = h.cache.Len()
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		resp["cpu_percent"] = percents[0]
	} else if err != nil {
		slog.Debug("CPU probe failed", "error", err)
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		resp["memory_percent"] = vm.UsedPercent
	} else {
		slog.Debug("Memory probe failed", "error", err)
	}

	h.writeJSON(w, http.StatusOK, resp)
}
