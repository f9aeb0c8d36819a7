// ABOUTME: Data models for fronthaul traffic, capacity results, and API responses
// ABOUTME: JSON-serializable structures shared by the engine, handlers, and CLI

package models

import "time"

// Telecom timing constants. A slot is the 500 microsecond aggregation bucket
// for traffic samples; a symbol is the sub-unit used to express switch buffer
// depth in time terms.
const (
	SlotDurationSec   = 0.0005
	SymbolDurationSec = 35.7e-6
	GbpsScale         = 1e9
)

// TrafficSample is one raw throughput observation for a cell: a timestamp in
// seconds and the number of bits observed at that instant.
type TrafficSample struct {
	Time float64 `json:"time"`
	Bits float64 `json:"bits"`
}

// PacketStat carries optional per-slot packet counters for a cell, used by
// the congestion scorer. BufferOccupancy is informational.
type PacketStat struct {
	Slot            int `json:"slot"`
	TxPackets       int `json:"tx"`
	RxPackets       int `json:"rx"`
	TooLateRx       int `json:"too_late_rx"`
	BufferOccupancy int `json:"buffer_occupancy"`
}

// TrafficSeries is a contiguous, zero-filled sequence of bits per slot for
// one cell or one aggregated link. Slot indices are implicit: Bits[i] is the
// traffic of slot i. Immutable once built.
type TrafficSeries struct {
	ID   string    `json:"id"`
	Bits []float64 `json:"bits"`
}

// TotalSlots returns the number of slots in the series.
func (s *TrafficSeries) TotalSlots() int {
	return len(s.Bits)
}

// GbpsAt converts the bits of slot i to the slot's average rate in Gbps.
func (s *TrafficSeries) GbpsAt(i int) float64 {
	return s.Bits[i] / SlotDurationSec / GbpsScale
}

// LinkMapping assigns each cell ID to a link identifier. Every cell appears
// in exactly one link.
type LinkMapping map[int]string

// BufferAwareResult is the output of the capacity search for one link.
// Invariant: MeanGbps <= OptimizedGbps <= PeakGbps.
type BufferAwareResult struct {
	OptimizedGbps float64 `json:"optimized_capacity_gbps"`
	PeakGbps      float64 `json:"peak_gbps"`
	MeanGbps      float64 `json:"mean_gbps"`
	LossCount     int     `json:"loss_count"`
	TotalSlots    int     `json:"total_slots"`
}

// CongestionScore is the weighted risk signal for one link, in [0,1].
type CongestionScore struct {
	Score     float64 `json:"score"`
	LateRatio float64 `json:"late_ratio"`
	LossRatio float64 `json:"loss_ratio"`
	Congested bool    `json:"congested"`
	Inferred  bool    `json:"inferred"` // true when no packet stats were available
}

// CostBreakdown translates a tier selection into CAPEX/OPEX deltas versus
// peak-based provisioning. All monetary figures are INR.
type CostBreakdown struct {
	HardwareDeltaINR float64 `json:"hardware_delta_inr"`
	LicenseDeltaINR  float64 `json:"license_delta_inr"`
	TotalCapexINR    float64 `json:"total_capex_inr"`
	PowerDeltaKW     float64 `json:"power_delta_kw"`
	AnnualOpexINR    float64 `json:"annual_opex_inr"`
	FiveYearTCOINR   float64 `json:"five_year_tco_inr"`
}

// LinkReport is the flat per-link output consumed by presentation layers.
type LinkReport struct {
	Link             string            `json:"link"`
	Cells            []int             `json:"cells"`
	Result           BufferAwareResult `json:"result"`
	Percentile       float64           `json:"percentile"`
	PercentileGbps   float64           `json:"percentile_gbps"`
	RecommendedGbps  float64           `json:"recommended_tier_gbps"`
	PeakTierGbps     float64           `json:"peak_tier_gbps"`
	SLAScorePct      float64           `json:"sla_score_pct"`
	OverprovisionPct float64           `json:"overprovision_pct"`
	Congestion       CongestionScore   `json:"congestion"`
	Cost             CostBreakdown     `json:"cost"`
	Recommendation   string            `json:"recommendation,omitempty"`
}

// AnalysisMeta describes one analysis run.
type AnalysisMeta struct {
	Timestamp       time.Time `json:"timestamp"`
	ExecutionMS     int64     `json:"execution_ms"`
	TotalCells      int       `json:"total_cells"`
	TargetLinkCount int       `json:"target_link_count"`
	Cached          bool      `json:"cached"`
}

// AnalysisResponse maps link identifiers to their reports. Links that failed
// are listed in Failed with the offending error; one link's failure does not
// abort the batch.
type AnalysisResponse struct {
	Meta   AnalysisMeta          `json:"meta"`
	Links  map[string]LinkReport `json:"links"`
	Failed map[string]string     `json:"failed,omitempty"`
}

// TopologyResult is the outcome of the randomized re-partition search.
type TopologyResult struct {
	Mapping      LinkMapping             `json:"mapping"`
	TotalCostINR float64                 `json:"total_cost_inr"`
	Links        map[string]TopologyLink `json:"links"`
	Iterations   int                     `json:"iterations"`
}

// TopologyLink summarizes one link of a candidate topology.
type TopologyLink struct {
	PeakGbps  float64 `json:"peak_gbps"`
	SpeedGbps float64 `json:"speed_gbps"`
	CostINR   float64 `json:"cost_inr"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}
