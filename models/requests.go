// ABOUTME: Request bodies accepted by the HTTP API
// ABOUTME: Inline traffic payloads or a server-side data directory reference

package models

// CellInput carries the raw samples of one cell inline in a request.
type CellInput struct {
	CellID      int             `json:"cell_id"`
	Samples     []TrafficSample `json:"samples"`
	PacketStats []PacketStat    `json:"packet_stats,omitempty"`
}

// AnalysisRequest is the body of the analyze endpoint. Exactly one of
// DataDir or Cells must be provided: DataDir points at a server-side
// directory of throughput-cell-*.dat traces, Cells carries the samples
// inline.
// A nil Params uses the server's configured defaults; a present Params is
// taken as-is so buffer_symbols can be set to zero explicitly.
type AnalysisRequest struct {
	DataDir string          `json:"data_dir,omitempty"`
	Cells   []CellInput     `json:"cells,omitempty"`
	Params  *AnalysisParams `json:"params,omitempty"`
}

// TopologyRequest is the body of the topology optimize endpoint.
type TopologyRequest struct {
	DataDir    string      `json:"data_dir,omitempty"`
	Cells      []CellInput `json:"cells,omitempty"`
	NumLinks   int         `json:"num_links"`
	Iterations int         `json:"iterations"`
}
