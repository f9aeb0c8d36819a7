// ABOUTME: Analyze command running one batch analysis over a trace directory
// ABOUTME: Writes the full JSON report to stdout or a file for pipelines

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fronthaul-tools/capacity-planner/config"
	"github.com/fronthaul-tools/capacity-planner/loader"
	"github.com/fronthaul-tools/capacity-planner/models"
	"github.com/fronthaul-tools/capacity-planner/services"
)

var (
	analyzeDataDir     string
	analyzeOutput      string
	analyzeLinks       int
	analyzePercentile  float64
	analyzeBufferSyms  int
	analyzeMaxLossPct  float64
	analyzeMultiplier  float64
	analyzeInsights    bool
	analyzeTopology    bool
	analyzeTopologyIts int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one batch analysis over a trace directory",
	Long: `Run the buffer-aware capacity analysis over a directory of
throughput-cell-*.dat traces and emit the full JSON report.

Exit codes:
  0 - Analysis completed for every link
  1 - One or more links failed
  2 - Error (bad input, no data)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAnalyze(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeDataDir, "data-dir", "", "Directory with throughput-cell-*.dat traces (required)")
	analyzeCmd.Flags().StringVar(&analyzeOutput, "output", "", "Write the JSON report to a file instead of stdout")
	analyzeCmd.Flags().IntVar(&analyzeLinks, "links", 0, "Number of fronthaul links to partition cells into")
	analyzeCmd.Flags().Float64Var(&analyzePercentile, "percentile", 0, "Reporting percentile, e.g. 99")
	analyzeCmd.Flags().IntVar(&analyzeBufferSyms, "buffer-symbols", -1, "Switch buffer depth in symbols (0 disables buffering)")
	analyzeCmd.Flags().Float64Var(&analyzeMaxLossPct, "max-loss-pct", 0, "Loss budget in percent of slots")
	analyzeCmd.Flags().Float64Var(&analyzeMultiplier, "multiplier", 0, "Worst-case traffic multiplier, e.g. 1.5")
	analyzeCmd.Flags().BoolVar(&analyzeInsights, "insights", false, "Generate AI deployment recommendations")
	analyzeCmd.Flags().BoolVar(&analyzeTopology, "topology", false, "Also search for a cheaper cell-to-link topology")
	analyzeCmd.Flags().IntVar(&analyzeTopologyIts, "topology-iterations", 200, "Random partitions to try in the topology search")
	analyzeCmd.MarkFlagRequired("data-dir")
}

// batchReport is the combined output of one CLI run.
type batchReport struct {
	Analysis *models.AnalysisResponse `json:"analysis"`
	Topology *models.TopologyResult   `json:"topology,omitempty"`
}

// runAnalyze executes the batch analysis and returns an exit code.
func runAnalyze(ctx context.Context, w io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	table, err := cfg.TierTable()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	params := cfg.Defaults
	if analyzeLinks > 0 {
		params.TargetLinkCount = analyzeLinks
	}
	if analyzePercentile > 0 {
		params.Percentile = analyzePercentile
	}
	if analyzeBufferSyms >= 0 {
		params.BufferSymbols = analyzeBufferSyms
	}
	if analyzeMaxLossPct > 0 {
		params.MaxLossPct = analyzeMaxLossPct
	}
	if analyzeMultiplier > 0 {
		params.ScenarioMultiplier = analyzeMultiplier
	}
	params.WithInsights = analyzeInsights

	ds, err := loader.LoadDirectory(ctx, analyzeDataDir)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	analyzer := services.NewAnalyzer(table).
		WithAdvisor(services.NewAdvisor(cfg.AnthropicAPIKey))

	resp, err := analyzer.Run(ctx, services.AnalysisInput{
		Cells:       ds.Cells,
		PacketStats: ds.PacketStats,
		Params:      params,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	report := batchReport{Analysis: resp}

	if analyzeTopology {
		series, _ := analyzer.BuildCellSeries(ds.Cells)
		topo, err := services.NewTopologyOptimizer(table).
			Optimize(series, params.TargetLinkCount, analyzeTopologyIts)
		if err != nil {
			slog.Warn("Topology search failed", "error", err)
		} else {
			report.Topology = topo
		}
	}

	out := w
	if analyzeOutput != "" {
		f, err := os.Create(analyzeOutput)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if len(resp.Failed) > 0 {
		fmt.Fprintf(os.Stderr, "%d link(s) failed\n", len(resp.Failed))
		return 1
	}
	return 0
}
