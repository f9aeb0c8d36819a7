// ABOUTME: Root command for the capacity-planner CLI
// ABOUTME: Handles global flags shared by the serve and analyze commands

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fronthaul-tools/capacity-planner/logger"
)

var rootCmd = &cobra.Command{
	Use:   "capacity-planner",
	Short: "Buffer-aware fronthaul capacity planning",
	Long: `capacity-planner sizes fronthaul Ethernet links from slot-level traffic traces.

It simulates switch buffering to find the smallest capacity meeting a loss
budget, maps it to a discrete link speed tier, and prices the saving versus
peak-rate provisioning.

Environment Variables:
  PORT               HTTP listen port for serve (default: 8080)
  TIER_TABLE_PATH    YAML speed tier catalog (default: built-in)
  ANTHROPIC_API_KEY  Enables AI deployment recommendations
  LOG_LEVEL          debug, info, warn, error (default: info)
  LOG_FORMAT         text, json (default: text)`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
