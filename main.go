// ABOUTME: Entry point for the capacity-planner binary
// ABOUTME: Dispatches to the serve and analyze subcommands

package main

import (
	"os"

	"github.com/fronthaul-tools/capacity-planner/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
