package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "csgkernel",
	Short: "csgkernel - debug harness for the BSP-based CSG kernel",
	Long: `csgkernel runs scripted checks and timing benchmarks against fixture
solids, using the same kernel packages (solid, bsptree, geom) any other
caller would import directly.`,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
