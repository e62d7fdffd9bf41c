// Command blockreach runs block decomposed reachability analysis on a few
// built in benchmark systems and renders the resulting flowpipes.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "blockreach",
	Short: "Block decomposed reachability for linear systems",
	Long: "Computes flowpipes of linear time invariant systems by propagating\n" +
		"low dimensional sets per block of a state variable partition.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().Float64("delta", 0.01, "time step")
	rootCmd.PersistentFlags().Float64("horizon", 1.0, "time horizon")
	rootCmd.PersistentFlags().String("system", "rotation", "benchmark system: rotation, chain, translation, decoupled")
	rootCmd.PersistentFlags().Int("size", 2, "state dimension of the chosen system, where applicable; for decoupled, the number of planar blocks")
	rootCmd.PersistentFlags().Int("block-size", 2, "uniform partition block size")
	rootCmd.PersistentFlags().String("backend", "dense", "matrix power backend: dense, sparse, exp")
	rootCmd.PersistentFlags().IntSlice("vars", nil, "variables of interest, empty for all")
}
