// Package cli implements the mrtacoal command tree.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/logging"
)

var (
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
)

// defaultDataset returns the default dataset directory, checking the
// MRTACOAL_DATA env var first.
func defaultDataset() string {
	if d := os.Getenv("MRTACOAL_DATA"); d != "" {
		return d
	}
	return "data/benchmark"
}

// NewRootCmd creates the root cobra command for the mrtacoal CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mrtacoal",
		Short: "Coalition scheduling for heterogeneous robot fleets",
		Long: `mrtacoal schedules precedence-constrained tasks onto coalitions of
heterogeneous robots and benchmarks the heuristics against reference optima.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.New(logging.ParseLevel(flagLogLevel), flagLogFormat)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Shorthand for --log-level=debug")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newSolveCmd(),
		newBenchCmd(),
		newGenCmd(),
		newSimulateCmd(),
		newServeCmd(),
		newRunsCmd(),
		newConfigCmd(),
	)

	return root
}
