package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/algo"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/sim"
)

func newSimulateCmd() *cobra.Command {
	var (
		dataDir   string
		id        int
		schedName string
		runs      int
		noise     float64
		seed      int64
	)

	cmd := &cobra.Command{
		Use:   "simulate [problem.json]",
		Short: "Replay a schedule under execution-time noise",
		Long: `simulate plans an instance once, then replays the committed plan with
perturbed execution times and reports how the realized makespan spreads.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := loadProblem(args, dataDir, id)
			if err != nil {
				return err
			}
			sched, err := algo.New(schedName, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := sim.DefaultConfig()
			cfg.Instance = inst
			cfg.Scheduler = sched
			cfg.Runs = runs
			cfg.Noise = noise
			cfg.Seed = seed
			cfg.Logger = logger

			metrics, err := sim.Run(ctx, cfg)
			if err != nil {
				return err
			}
			metrics.WriteReport(cmd.OutOrStdout())
			return nil
		},
	}

	defaults := sim.DefaultConfig()
	cmd.Flags().StringVar(&dataDir, "data", defaultDataset(), "Dataset directory (or MRTACOAL_DATA env)")
	cmd.Flags().IntVar(&id, "id", -1, "Instance id within the dataset")
	cmd.Flags().StringVar(&schedName, "scheduler", "", "Scheduler name (default coalition-greedy)")
	cmd.Flags().IntVar(&runs, "runs", defaults.Runs, "Number of replay runs")
	cmd.Flags().Float64Var(&noise, "noise", defaults.Noise, "Execution-time noise (coefficient of variation)")
	cmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "Random seed")

	return cmd
}
