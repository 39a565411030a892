package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/algo"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/bench"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/config"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/dataset"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/store"
)

func newBenchCmd() *cobra.Command {
	var (
		configPath string
		dataDir    string
		start      int
		end        int
		schedName  string
		csvPath    string
		dbPath     string
		quiet      bool
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark a scheduler against the reference optima",
		Long: `bench runs a scheduler over a range of dataset instances, compares each
makespan against the stored reference optimum and reports the ratios.
Flags override the config file, which overrides the built-in defaults.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if d := os.Getenv("MRTACOAL_DATA"); d != "" && !cmd.Flags().Changed("data") {
				cfg.Dataset = d
			}
			if cmd.Flags().Changed("data") {
				cfg.Dataset = dataDir
			}
			if cmd.Flags().Changed("start") {
				cfg.Start = start
			}
			if cmd.Flags().Changed("end") {
				cfg.End = end
			}
			if cmd.Flags().Changed("scheduler") {
				cfg.Scheduler = schedName
			}
			if cmd.Flags().Changed("csv") {
				cfg.CSV = csvPath
			}
			if cmd.Flags().Changed("db") {
				cfg.DB = dbPath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			loader, err := dataset.NewLoader(cfg.Dataset, logger)
			if err != nil {
				return err
			}
			sched, err := algo.New(cfg.Scheduler, logger)
			if err != nil {
				return err
			}

			opts := bench.Options{Start: cfg.Start, End: cfg.End, Progress: cmd.OutOrStdout()}
			if quiet {
				opts.Progress = nil
			}
			summary, err := bench.Run(loader, sched, opts, logger)
			if err != nil {
				return err
			}
			summary.WriteReport(cmd.OutOrStdout())

			if cfg.CSV != "" {
				if err := bench.WriteCSV(summary.Results, cfg.CSV); err != nil {
					return err
				}
				logger.Info("results written", "path", cfg.CSV)
			}
			if cfg.DB != "" {
				st, err := store.Open(cfg.DB, logger)
				if err != nil {
					return err
				}
				defer st.Close()
				if err := st.Migrate(cmd.Context()); err != nil {
					return err
				}
				runID, err := st.SaveSummary(cmd.Context(), cfg.Dataset, opts, summary)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved run %s to %s\n", runID, cfg.DB)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Benchmark config file (YAML)")
	cmd.Flags().StringVar(&dataDir, "data", defaultDataset(), "Dataset directory (or MRTACOAL_DATA env)")
	cmd.Flags().IntVar(&start, "start", 0, "First instance id")
	cmd.Flags().IntVar(&end, "end", 19, "Last instance id (inclusive)")
	cmd.Flags().StringVar(&schedName, "scheduler", "coalition-greedy", "Scheduler to benchmark")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write per-instance results to a CSV file")
	cmd.Flags().StringVar(&dbPath, "db", "", "Persist the run to a SQLite database")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress per-instance progress output")

	return cmd
}
