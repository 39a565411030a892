package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/store"
)

func newRunsCmd() *cobra.Command {
	var (
		dbPath  string
		limit   int
		showRun string
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List persisted benchmark runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				return fmt.Errorf("pass --db, the SQLite database a bench run was saved to")
			}
			st, err := store.Open(dbPath, logger)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.Migrate(cmd.Context()); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if showRun != "" {
				results, err := st.Results(cmd.Context(), showRun)
				if err != nil {
					return err
				}
				if len(results) == 0 {
					return fmt.Errorf("run %s not found in %s", showRun, dbPath)
				}
				fmt.Fprintf(w, "%-10s %6s %7s %10s %10s %8s %9s %9s\n",
					"INSTANCE", "TASKS", "ROBOTS", "OPTIMAL", "HEURISTIC", "RATIO", "MS", "FEASIBLE")
				for _, r := range results {
					fmt.Fprintf(w, "%-10d %6d %7d %10.3f %10.3f %8.4f %9.3f %9t\n",
						r.InstanceID, r.NumTasks, r.NumRobots,
						r.OptimalMakespan, r.HeuristicMakespan, r.Ratio,
						float64(r.Duration.Microseconds())/1000.0, r.Feasible)
				}
				return nil
			}

			runs, err := st.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(w, "No runs recorded yet.")
				return nil
			}
			fmt.Fprintf(w, "%-12s %-20s %-18s %-11s %9s %7s %10s\n",
				"RUN", "CREATED", "SCHEDULER", "RANGE", "PROCESSED", "SKIPPED", "AVG RATIO")
			for _, r := range runs {
				fmt.Fprintf(w, "%-12s %-20s %-18s %-11s %9d %7d %10.4f\n",
					r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Scheduler,
					fmt.Sprintf("%d-%d", r.StartID, r.EndID),
					r.Processed, r.Skipped, r.AvgRatio)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database to read")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	cmd.Flags().StringVar(&showRun, "results", "", "Show per-instance results for one run id")

	return cmd
}
