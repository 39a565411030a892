package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/algo"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/core"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/dataset"
)

// loadProblem reads an instance either from an explicit problem file
// or from a dataset directory by id.
func loadProblem(args []string, dataDir string, id int) (*core.Instance, error) {
	if len(args) > 0 {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("read problem file: %w", err)
		}
		var data core.ProblemData
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("parse %s: %w", args[0], err)
		}
		return core.NewInstance(&data)
	}
	if id < 0 {
		return nil, fmt.Errorf("pass a problem file or --id together with --data")
	}
	loader, err := dataset.NewLoader(dataDir, logger)
	if err != nil {
		return nil, err
	}
	return loader.LoadInstance(id)
}

func newSolveCmd() *cobra.Command {
	var (
		dataDir   string
		id        int
		schedName string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "solve [problem.json]",
		Short: "Schedule one problem instance and print the result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := loadProblem(args, dataDir, id)
			if err != nil {
				return err
			}
			sched, err := algo.New(schedName, logger)
			if err != nil {
				return err
			}

			sol := sched.Schedule(inst)
			printSolution(cmd.OutOrStdout(), sched.Name(), sol)

			if output != "" {
				raw, err := json.MarshalIndent(sol, "", "  ")
				if err != nil {
					return err
				}
				if err := os.WriteFile(output, raw, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				logger.Info("solution written", "path", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", defaultDataset(), "Dataset directory (or MRTACOAL_DATA env)")
	cmd.Flags().IntVar(&id, "id", -1, "Instance id within the dataset")
	cmd.Flags().StringVar(&schedName, "scheduler", "", "Scheduler name (default coalition-greedy)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the solution JSON to a file")

	return cmd
}

// printSolution renders a schedule as per-robot timelines.
func printSolution(w io.Writer, schedName string, sol *core.Solution) {
	fmt.Fprintf(w, "Instance: %d tasks, %d robots\n", sol.NumTasks, sol.NumRobots)
	fmt.Fprintf(w, "Scheduler: %s\n", schedName)
	fmt.Fprintf(w, "Makespan: %.2f\n", sol.Makespan)
	for r, entries := range sol.Schedules {
		fmt.Fprintf(w, "  robot %d:", r)
		if len(entries) == 0 {
			fmt.Fprint(w, " idle")
		}
		for _, e := range entries {
			fmt.Fprintf(w, " task %d [%.2f, %.2f]", e.Task, e.Start, e.End)
		}
		fmt.Fprintln(w)
	}
	if !sol.Feasible {
		fmt.Fprintf(w, "INFEASIBLE: %d tasks left unscheduled: %v\n", len(sol.Unscheduled), sol.Unscheduled)
	}
}
