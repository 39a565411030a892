package bench

import (
	"encoding/csv"
	"fmt"
	"os"
)

// WriteCSV dumps per-instance results for offline analysis.
func WriteCSV(results []Result, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := []string{
		"instance_id", "n_tasks", "n_robots",
		"optimal_makespan", "heuristic_makespan", "ratio",
		"runtime_ms", "feasible",
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			fmt.Sprintf("%d", r.InstanceID),
			fmt.Sprintf("%d", r.NumTasks),
			fmt.Sprintf("%d", r.NumRobots),
			fmt.Sprintf("%.3f", r.OptimalMakespan),
			fmt.Sprintf("%.3f", r.HeuristicMakespan),
			fmt.Sprintf("%.4f", r.Ratio),
			fmt.Sprintf("%.3f", float64(r.Duration.Microseconds())/1000.0),
			fmt.Sprintf("%t", r.Feasible),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
