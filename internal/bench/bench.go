// Package bench drives heuristic-vs-reference benchmark sweeps over a
// dataset and aggregates the makespan ratios.
package bench

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/algo"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/dataset"
)

// Options configures a sweep. Instances Start through End inclusive
// are processed in ascending order.
type Options struct {
	Start int
	End   int
	// Progress receives the per-instance report lines; nil silences
	// them.
	Progress io.Writer
}

// Result is the outcome on one instance.
type Result struct {
	InstanceID        int           `json:"instance_id"`
	NumTasks          int           `json:"n_tasks"` // real tasks
	NumRobots         int           `json:"n_robots"`
	OptimalMakespan   float64       `json:"optimal_makespan"`
	HeuristicMakespan float64       `json:"heuristic_makespan"`
	Ratio             float64       `json:"ratio"`
	Duration          time.Duration `json:"runtime_ns"`
	Feasible          bool          `json:"feasible"`
}

// Summary aggregates a sweep.
type Summary struct {
	Scheduler   string        `json:"scheduler"`
	Processed   int           `json:"processed"`
	Skipped     int           `json:"skipped"`
	AvgRatio    float64       `json:"avg_ratio"`
	AvgDuration time.Duration `json:"avg_duration_ns"`
	Results     []Result      `json:"results"`
}

// Ratio relates a heuristic makespan to the reference optimum. A zero
// optimum yields 1 for a zero heuristic makespan and +Inf otherwise;
// the +Inf then propagates into the sweep average rather than hiding
// the degenerate instance.
func Ratio(heuristic, optimal float64) float64 {
	if optimal > 0 {
		return heuristic / optimal
	}
	if heuristic == 0 {
		return 1.0
	}
	return math.Inf(1)
}

// Run benchmarks the scheduler over the dataset slice. Instances
// without a reference solution are skipped; a missing or invalid
// problem file aborts the sweep.
func Run(loader *dataset.Loader, sched algo.Scheduler, opts Options, logger *slog.Logger) (*Summary, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}

	summary := &Summary{Scheduler: sched.Name()}
	var totalRatio float64
	var totalDur time.Duration

	for id := opts.Start; id <= opts.End; id++ {
		fmt.Fprintf(progress, "Processing instance %d...\n", id)
		inst, opt, err := loader.Load(id)
		if err != nil {
			return nil, err
		}
		if opt == nil {
			fmt.Fprintf(progress, "  Skipped: no reference solution.\n")
			summary.Skipped++
			continue
		}

		started := time.Now()
		sol := sched.Schedule(inst)
		elapsed := time.Since(started)

		ratio := Ratio(sol.Makespan, opt.Makespan)
		summary.Results = append(summary.Results, Result{
			InstanceID:        id,
			NumTasks:          sol.NumTasks,
			NumRobots:         sol.NumRobots,
			OptimalMakespan:   opt.Makespan,
			HeuristicMakespan: sol.Makespan,
			Ratio:             ratio,
			Duration:          elapsed,
			Feasible:          sol.Feasible,
		})
		summary.Processed++
		totalRatio += ratio
		totalDur += elapsed

		if !sol.Feasible {
			logger.Warn("schedule infeasible",
				"instance", id,
				"unscheduled", len(sol.Unscheduled))
		}

		fmt.Fprintf(progress, "  Optimal Makespan: %.2f\n", opt.Makespan)
		fmt.Fprintf(progress, "  Heuristic Makespan: %.2f (Ratio: %.3f)\n", sol.Makespan, ratio)
		fmt.Fprintf(progress, "  Time taken: %.4fs\n", elapsed.Seconds())
	}

	if summary.Processed > 0 {
		summary.AvgRatio = totalRatio / float64(summary.Processed)
		summary.AvgDuration = totalDur / time.Duration(summary.Processed)
	}
	return summary, nil
}

// WriteReport prints the closing summary block.
func (s *Summary) WriteReport(w io.Writer) {
	fmt.Fprintf(w, "\n--- Benchmark Summary ---\n")
	fmt.Fprintf(w, "Scheduler: %s\n", s.Scheduler)
	fmt.Fprintf(w, "Processed %d instances", s.Processed)
	if s.Skipped > 0 {
		fmt.Fprintf(w, " (%d skipped)", s.Skipped)
	}
	fmt.Fprintln(w, ".")
	if s.Processed == 0 {
		return
	}
	fmt.Fprintf(w, "Average Heuristic/Optimal Ratio: %.4f\n", s.AvgRatio)
	fmt.Fprintf(w, "Average Time per Instance: %.4fs\n", s.AvgDuration.Seconds())
}
