// Package sim replays committed schedules under stochastic execution
// times. The nominal plan fixes each task's coalition and the commit
// order; the replay re-derives start times from perturbed durations,
// which shows how much makespan a plan gives up when reality drifts
// from the nominal durations.
package sim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"sort"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/algo"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/core"
)

// Config configures one simulation campaign.
type Config struct {
	// Instance to schedule and replay.
	Instance *core.Instance

	// Scheduler that produces the nominal plan.
	Scheduler algo.Scheduler

	// Number of replay runs.
	Runs int

	// Noise is the coefficient of variation of the perturbed execution
	// times. Zero replays the nominal durations exactly.
	Noise float64

	// Random seed for reproducibility.
	Seed int64

	Logger *slog.Logger
}

// DefaultConfig returns the campaign parameters used by the research
// runs.
func DefaultConfig() Config {
	return Config{
		Runs:  200,
		Noise: 0.2,
		Seed:  42,
	}
}

// Metrics summarizes a campaign of replay runs.
type Metrics struct {
	Scheduler       string    `json:"scheduler"`
	NominalMakespan float64   `json:"nominal_makespan"`
	Runs            int       `json:"runs"`
	Noise           float64   `json:"noise"`
	MeanMakespan    float64   `json:"mean_makespan"`
	MinMakespan     float64   `json:"min_makespan"`
	MaxMakespan     float64   `json:"max_makespan"`
	P95Makespan     float64   `json:"p95_makespan"`
	Makespans       []float64 `json:"-"` // sorted ascending
}

// Run plans the instance once, then replays the plan cfg.Runs times
// with perturbed execution times. Cancellation is honored between
// runs; a run in flight always completes.
func Run(ctx context.Context, cfg Config) (*Metrics, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Instance == nil {
		return nil, fmt.Errorf("no instance to simulate")
	}
	if cfg.Scheduler == nil {
		return nil, fmt.Errorf("no scheduler configured")
	}
	runs := cfg.Runs
	if runs <= 0 {
		runs = DefaultConfig().Runs
	}
	noise := cfg.Noise
	if noise < 0 {
		noise = 0
	}

	nominal := cfg.Scheduler.Schedule(cfg.Instance)
	if !nominal.Feasible {
		return nil, fmt.Errorf("nominal schedule infeasible, %d tasks unscheduled", len(nominal.Unscheduled))
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	makespans := make([]float64, 0, runs)
	for r := 0; r < runs; r++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		makespans = append(makespans, replay(cfg.Instance, nominal, noise, rng))
	}
	sort.Float64s(makespans)

	m := &Metrics{
		Scheduler:       cfg.Scheduler.Name(),
		NominalMakespan: nominal.Makespan,
		Runs:            runs,
		Noise:           noise,
		MinMakespan:     makespans[0],
		MaxMakespan:     makespans[len(makespans)-1],
		P95Makespan:     quantile(makespans, 0.95),
		Makespans:       makespans,
	}
	sum := 0.0
	for _, ms := range makespans {
		sum += ms
	}
	m.MeanMakespan = sum / float64(len(makespans))

	logger.Info("simulation complete",
		"scheduler", m.Scheduler,
		"runs", m.Runs,
		"nominal", m.NominalMakespan,
		"mean", m.MeanMakespan)
	return m, nil
}

// replay executes the nominal plan in its commit order with perturbed
// durations. The coalition per task and the precedence and travel
// semantics are identical to planning; only the execution times move.
func replay(inst *core.Instance, nominal *core.Solution, noise float64, rng *rand.Rand) float64 {
	availability := make([]float64, inst.NumRobots())
	location := make([]core.TaskID, inst.NumRobots())
	finish := map[core.TaskID]float64{core.DepotID: 0}

	for _, id := range nominal.Order {
		task := inst.TaskByID(id)
		exec := sampleDuration(task.ExecutionTime, noise, rng)

		// The commit order is topological, so every predecessor
		// already has a realized finish.
		predFinish := 0.0
		for _, p := range inst.PredecessorsOf(id) {
			if finish[p] > predFinish {
				predFinish = finish[p]
			}
		}

		ready := predFinish
		for _, r := range nominal.Assignment[id] {
			arrive := availability[r] + inst.TravelTime(location[r], id)
			if arrive > ready {
				ready = arrive
			}
		}
		end := ready + exec
		finish[id] = end
		for _, r := range nominal.Assignment[id] {
			availability[r] = end
			location[r] = id
		}
	}

	makespan := 0.0
	for _, avail := range availability {
		if avail > makespan {
			makespan = avail
		}
	}
	return makespan
}

// sampleDuration perturbs one execution time with a lognormal whose
// mean is the nominal duration and whose std dev is noise*nominal.
// Zero noise or a zero duration passes the nominal value through
// untouched.
func sampleDuration(nominal, noise float64, rng *rand.Rand) float64 {
	if noise <= 0 || nominal <= 0 {
		return nominal
	}
	dist := algo.NewLogNormalFromMeanStd(nominal, noise*nominal)
	return dist.Sample(rng)
}

// quantile reads the q-quantile from an ascending-sorted slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Ceil(q*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// WriteReport prints a campaign summary in the benchmark report style.
func (m *Metrics) WriteReport(w io.Writer) {
	fmt.Fprintf(w, "\n--- Simulation Summary ---\n")
	fmt.Fprintf(w, "Scheduler: %s\n", m.Scheduler)
	fmt.Fprintf(w, "Nominal Makespan: %.2f\n", m.NominalMakespan)
	fmt.Fprintf(w, "Replays: %d (execution-time noise CV %.2f)\n", m.Runs, m.Noise)
	fmt.Fprintf(w, "Realized Makespan: mean %.2f, min %.2f, max %.2f, p95 %.2f\n",
		m.MeanMakespan, m.MinMakespan, m.MaxMakespan, m.P95Makespan)
	if m.NominalMakespan > 0 {
		fmt.Fprintf(w, "Mean/Nominal Ratio: %.3f\n", m.MeanMakespan/m.NominalMakespan)
	}
}
