// Package algo implements coalition formation and the list schedulers
// built on top of it.
package algo

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/core"
)

// Scheduler produces a schedule for a problem instance.
type Scheduler interface {
	// Schedule allocates the instance's real tasks to coalitions.
	// The returned solution carries a partial schedule even when the
	// run stalls; check Feasible.
	Schedule(inst *core.Instance) *core.Solution

	// Name returns the scheduler name used in results and on the CLI.
	Name() string
}

// Names lists the registered scheduler names. The first entry is the
// default.
func Names() []string {
	return []string{"coalition-greedy", "task-order"}
}

// New returns the named scheduler. An empty name selects the default.
func New(name string, logger *slog.Logger) (Scheduler, error) {
	switch name {
	case "", "coalition-greedy":
		return NewCoalitionGreedy(logger), nil
	case "task-order":
		return NewTaskOrder(logger), nil
	}
	return nil, fmt.Errorf("unknown scheduler %q (have %v)", name, Names())
}

// discard is the fallback for a nil logger.
func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
