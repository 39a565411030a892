package algo

import (
	"log/slog"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/core"
)

// TaskOrder is the baseline list scheduler: it walks the pending list
// in ascending task-id order and commits the first placeable task,
// without comparing finish times. Useful as a lower bound on how much
// the earliest-finish rule actually buys.
type TaskOrder struct {
	logger *slog.Logger
}

// NewTaskOrder creates the baseline scheduler. A nil logger disables
// logging.
func NewTaskOrder(logger *slog.Logger) *TaskOrder {
	if logger == nil {
		logger = discard()
	}
	return &TaskOrder{logger: logger}
}

func (s *TaskOrder) Name() string { return "task-order" }

// Schedule commits the first ready, coverable task each round.
func (s *TaskOrder) Schedule(inst *core.Instance) *core.Solution {
	st := newRunState(inst)
	pending := inst.RealTasks()

	for len(pending) > 0 {
		var picked *assignment
		for _, task := range pending {
			if a, ok := st.evaluate(inst, task); ok {
				picked = a
				break
			}
		}
		if picked == nil {
			s.logger.Warn("scheduling stalled",
				"committed", len(st.order),
				"pending", len(pending))
			return st.abort(inst, pending)
		}
		st.commit(picked)
		pending = removeTask(pending, picked.task.ID)
	}
	return st.solution(inst)
}
