package algo

import (
	"log/slog"
	"math"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/core"
)

// CoalitionGreedy is the coalition-aware greedy list scheduler. Each
// round it evaluates every ready pending task and commits the one
// whose coalition would finish earliest.
type CoalitionGreedy struct {
	logger *slog.Logger
}

// NewCoalitionGreedy creates the greedy scheduler. A nil logger
// disables logging.
func NewCoalitionGreedy(logger *slog.Logger) *CoalitionGreedy {
	if logger == nil {
		logger = discard()
	}
	return &CoalitionGreedy{logger: logger}
}

func (g *CoalitionGreedy) Name() string { return "coalition-greedy" }

// Schedule runs list scheduling with earliest-finish selection until
// the pending set drains or no pending task can be placed.
func (g *CoalitionGreedy) Schedule(inst *core.Instance) *core.Solution {
	st := newRunState(inst)
	pending := inst.RealTasks()

	for len(pending) > 0 {
		var best *assignment
		bestFinish := math.Inf(1)

		for _, task := range pending {
			a, ok := st.evaluate(inst, task)
			if !ok {
				continue
			}
			// Strict less keeps the earliest pending task on ties.
			if a.finish < bestFinish {
				bestFinish = a.finish
				best = a
			}
		}

		if best == nil {
			g.logger.Warn("scheduling stalled",
				"committed", len(st.order),
				"pending", len(pending))
			return st.abort(inst, pending)
		}

		st.commit(best)
		pending = removeTask(pending, best.task.ID)
		g.logger.Debug("committed task",
			"task", int(best.task.ID),
			"coalition", len(best.coalition),
			"start", best.start,
			"finish", best.finish)
	}
	return st.solution(inst)
}

// assignment is one evaluated (task, coalition, timing) candidate.
type assignment struct {
	task      *core.Task
	coalition Coalition
	start     float64
	finish    float64
}

// runState is the mutable scheduling state shared by the list
// schedulers: per-robot availability and location, plus the committed
// task set and finish times. Robot state is indexed by id.
type runState struct {
	available []float64
	location  []core.TaskID
	scheduled map[core.TaskID]bool
	finish    map[core.TaskID]float64
	schedules [][]core.ScheduleEntry
	assign    map[core.TaskID][]core.RobotID
	order     []core.TaskID
}

func newRunState(inst *core.Instance) *runState {
	n := inst.NumRobots()
	return &runState{
		available: make([]float64, n),
		location:  make([]core.TaskID, n), // everyone starts at the depot
		scheduled: map[core.TaskID]bool{core.DepotID: true},
		finish:    map[core.TaskID]float64{core.DepotID: 0},
		schedules: make([][]core.ScheduleEntry, n),
		assign:    make(map[core.TaskID][]core.RobotID),
	}
}

// ready reports whether every predecessor of the task has been
// committed, and if so the latest predecessor finish time.
func (st *runState) ready(inst *core.Instance, id core.TaskID) (float64, bool) {
	maxFinish := 0.0
	for _, pred := range inst.PredecessorsOf(id) {
		if !st.scheduled[pred] {
			return 0, false
		}
		if f := st.finish[pred]; f > maxFinish {
			maxFinish = f
		}
	}
	return maxFinish, true
}

// evaluate builds the candidate assignment for one task: its
// coalition, the time the last member arrives and the resulting
// finish. ok is false when the task is not ready or its requirement
// cannot be covered.
func (st *runState) evaluate(inst *core.Instance, task *core.Task) (*assignment, bool) {
	predFinish, ok := st.ready(inst, task.ID)
	if !ok {
		return nil, false
	}
	coalition, err := FindCoalition(task, inst.Robots)
	if err != nil {
		return nil, false
	}

	// An empty coalition is ready immediately; otherwise the last
	// arriving member gates the start.
	coalitionReady := 0.0
	for _, r := range coalition {
		arrival := st.available[r.ID] + inst.TravelTime(st.location[r.ID], task.ID)
		if arrival > coalitionReady {
			coalitionReady = arrival
		}
	}

	start := math.Max(coalitionReady, predFinish)
	return &assignment{
		task:      task,
		coalition: coalition,
		start:     start,
		finish:    start + task.ExecutionTime,
	}, true
}

// commit applies a candidate: every member travels to the task, works
// the full interval and becomes available at its finish.
func (st *runState) commit(a *assignment) {
	id := a.task.ID
	entry := core.ScheduleEntry{Task: id, Start: a.start, End: a.finish}
	for _, r := range a.coalition {
		st.available[r.ID] = a.finish
		st.location[r.ID] = id
		st.schedules[r.ID] = append(st.schedules[r.ID], entry)
	}
	st.scheduled[id] = true
	st.finish[id] = a.finish
	st.assign[id] = a.coalition.IDs()
	st.order = append(st.order, id)
}

// solution packages the final state. Makespan is the latest robot
// availability, zero for an empty fleet.
func (st *runState) solution(inst *core.Instance) *core.Solution {
	sol := core.NewSolution(inst.NumRobots())
	sol.NumTasks = len(inst.RealTasks())
	sol.Schedules = st.schedules
	sol.Assignment = st.assign
	sol.Order = st.order
	sol.Finish = st.finish
	sol.Feasible = true

	makespan := 0.0
	for _, t := range st.available {
		if t > makespan {
			makespan = t
		}
	}
	sol.Makespan = makespan
	return sol
}

// abort packages the partial schedule after a stall.
func (st *runState) abort(inst *core.Instance, pending []*core.Task) *core.Solution {
	sol := st.solution(inst)
	sol.Feasible = false
	sol.Unscheduled = make([]core.TaskID, 0, len(pending))
	for _, task := range pending {
		sol.Unscheduled = append(sol.Unscheduled, task.ID)
	}
	return sol
}

// removeTask drops one task by id, preserving the order of the rest.
func removeTask(tasks []*core.Task, id core.TaskID) []*core.Task {
	for i, t := range tasks {
		if t.ID == id {
			return append(tasks[:i], tasks[i+1:]...)
		}
	}
	return tasks
}
