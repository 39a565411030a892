// Package state holds the model behind the schedule visualizer: the
// replay clock plus robot motion, task status and precedence geometry
// derived from a committed schedule.
package state

import (
	"sort"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/algo"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/core"
)

// Leg is one replayed segment of a robot's timeline: the trip to a
// task and the work interval at it. Legs are contiguous, each departs
// where and when the previous one ended.
type Leg struct {
	Task   core.TaskID
	From   core.Point
	To     core.Point
	Depart float64 // leaves the previous location
	Arrive float64 // reaches the task, then waits until Start
	Start  float64
	End    float64
}

// PrecEdge is one precedence pair prepared for drawing. Binding marks
// pairs where the successor started the moment its predecessor
// finished, the waits that actually shaped the schedule.
type PrecEdge struct {
	Pred    core.TaskID
	Succ    core.TaskID
	Binding bool
}

// TaskStatus is a task's point-in-time replay state.
type TaskStatus int

const (
	TaskPending TaskStatus = iota
	TaskActive
	TaskDone
	TaskUnscheduled
)

// State is the visualizer model: one instance, the schedule being
// replayed and everything derived from the two.
type State struct {
	Instance  *core.Instance
	Solution  *core.Solution
	Scheduler string

	Playback  *PlaybackState
	Selection *Selection
	ShowGantt bool

	legs   [][]Leg
	starts map[core.TaskID]float64
	edges  []PrecEdge
}

// NewState derives the visualization model for a solved instance.
func NewState(inst *core.Instance, sol *core.Solution, scheduler string) *State {
	s := &State{
		Instance:  inst,
		Solution:  sol,
		Scheduler: scheduler,
		Selection: NewSelection(),
		ShowGantt: true,
	}
	s.rebuild()
	s.Playback = NewPlaybackState(horizon(sol))
	return s
}

// SetScheduler re-solves the instance with the named scheduler and
// restarts playback on the new schedule.
func (s *State) SetScheduler(name string) error {
	sched, err := algo.New(name, nil)
	if err != nil {
		return err
	}
	s.Solution = sched.Schedule(s.Instance)
	s.Scheduler = sched.Name()
	s.rebuild()
	s.Playback.Rescale(horizon(s.Solution))
	return nil
}

// CycleScheduler re-solves with the next registered scheduler.
func (s *State) CycleScheduler() {
	names := algo.Names()
	for i, name := range names {
		if name == s.Scheduler {
			_ = s.SetScheduler(names[(i+1)%len(names)])
			return
		}
	}
}

func (s *State) rebuild() {
	s.legs = buildLegs(s.Instance, s.Solution)
	s.starts = buildStarts(s.Instance, s.Solution)
	s.edges = buildEdges(s.Instance, s.Solution, s.starts)
}

// RobotLegs returns the replayed timeline of one robot.
func (s *State) RobotLegs(id core.RobotID) []Leg {
	if int(id) < 0 || int(id) >= len(s.legs) {
		return nil
	}
	return s.legs[id]
}

// PositionAt returns a robot's interpolated position at replay time t.
// Idle robots sit at the depot; a finished robot stays at its last
// task.
func (s *State) PositionAt(id core.RobotID, t float64) core.Point {
	legs := s.RobotLegs(id)
	if len(legs) == 0 {
		return s.home()
	}
	if t <= legs[0].Depart {
		return legs[0].From
	}
	for _, l := range legs {
		if t >= l.End {
			continue
		}
		if t <= l.Arrive {
			span := l.Arrive - l.Depart
			if span <= 0 {
				return l.To
			}
			a := (t - l.Depart) / span
			return core.Point{
				X: l.From.X + a*(l.To.X-l.From.X),
				Y: l.From.Y + a*(l.To.Y-l.From.Y),
			}
		}
		// Waiting out predecessors or working.
		return l.To
	}
	return legs[len(legs)-1].To
}

// Trail returns the route a robot has covered up to time t, ending at
// its current position. Nil while the robot has not moved.
func (s *State) Trail(id core.RobotID, t float64) []core.Point {
	legs := s.RobotLegs(id)
	if len(legs) == 0 || t <= legs[0].Depart {
		return nil
	}
	trail := []core.Point{legs[0].From}
	for _, l := range legs {
		if t < l.Arrive {
			break
		}
		trail = append(trail, l.To)
	}
	return append(trail, s.PositionAt(id, t))
}

// Status reports what a task is doing at replay time t. Tasks the
// scheduler could not place are TaskUnscheduled at every t.
func (s *State) Status(id core.TaskID, t float64) TaskStatus {
	start, ok := s.starts[id]
	if !ok {
		return TaskUnscheduled
	}
	switch {
	case t >= s.Solution.Finish[id]:
		return TaskDone
	case t >= start:
		return TaskActive
	default:
		return TaskPending
	}
}

// StartOf returns the committed start time of a task.
func (s *State) StartOf(id core.TaskID) (float64, bool) {
	t, ok := s.starts[id]
	return t, ok
}

// PrecEdges returns the precedence pairs in (successor, predecessor)
// order.
func (s *State) PrecEdges() []PrecEdge {
	return s.edges
}

// Bounds returns the axis-aligned extent of all task locations.
func (s *State) Bounds() (min, max core.Point) {
	tasks := s.Instance.Tasks
	if len(tasks) == 0 {
		return core.Point{}, core.Point{}
	}
	min, max = tasks[0].Location, tasks[0].Location
	for _, task := range tasks[1:] {
		if task.Location.X < min.X {
			min.X = task.Location.X
		}
		if task.Location.Y < min.Y {
			min.Y = task.Location.Y
		}
		if task.Location.X > max.X {
			max.X = task.Location.X
		}
		if task.Location.Y > max.Y {
			max.Y = task.Location.Y
		}
	}
	return min, max
}

func (s *State) home() core.Point {
	if t := s.Instance.TaskByID(core.DepotID); t != nil {
		return t.Location
	}
	return core.Point{}
}

// horizon is the replay end time: the makespan, stretched when a
// zero-coalition task finishes after every robot went idle.
func horizon(sol *core.Solution) float64 {
	h := sol.Makespan
	for _, f := range sol.Finish {
		if f > h {
			h = f
		}
	}
	return h
}

func buildLegs(inst *core.Instance, sol *core.Solution) [][]Leg {
	legs := make([][]Leg, inst.NumRobots())
	for r := range legs {
		prev := core.DepotID
		prevEnd := 0.0
		for _, e := range sol.Schedules[r] {
			legs[r] = append(legs[r], Leg{
				Task:   e.Task,
				From:   inst.TaskByID(prev).Location,
				To:     inst.TaskByID(e.Task).Location,
				Depart: prevEnd,
				Arrive: prevEnd + inst.TravelTime(prev, e.Task),
				Start:  e.Start,
				End:    e.End,
			})
			prev, prevEnd = e.Task, e.End
		}
	}
	return legs
}

// buildStarts recovers the start time of every committed task.
// Schedule entries carry it directly; tasks on no timeline (the depot
// and zero-coalition tasks) start when their latest predecessor
// finishes.
func buildStarts(inst *core.Instance, sol *core.Solution) map[core.TaskID]float64 {
	starts := make(map[core.TaskID]float64, len(sol.Finish))
	for _, entries := range sol.Schedules {
		for _, e := range entries {
			starts[e.Task] = e.Start
		}
	}
	for id := range sol.Finish {
		if _, ok := starts[id]; ok {
			continue
		}
		start := 0.0
		for _, pred := range inst.PredecessorsOf(id) {
			if f := sol.Finish[pred]; f > start {
				start = f
			}
		}
		starts[id] = start
	}
	return starts
}

func buildEdges(inst *core.Instance, sol *core.Solution, starts map[core.TaskID]float64) []PrecEdge {
	var edges []PrecEdge
	for succ, preds := range inst.Predecessors {
		for _, pred := range preds {
			e := PrecEdge{Pred: pred, Succ: succ}
			if start, ok := starts[succ]; ok {
				if f, ok := sol.Finish[pred]; ok && start == f {
					e.Binding = true
				}
			}
			edges = append(edges, e)
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Succ != edges[j].Succ {
			return edges[i].Succ < edges[j].Succ
		}
		return edges[i].Pred < edges[j].Pred
	})
	return edges
}
