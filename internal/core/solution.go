package core

import "encoding/json"

// ScheduleEntry is one committed task on one robot's timeline.
type ScheduleEntry struct {
	Task  TaskID  `json:"task_id"`
	Start float64 `json:"start_time"`
	End   float64 `json:"end_time"`
}

// Solution is the outcome of a scheduler run.
//
// Schedules is indexed by robot id. Order is the commit sequence; it
// also covers tasks whose coalition is empty and which therefore
// appear on no robot's timeline. When the run stalls, Feasible is
// false, Unscheduled lists the tasks left over and the remaining
// fields describe the partial schedule built up to that point.
type Solution struct {
	Makespan    float64
	NumTasks    int // real tasks in the instance
	NumRobots   int
	Schedules   [][]ScheduleEntry
	Assignment  map[TaskID][]RobotID
	Order       []TaskID
	Finish      map[TaskID]float64
	Unscheduled []TaskID
	Feasible    bool
}

// NewSolution creates an empty solution for a fleet of the given size.
func NewSolution(numRobots int) *Solution {
	return &Solution{
		NumRobots:  numRobots,
		Schedules:  make([][]ScheduleEntry, numRobots),
		Assignment: make(map[TaskID][]RobotID),
		Finish:     make(map[TaskID]float64),
		Feasible:   false,
	}
}

// MaxFinish returns the latest end time across all robot timelines.
func (s *Solution) MaxFinish() float64 {
	maxEnd := 0.0
	for _, entries := range s.Schedules {
		for _, e := range entries {
			if e.End > maxEnd {
				maxEnd = e.End
			}
		}
	}
	return maxEnd
}

// CoalitionSize returns how many robots were committed to a task.
func (s *Solution) CoalitionSize(id TaskID) int {
	return len(s.Assignment[id])
}

// solutionJSON mirrors the dataset's result document layout.
type solutionJSON struct {
	Makespan       float64                     `json:"makespan"`
	NumTasks       int                         `json:"n_tasks"`
	NumRobots      int                         `json:"n_robots"`
	RobotSchedules map[RobotID][]ScheduleEntry `json:"robot_schedules"`
	Feasible       bool                        `json:"feasible"`
	Unscheduled    []TaskID                    `json:"unscheduled,omitempty"`
}

// MarshalJSON emits the flat result document used on disk and by the
// HTTP API. Robot ids become object keys, every robot gets an entry
// even when its timeline is empty.
func (s *Solution) MarshalJSON() ([]byte, error) {
	out := solutionJSON{
		Makespan:       s.Makespan,
		NumTasks:       s.NumTasks,
		NumRobots:      s.NumRobots,
		RobotSchedules: make(map[RobotID][]ScheduleEntry, len(s.Schedules)),
		Feasible:       s.Feasible,
		Unscheduled:    s.Unscheduled,
	}
	for i, entries := range s.Schedules {
		if entries == nil {
			entries = []ScheduleEntry{}
		}
		out.RobotSchedules[RobotID(i)] = entries
	}
	return json.Marshal(out)
}
