package core

import (
	"encoding/json"
	"testing"
)

func TestSolutionMaxFinish(t *testing.T) {
	sol := NewSolution(2)
	if got := sol.MaxFinish(); got != 0 {
		t.Errorf("empty MaxFinish = %v, want 0", got)
	}
	sol.Schedules[0] = []ScheduleEntry{{Task: 1, Start: 2, End: 7}}
	sol.Schedules[1] = []ScheduleEntry{{Task: 2, Start: 7, End: 9}, {Task: 3, Start: 9, End: 12}}
	if got := sol.MaxFinish(); got != 12 {
		t.Errorf("MaxFinish = %v, want 12", got)
	}
}

func TestSolutionMarshalJSON(t *testing.T) {
	sol := NewSolution(2)
	sol.Makespan = 9
	sol.NumTasks = 2
	sol.Schedules[1] = []ScheduleEntry{{Task: 1, Start: 2, End: 9}}
	sol.Feasible = true

	raw, err := json.Marshal(sol)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var doc struct {
		Makespan       float64                    `json:"makespan"`
		NumTasks       int                        `json:"n_tasks"`
		NumRobots      int                        `json:"n_robots"`
		RobotSchedules map[string][]ScheduleEntry `json:"robot_schedules"`
		Feasible       bool                       `json:"feasible"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if doc.Makespan != 9 || doc.NumTasks != 2 || doc.NumRobots != 2 {
		t.Errorf("header fields = %+v", doc)
	}
	if !doc.Feasible {
		t.Error("feasible flag not marshaled")
	}
	// Robot ids become string keys; idle robots keep an empty list.
	if entries, ok := doc.RobotSchedules["0"]; !ok || len(entries) != 0 {
		t.Errorf("robot_schedules[\"0\"] = %v, want empty list", entries)
	}
	entries := doc.RobotSchedules["1"]
	if len(entries) != 1 || entries[0].Task != 1 || entries[0].End != 9 {
		t.Errorf("robot_schedules[\"1\"] = %v", entries)
	}
}

func TestSolutionCoalitionSize(t *testing.T) {
	sol := NewSolution(3)
	sol.Assignment[4] = []RobotID{0, 2}
	if got := sol.CoalitionSize(4); got != 2 {
		t.Errorf("CoalitionSize(4) = %d, want 2", got)
	}
	if got := sol.CoalitionSize(5); got != 0 {
		t.Errorf("CoalitionSize(5) = %d, want 0", got)
	}
}
