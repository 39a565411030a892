package algo

import (
	"reflect"
	"testing"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/core"
)

func TestTaskOrderCommitsInIDOrder(t *testing.T) {
	inst := mustInstance(t, shortFirstData())
	sol := NewTaskOrder(nil).Schedule(inst)

	if !sol.Feasible {
		t.Fatal("expected a feasible schedule")
	}
	if !reflect.DeepEqual(sol.Order, []core.TaskID{1, 2}) {
		t.Errorf("Order = %v, want [1 2]", sol.Order)
	}
	// Committing the long task first costs four time units against
	// the earliest-finish rule on the same instance.
	if sol.Makespan != 19 {
		t.Errorf("Makespan = %v, want 19", sol.Makespan)
	}
	greedy := NewCoalitionGreedy(nil).Schedule(inst)
	if greedy.Makespan > sol.Makespan {
		t.Errorf("earliest-finish makespan %v exceeds baseline %v", greedy.Makespan, sol.Makespan)
	}
}

func TestTaskOrderRespectsPrecedence(t *testing.T) {
	data := shortFirstData()
	data.PrecedenceConstraints = [][2]int{{2, 1}}
	inst := mustInstance(t, data)
	sol := NewTaskOrder(nil).Schedule(inst)

	if !sol.Feasible {
		t.Fatal("expected a feasible schedule")
	}
	// Task 1 is skipped while its predecessor is pending.
	if !reflect.DeepEqual(sol.Order, []core.TaskID{2, 1}) {
		t.Errorf("Order = %v, want [2 1]", sol.Order)
	}
}

func TestTaskOrderStall(t *testing.T) {
	data := complementaryData()
	data.RobotSkills = [][]int{{1, 0}}
	inst := mustInstance(t, data)
	sol := NewTaskOrder(nil).Schedule(inst)

	if sol.Feasible {
		t.Fatal("expected an infeasible outcome")
	}
	if !reflect.DeepEqual(sol.Unscheduled, []core.TaskID{2}) {
		t.Errorf("Unscheduled = %v, want [2]", sol.Unscheduled)
	}
}
