package gen

import (
	"math"
	"reflect"
	"testing"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/algo"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/core"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/dataset"
)

func TestGenerateDeterministic(t *testing.T) {
	p := DefaultParams()
	a := Generate(p)
	b := Generate(p)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different problem data")
	}

	p.Seed = 2
	c := Generate(p)
	if reflect.DeepEqual(a, c) {
		t.Fatal("different seeds produced identical problem data")
	}
}

func TestGenerateShape(t *testing.T) {
	p := DefaultParams()
	data := Generate(p)

	n := p.NumTasks + 2
	if len(data.ExecutionTimes) != n {
		t.Fatalf("got %d execution times, want %d", len(data.ExecutionTimes), n)
	}
	if len(data.TaskLocations) != n {
		t.Fatalf("got %d locations, want %d", len(data.TaskLocations), n)
	}
	if len(data.TravelTimes) != n {
		t.Fatalf("got %d travel rows, want %d", len(data.TravelTimes), n)
	}
	for i, row := range data.TravelTimes {
		if len(row) != n {
			t.Fatalf("travel row %d has %d columns, want %d", i, len(row), n)
		}
		if row[i] != 0 {
			t.Errorf("travel[%d][%d] = %v, want 0", i, i, row[i])
		}
		for j, v := range row {
			if v != data.TravelTimes[j][i] {
				t.Errorf("travel matrix not symmetric at (%d,%d)", i, j)
			}
			if v < 0 {
				t.Errorf("negative travel time at (%d,%d)", i, j)
			}
		}
	}

	for _, i := range []int{0, n - 1} {
		if data.ExecutionTimes[i] != 0 {
			t.Errorf("dummy task %d has execution time %v", i, data.ExecutionTimes[i])
		}
		for k, v := range data.TaskRequirements[i] {
			if v != 0 {
				t.Errorf("dummy task %d requires skill %d", i, k)
			}
		}
	}

	for i, loc := range data.TaskLocations {
		for _, c := range loc {
			if c < 0 || c >= p.Area {
				t.Errorf("task %d location %v outside workspace", i, loc)
			}
		}
	}
	for i := 1; i <= p.NumTasks; i++ {
		e := data.ExecutionTimes[i]
		if e <= 0 || math.IsInf(e, 0) || math.IsNaN(e) {
			t.Errorf("task %d execution time %v not positive finite", i, e)
		}
	}
}

func TestGenerateForwardPrecedence(t *testing.T) {
	p := DefaultParams()
	p.NumTasks = 20
	p.PrecProb = 0.4
	data := Generate(p)

	if len(data.PrecedenceConstraints) == 0 {
		t.Fatal("expected some precedence pairs at PrecProb=0.4")
	}
	for _, pc := range data.PrecedenceConstraints {
		if pc[0] < 1 || pc[1] > p.NumTasks || pc[0] >= pc[1] {
			t.Errorf("precedence pair %v is not a forward edge between real tasks", pc)
		}
	}
}

func TestGenerateRequiredSkillsCovered(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		p := DefaultParams()
		p.Seed = seed
		p.ReqProb = 0.8
		p.SkillProb = 0.2
		data := Generate(p)

		for k := 0; k < p.NumSkills; k++ {
			required := false
			for i := 1; i <= p.NumTasks; i++ {
				if data.TaskRequirements[i][k] == 1 {
					required = true
					break
				}
			}
			if !required {
				continue
			}
			covered := false
			for _, skills := range data.RobotSkills {
				if skills[k] == 1 {
					covered = true
					break
				}
			}
			if !covered {
				t.Errorf("seed %d: skill %d required but absent from the fleet", seed, k)
			}
		}
	}
}

func TestGeneratedInstancesSchedule(t *testing.T) {
	sched := algo.NewCoalitionGreedy(nil)
	for seed := int64(1); seed <= 5; seed++ {
		p := DefaultParams()
		p.Seed = seed
		inst, err := core.NewInstance(Generate(p))
		if err != nil {
			t.Fatalf("seed %d: generated instance invalid: %v", seed, err)
		}
		sol := sched.Schedule(inst)
		if !sol.Feasible {
			t.Errorf("seed %d: generated instance did not schedule, %d tasks left", seed, len(sol.Unscheduled))
		}
	}
}

func TestWriteInstance(t *testing.T) {
	dir := t.TempDir()
	data := Generate(DefaultParams())

	path, err := WriteInstance(dir, 7, data)
	if err != nil {
		t.Fatalf("WriteInstance: %v", err)
	}

	loader, err := dataset.NewLoader(dir, nil)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	if want := loader.ProblemPath(7); path != want {
		t.Fatalf("wrote to %s, loader expects %s", path, want)
	}
	inst, opt, err := loader.Load(7)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if opt != nil {
		t.Fatal("generator must not fabricate reference solutions")
	}
	if inst.NumTasks() != DefaultParams().NumTasks+2 {
		t.Fatalf("round trip changed task count: %d", inst.NumTasks())
	}
}
