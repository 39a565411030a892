// Package gen produces synthetic problem instances in the dataset's
// on-disk layout. Generation is deterministic per seed.
package gen

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/algo"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/core"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/dataset"
)

// Params defines generation parameters for one instance.
type Params struct {
	Seed      int64
	NumTasks  int     // real tasks; the two dummies are added on top
	NumRobots int
	NumSkills int
	Area      float64 // side length of the square workspace (meters)
	Speed     float64 // turns distances into travel times (m/s)
	ExecMean  float64 // mean execution time (seconds)
	ExecStd   float64 // execution time std dev (seconds)
	ReqProb   float64 // probability a real task requires a given skill
	SkillProb float64 // probability a robot carries a given skill
	PrecProb  float64 // probability of an edge between two real tasks
}

// DefaultParams mirrors the mid-size instances of the benchmark set.
func DefaultParams() Params {
	return Params{
		Seed:      1,
		NumTasks:  10,
		NumRobots: 4,
		NumSkills: 3,
		Area:      100,
		Speed:     1.0,
		ExecMean:  30,
		ExecStd:   8,
		ReqProb:   0.35,
		SkillProb: 0.45,
		PrecProb:  0.15,
	}
}

// Generate builds one problem. The same params always produce the same
// data. Provided the fleet is non-empty, every skill some task
// requires is planted on at least one robot, so the instance is
// schedulable.
func Generate(p Params) *core.ProblemData {
	rng := rand.New(rand.NewSource(p.Seed))
	n := p.NumTasks + 2 // start and end dummies

	locations := make([][2]float64, n)
	for i := range locations {
		locations[i] = [2]float64{rng.Float64() * p.Area, rng.Float64() * p.Area}
	}

	speed := p.Speed
	if speed <= 0 {
		speed = 1
	}
	travel := make([][]float64, n)
	for i := range travel {
		travel[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a := core.Point{X: locations[i][0], Y: locations[i][1]}
			b := core.Point{X: locations[j][0], Y: locations[j][1]}
			t := a.DistanceTo(b) / speed
			travel[i][j] = t
			travel[j][i] = t
		}
	}

	exec := make([]float64, n)
	dist := algo.NewLogNormalFromMeanStd(p.ExecMean, p.ExecStd)
	tail := dist.Quantile(0.99)
	for i := 1; i <= p.NumTasks; i++ {
		d := dist.Sample(rng)
		if d > tail {
			d = tail // clip the heavy tail
		}
		exec[i] = d
	}

	requirements := make([][]int, n)
	for i := range requirements {
		requirements[i] = make([]int, p.NumSkills)
	}
	for i := 1; i <= p.NumTasks; i++ {
		for k := 0; k < p.NumSkills; k++ {
			if rng.Float64() < p.ReqProb {
				requirements[i][k] = 1
			}
		}
	}

	skills := make([][]int, p.NumRobots)
	for r := range skills {
		skills[r] = make([]int, p.NumSkills)
		for k := 0; k < p.NumSkills; k++ {
			if rng.Float64() < p.SkillProb {
				skills[r][k] = 1
			}
		}
	}

	// Plant missing skills: a requirement nobody in the fleet can meet
	// would make the instance permanently unschedulable.
	if p.NumRobots > 0 {
		for k := 0; k < p.NumSkills; k++ {
			required := false
			for i := 1; i <= p.NumTasks; i++ {
				if requirements[i][k] == 1 {
					required = true
					break
				}
			}
			if !required {
				continue
			}
			covered := false
			for r := range skills {
				if skills[r][k] == 1 {
					covered = true
					break
				}
			}
			if !covered {
				skills[rng.Intn(p.NumRobots)][k] = 1
			}
		}
	}

	// Only forward edges between real tasks, so the graph is acyclic
	// by construction.
	precedence := [][2]int{}
	for i := 1; i <= p.NumTasks; i++ {
		for j := i + 1; j <= p.NumTasks; j++ {
			if rng.Float64() < p.PrecProb {
				precedence = append(precedence, [2]int{i, j})
			}
		}
	}

	return &core.ProblemData{
		TravelTimes:           travel,
		PrecedenceConstraints: precedence,
		ExecutionTimes:        exec,
		TaskLocations:         locations,
		TaskRequirements:      requirements,
		RobotSkills:           skills,
	}
}

// WriteInstance writes the problem file for instance id under baseDir,
// creating the dataset layout as needed. Returns the file path.
func WriteInstance(baseDir string, id int, data *core.ProblemData) (string, error) {
	dir := filepath.Join(baseDir, dataset.ProblemDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	path := filepath.Join(dir, dataset.ProblemFileName(id))
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
