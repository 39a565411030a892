// Package dataset loads problem instances and their reference optima
// from the on-disk benchmark layout:
//
//	<base>/problem_instances/problem_instance_1p_000042.json
//	<base>/solutions/optimal_schedule_1p_000042.json
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/core"
)

// ProblemDir and SolutionDir are the dataset subdirectories.
const (
	ProblemDir  = "problem_instances"
	SolutionDir = "solutions"
)

const (
	problemPattern  = "problem_instance_1p_%06d.json"
	solutionPattern = "optimal_schedule_1p_%06d.json"

	// Assembled instances are immutable, so a benchmark sweep can
	// share them freely across runs.
	cacheSize = 1024
)

// ProblemFileName returns the canonical problem file name for an id.
func ProblemFileName(id int) string {
	return fmt.Sprintf(problemPattern, id)
}

// SolutionFileName returns the canonical reference-solution file name.
func SolutionFileName(id int) string {
	return fmt.Sprintf(solutionPattern, id)
}

// OptimalSolution is the reference result stored next to a problem
// instance. Only the makespan matters to the benchmark.
type OptimalSolution struct {
	Makespan float64 `json:"makespan"`
}

// Loader reads instances from a dataset directory and caches the
// assembled ones.
type Loader struct {
	baseDir string
	cache   *lru.Cache[int, *core.Instance]
	logger  *slog.Logger
}

// NewLoader creates a loader rooted at baseDir. A nil logger disables
// logging.
func NewLoader(baseDir string, logger *slog.Logger) (*Loader, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cache, err := lru.New[int, *core.Instance](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create instance cache: %w", err)
	}
	return &Loader{baseDir: baseDir, cache: cache, logger: logger}, nil
}

// ProblemPath returns the path of the numbered problem file.
func (l *Loader) ProblemPath(id int) string {
	return filepath.Join(l.baseDir, ProblemDir, ProblemFileName(id))
}

// SolutionPath returns the path of the matching reference result.
func (l *Loader) SolutionPath(id int) string {
	return filepath.Join(l.baseDir, SolutionDir, SolutionFileName(id))
}

// LoadInstance reads, validates and caches one problem instance.
func (l *Loader) LoadInstance(id int) (*core.Instance, error) {
	if inst, ok := l.cache.Get(id); ok {
		return inst, nil
	}

	path := l.ProblemPath(id)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read problem instance %d: %w", id, err)
	}
	var data core.ProblemData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	inst, err := core.NewInstance(&data)
	if err != nil {
		return nil, fmt.Errorf("problem instance %d invalid: %w", id, err)
	}

	l.cache.Add(id, inst)
	l.logger.Debug("loaded problem instance",
		"instance", id,
		"tasks", inst.NumTasks(),
		"robots", inst.NumRobots())
	return inst, nil
}

// LoadOptimal reads the reference optimum for an instance. A missing
// file is not an error: it returns (nil, nil) and callers decide
// whether to skip the instance.
func (l *Loader) LoadOptimal(id int) (*OptimalSolution, error) {
	path := l.SolutionPath(id)
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read reference solution %d: %w", id, err)
	}
	var opt OptimalSolution
	if err := json.Unmarshal(raw, &opt); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &opt, nil
}

// Load fetches an instance together with its reference optimum. The
// optimum is nil when no solution file exists.
func (l *Loader) Load(id int) (*core.Instance, *OptimalSolution, error) {
	inst, err := l.LoadInstance(id)
	if err != nil {
		return nil, nil, err
	}
	opt, err := l.LoadOptimal(id)
	if err != nil {
		return nil, nil, err
	}
	if opt == nil {
		l.logger.Warn("no reference solution for instance", "instance", id)
	}
	return inst, opt, nil
}
