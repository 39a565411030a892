// Package store persists benchmark runs to SQLite so sweeps can be
// compared over time.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/bench"
)

// Store wraps the benchmark history database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) a SQLite database at path. Use ":memory:"
// for an in-memory database, useful in tests. Callers run Migrate
// before first use.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	// WAL keeps readers cheap while a sweep is being written.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger.With("component", "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *Store) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

// Run is one persisted benchmark sweep.
type Run struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	Dataset       string    `json:"dataset"`
	Scheduler     string    `json:"scheduler"`
	StartID       int       `json:"start_id"`
	EndID         int       `json:"end_id"`
	Processed     int       `json:"processed"`
	Skipped       int       `json:"skipped"`
	AvgRatio      float64   `json:"avg_ratio"`
	AvgDurationMs float64   `json:"avg_duration_ms"`
}

// SaveSummary stores a sweep summary with its per-instance results in
// one transaction and returns the new run id.
func (s *Store) SaveSummary(ctx context.Context, datasetDir string, opts bench.Options, summary *bench.Summary) (string, error) {
	run := Run{
		ID:            "run_" + uuid.New().String()[:8],
		CreatedAt:     time.Now().UTC(),
		Dataset:       datasetDir,
		Scheduler:     summary.Scheduler,
		StartID:       opts.Start,
		EndID:         opts.End,
		Processed:     summary.Processed,
		Skipped:       summary.Skipped,
		AvgRatio:      summary.AvgRatio,
		AvgDurationMs: float64(summary.AvgDuration.Microseconds()) / 1000.0,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	s.logger.Debug("sql", "op", "insert", "table", "bench_runs", "id", run.ID)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO bench_runs (id, created_at, dataset, scheduler, start_id, end_id, processed, skipped, avg_ratio, avg_duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.Format(time.RFC3339Nano), run.Dataset, run.Scheduler,
		run.StartID, run.EndID, run.Processed, run.Skipped, run.AvgRatio, run.AvgDurationMs,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, r := range summary.Results {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO bench_results (run_id, instance_id, n_tasks, n_robots, optimal_makespan, heuristic_makespan, ratio, runtime_ms, feasible)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, r.InstanceID, r.NumTasks, r.NumRobots,
			r.OptimalMakespan, r.HeuristicMakespan, r.Ratio,
			float64(r.Duration.Microseconds())/1000.0, r.Feasible,
		)
		if err != nil {
			return "", fmt.Errorf("insert result for instance %d: %w", r.InstanceID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return run.ID, nil
}

// ListRuns returns recent runs, newest first. A non-positive limit
// defaults to 20.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, dataset, scheduler, start_id, end_id, processed, skipped, avg_ratio, avg_duration_ms
		 FROM bench_runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &created, &r.Dataset, &r.Scheduler, &r.StartID, &r.EndID,
			&r.Processed, &r.Skipped, &r.AvgRatio, &r.AvgDurationMs); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Results returns the per-instance results of a run in instance order.
func (s *Store) Results(ctx context.Context, runID string) ([]bench.Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT instance_id, n_tasks, n_robots, optimal_makespan, heuristic_makespan, ratio, runtime_ms, feasible
		 FROM bench_results WHERE run_id = ? ORDER BY instance_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("load results for %s: %w", runID, err)
	}
	defer rows.Close()

	var results []bench.Result
	for rows.Next() {
		var r bench.Result
		var runtimeMs float64
		if err := rows.Scan(&r.InstanceID, &r.NumTasks, &r.NumRobots,
			&r.OptimalMakespan, &r.HeuristicMakespan, &r.Ratio, &runtimeMs, &r.Feasible); err != nil {
			return nil, err
		}
		r.Duration = time.Duration(runtimeMs * float64(time.Millisecond))
		results = append(results, r)
	}
	return results, rows.Err()
}
