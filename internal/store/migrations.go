package store

import (
	"context"
	"database/sql"
)

// schema contains the DDL for the benchmark history tables.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS bench_runs (
		id              TEXT PRIMARY KEY,
		created_at      TEXT NOT NULL,
		dataset         TEXT NOT NULL,
		scheduler       TEXT NOT NULL,
		start_id        INTEGER NOT NULL,
		end_id          INTEGER NOT NULL,
		processed       INTEGER NOT NULL,
		skipped         INTEGER NOT NULL DEFAULT 0,
		avg_ratio       REAL NOT NULL,
		avg_duration_ms REAL NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS bench_results (
		run_id             TEXT NOT NULL REFERENCES bench_runs(id) ON DELETE CASCADE,
		instance_id        INTEGER NOT NULL,
		n_tasks            INTEGER NOT NULL,
		n_robots           INTEGER NOT NULL,
		optimal_makespan   REAL NOT NULL,
		heuristic_makespan REAL NOT NULL,
		ratio              REAL NOT NULL,
		runtime_ms         REAL NOT NULL,
		feasible           INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (run_id, instance_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_bench_results_run_id ON bench_results(run_id)`,
	`CREATE INDEX IF NOT EXISTS idx_bench_runs_scheduler ON bench_runs(scheduler)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
