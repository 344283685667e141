package database

import (
	"fmt"
	"time"
)

const defaultRunsLimit = 20

type runRepository struct {
	db *DB
}

// NewRunRepository creates the sqlite-backed run log.
func NewRunRepository(db *DB) RunRepository {
	return &runRepository{db: db}
}

// RecordRun inserts the audit row for a finished ingest cycle.
func (r *runRepository) RecordRun(run Run) error {
	_, err := r.db.Exec(`
		INSERT INTO runs (
			id, started_at, duration_ms, sources_ok, sources_failed,
			items_seen, candidates, event_count, breaking_count,
			high_count, today_cost_usd
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.StartedAt.UTC().Format(time.RFC3339), run.DurationMS,
		run.SourcesOK, run.SourcesFailed, run.ItemsSeen, run.Candidates,
		run.EventCount, run.BreakingCount, run.HighCount, run.TodayCostUSD)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	return nil
}

// RecentRuns returns the newest runs first.
func (r *runRepository) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultRunsLimit
	}

	rows, err := r.db.Query(`
		SELECT id, started_at, duration_ms, sources_ok, sources_failed,
		       items_seen, candidates, event_count, breaking_count,
		       high_count, today_cost_usd
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(
			&run.ID, &run.StartedAt, &run.DurationMS, &run.SourcesOK,
			&run.SourcesFailed, &run.ItemsSeen, &run.Candidates,
			&run.EventCount, &run.BreakingCount, &run.HighCount,
			&run.TodayCostUSD,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run rows: %w", err)
	}

	return runs, nil
}
