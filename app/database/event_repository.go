package database

import (
	"fmt"
	"time"

	"github.com/debtofwar/tracker/app/conflict"
)

// eventRepository persists events in sqlite. first_seen_at is set on insert
// and never touched afterwards; every other column follows the latest run.
type eventRepository struct {
	db *DB
}

// NewEventRepository creates the sqlite-backed event archive.
func NewEventRepository(db *DB) EventRepository {
	return &eventRepository{db: db}
}

// UpsertEvents stores a merged collection snapshot in one transaction.
// Timestamps are stored as RFC3339 UTC text so range scans stay correct.
func (r *eventRepository) UpsertEvents(events []conflict.Event, seenAt time.Time) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO events (
			id, title, source, url, description, timestamp,
			severity, cost_usd, cost_label, first_seen_at, last_seen_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			source = excluded.source,
			url = excluded.url,
			description = excluded.description,
			timestamp = excluded.timestamp,
			severity = excluded.severity,
			cost_usd = excluded.cost_usd,
			cost_label = excluded.cost_label,
			last_seen_at = excluded.last_seen_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	seen := seenAt.UTC().Format(time.RFC3339)
	for _, e := range events {
		_, err := stmt.Exec(
			e.ID, e.Title, e.Source, e.URL, e.Description,
			e.Timestamp.UTC().Format(time.RFC3339),
			string(e.Severity), e.CostUSD, e.CostLabel,
			seen, seen,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert event %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit upsert: %w", err)
	}

	return nil
}

// Stats aggregates the whole archive.
func (r *eventRepository) Stats() (ArchiveStats, error) {
	stats := ArchiveStats{BySeverity: make(map[string]int)}

	rows, err := r.db.Query(`SELECT severity, COUNT(*) FROM events GROUP BY severity`)
	if err != nil {
		return stats, fmt.Errorf("failed to query severity breakdown: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var severity string
		var count int
		if err := rows.Scan(&severity, &count); err != nil {
			return stats, fmt.Errorf("failed to scan severity row: %w", err)
		}
		stats.BySeverity[severity] = count
		stats.TotalEvents += count
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("error iterating severity rows: %w", err)
	}

	if err := r.db.QueryRow(`SELECT COALESCE(SUM(cost_usd), 0) FROM events`).Scan(&stats.TotalCostUSD); err != nil {
		return stats, fmt.Errorf("failed to sum archived cost: %w", err)
	}

	return stats, nil
}

// DeleteOlderThan removes archived events with timestamps before the cutoff
// and returns how many rows were deleted.
func (r *eventRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM events WHERE timestamp < ?`, cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("failed to prune events: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned events: %w", err)
	}

	return deleted, nil
}
