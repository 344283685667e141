package database

import (
	"time"

	"github.com/debtofwar/tracker/app/conflict"
)

// EventRepository archives every event the pipeline has kept, beyond the
// short retention window of the live collection.
type EventRepository interface {
	UpsertEvents(events []conflict.Event, seenAt time.Time) error
	Stats() (ArchiveStats, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

// RunRepository records completed ingest cycles.
type RunRepository interface {
	RecordRun(run Run) error
	RecentRuns(limit int) ([]Run, error)
}
