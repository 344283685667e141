package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/debtofwar/tracker/app/database"
)

// Rows older than this leave the archive. The live collection keeps its own
// much shorter window; the archive exists for lookback queries.
const archiveHorizon = 90 * 24 * time.Hour

type PruneArchiveTask struct {
	Task
	eventRepo database.EventRepository
}

func NewPruneArchiveTask(eventRepo database.EventRepository) *PruneArchiveTask {
	return &PruneArchiveTask{
		Task:      NewTask(TaskTypePruneArchive, "prune_archive"),
		eventRepo: eventRepo,
	}
}

func (t *PruneArchiveTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	cutoff := time.Now().UTC().Add(-archiveHorizon)

	deleted, err := t.eventRepo.DeleteOlderThan(cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune archive: %w", err)
	}

	slog.Info("Task completed",
		"type", "PruneArchive",
		"duration", t.GetDuration(),
		"cutoff", cutoff.Format(time.RFC3339),
		"deleted", deleted)

	return nil
}
