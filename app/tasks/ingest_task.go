package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/debtofwar/tracker/app/conflict"
	"github.com/debtofwar/tracker/app/database"
	"github.com/debtofwar/tracker/app/feed"
	"github.com/debtofwar/tracker/app/metrics"
	"github.com/debtofwar/tracker/app/store"
)

// IngestTask runs one full pipeline cycle: fetch all active sources, filter
// and classify the new items, merge them with the prior collection, then
// publish the refreshed collection, summary and archive rows.
type IngestTask struct {
	Task
	sources   []feed.Source
	fetcher   *feed.Fetcher
	store     *store.Store
	eventRepo database.EventRepository
	runRepo   database.RunRepository
}

func NewIngestTask(sources []feed.Source, fetcher *feed.Fetcher, st *store.Store,
	eventRepo database.EventRepository, runRepo database.RunRepository) *IngestTask {
	return &IngestTask{
		Task:      NewTask(TaskTypeIngest, "ingest"),
		sources:   sources,
		fetcher:   fetcher,
		store:     st,
		eventRepo: eventRepo,
		runRepo:   runRepo,
	}
}

func (t *IngestTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	now := time.Now().UTC()
	prior := t.store.LoadEvents()

	results := t.fetcher.FetchAll(ctx, t.sources)

	var items []conflict.RawItem
	sourcesOK := 0
	sourcesFailed := 0
	for _, result := range results {
		if result.Err != nil {
			slog.Warn("Source fetch failed", "source", result.Source, "error", result.Err)
			metrics.FetchTotal.WithLabelValues(result.Source, "error").Inc()
			sourcesFailed++
			continue
		}
		metrics.FetchTotal.WithLabelValues(result.Source, "ok").Inc()
		sourcesOK++
		items = append(items, result.Items...)
	}
	metrics.ItemsSeen.Add(float64(len(items)))

	candidates := conflict.BuildCandidates(items, conflict.IndexByID(prior), now)
	metrics.ItemsDiscarded.Add(float64(len(items) - len(candidates)))

	events := conflict.Merge(candidates, prior, now)
	meta := conflict.BuildMeta(events, now)

	if err := t.store.SaveEvents(events); err != nil {
		return fmt.Errorf("failed to save events: %w", err)
	}
	if err := t.store.SaveMeta(meta); err != nil {
		return fmt.Errorf("failed to save meta: %w", err)
	}

	t.archive(events, meta, now, sourcesOK, sourcesFailed, len(items), len(candidates))
	metrics.ObserveCollection(meta)

	slog.Info("Task completed",
		"type", "Ingest",
		"duration", t.GetDuration(),
		"sources_ok", sourcesOK,
		"sources_failed", sourcesFailed,
		"items", len(items),
		"candidates", len(candidates),
		"events", meta.EventCount,
		"breaking", meta.BreakingCount,
		"today_cost", conflict.FormatUSD(meta.TodayExtraCost))

	return nil
}

// archive mirrors the run into SQLite. The JSON artifacts are the primary
// output, so archive trouble is logged and the run still succeeds.
func (t *IngestTask) archive(events []conflict.Event, meta conflict.Meta, now time.Time,
	sourcesOK, sourcesFailed, itemsSeen, candidates int) {
	if t.eventRepo == nil || t.runRepo == nil {
		return
	}

	if err := t.eventRepo.UpsertEvents(events, now); err != nil {
		slog.Warn("Failed to archive events", "error", err)
	}

	run := database.Run{
		ID:            t.ID,
		StartedAt:     now,
		DurationMS:    t.GetDuration().Milliseconds(),
		SourcesOK:     sourcesOK,
		SourcesFailed: sourcesFailed,
		ItemsSeen:     itemsSeen,
		Candidates:    candidates,
		EventCount:    meta.EventCount,
		BreakingCount: meta.BreakingCount,
		HighCount:     meta.HighCount,
		TodayCostUSD:  meta.TodayExtraCost,
	}
	if err := t.runRepo.RecordRun(run); err != nil {
		slog.Warn("Failed to record run", "error", err)
	}
}
