package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/debtofwar/tracker/app/conflict"
	"github.com/debtofwar/tracker/app/database"
	"github.com/debtofwar/tracker/app/feed"
	"github.com/debtofwar/tracker/app/store"
	"github.com/debtofwar/tracker/app/tasks"
)

const defaultRunsLimit = 20

func NewHandler(st *store.Store, sources []feed.Source, fetcher *feed.Fetcher,
	eventRepo database.EventRepository, runRepo database.RunRepository,
	scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		store:     st,
		sources:   sources,
		fetcher:   fetcher,
		eventRepo: eventRepo,
		runRepo:   runRepo,
		scheduler: scheduler,
		startedAt: time.Now(),
	}
}

// GetEvents serves the current collection, newest first.
func (h *Handler) GetEvents(c *gin.Context) {
	events := h.store.LoadEvents()
	if events == nil {
		events = []conflict.Event{}
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}

// GetMeta serves the collection summary. Before the first completed ingest
// run there is nothing to serve.
func (h *Handler) GetMeta(c *gin.Context) {
	meta, err := h.store.LoadMeta()
	if err != nil {
		slog.Error("Summary not available", "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "No summary available yet"})
		return
	}

	c.JSON(http.StatusOK, meta)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
		"events":    len(h.store.LoadEvents()),
	}

	if meta, err := h.store.LoadMeta(); err == nil {
		health["collection_age"] = time.Since(meta.LastUpdated).Round(time.Second).String()
	}

	if _, err := h.eventRepo.Stats(); err != nil {
		health["archive"] = "unavailable"
	} else {
		health["archive"] = "ok"
	}

	c.JSON(http.StatusOK, health)
}

// GetStats serves lifetime archive statistics, unlike the rolling collection
// behind /events.
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.eventRepo.Stats()
	if err != nil {
		slog.Error("Database error", "operation", "archive_stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	response := gin.H{
		"archive":              stats,
		"total_cost_formatted": conflict.FormatUSD(stats.TotalCostUSD),
	}

	if runs, err := h.runRepo.RecentRuns(defaultRunsLimit); err == nil {
		response["recent_runs"] = len(runs)
		if len(runs) > 0 {
			response["last_run_at"] = runs[0].StartedAt
		}
	}

	c.JSON(http.StatusOK, response)
}

// APITriggerRun enqueues an immediate ingest cycle.
func (h *Handler) APITriggerRun(c *gin.Context) {
	ingestTask := tasks.NewIngestTask(h.sources, h.fetcher, h.store, h.eventRepo, h.runRepo)
	if err := h.scheduler.EnqueueTask(ingestTask); err != nil {
		slog.Error("Error enqueueing ingest task", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue ingest task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "Ingest run enqueued",
		"task": gin.H{
			"id":   ingestTask.ID,
			"type": ingestTask.Type,
		},
	})
}

// APIListRuns serves recent run history from the archive.
func (h *Handler) APIListRuns(c *gin.Context) {
	limit := defaultRunsLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	runs, err := h.runRepo.RecentRuns(limit)
	if err != nil {
		slog.Error("Database error", "operation", "recent_runs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if runs == nil {
		runs = []database.Run{}
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":  runs,
		"count": len(runs),
	})
}
