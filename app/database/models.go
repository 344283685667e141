package database

import (
	"time"
)

// Run records one completed ingest cycle for the audit trail.
type Run struct {
	ID            string    `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	DurationMS    int64     `json:"duration_ms"`
	SourcesOK     int       `json:"sources_ok"`
	SourcesFailed int       `json:"sources_failed"`
	ItemsSeen     int       `json:"items_seen"`
	Candidates    int       `json:"candidates"`
	EventCount    int       `json:"event_count"`
	BreakingCount int       `json:"breaking_count"`
	HighCount     int       `json:"high_count"`
	TodayCostUSD  int64     `json:"today_cost_usd"`
}

// ArchiveStats aggregates the events table for the stats endpoint. Unlike
// the live collection it spans everything the tracker has ever archived.
type ArchiveStats struct {
	TotalEvents  int            `json:"total_events"`
	BySeverity   map[string]int `json:"by_severity"`
	TotalCostUSD int64          `json:"total_cost_usd"`
}
