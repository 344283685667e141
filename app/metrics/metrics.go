package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/debtofwar/tracker/app/conflict"
)

const namespace = "debtofwar"

var (
	// FetchTotal counts feed fetches by source and outcome.
	FetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_fetch_total",
		Help:      "Number of feed fetches by source and status",
	}, []string{"source", "status"})

	// ItemsSeen counts raw items entering the pipeline.
	ItemsSeen = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "items_seen_total",
		Help:      "Number of fetched feed items entering the pipeline",
	})

	// ItemsDiscarded counts items the pipeline rejected before merging.
	ItemsDiscarded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "items_discarded_total",
		Help:      "Number of fetched items rejected by age, relevance or dedup",
	})

	// RunsTotal counts ingest cycles by outcome.
	RunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "runs_total",
		Help:      "Number of ingest runs by status",
	}, []string{"status"})

	// RunDuration tracks how long ingest cycles take.
	RunDuration = prometheus.NewSummary(prometheus.SummaryOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Time spent per ingest run",
	})

	collectionEvents = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "collection_events",
		Help:      "Events in the current collection",
	})

	collectionBreaking = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "collection_breaking_events",
		Help:      "Breaking events in the current collection",
	})

	collectionHigh = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "collection_high_events",
		Help:      "High severity events in the current collection",
	})

	collectionTodayCost = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "collection_today_cost_usd",
		Help:      "Estimated cost in USD of events timestamped today (UTC)",
	})

	lastRunTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix timestamp of the last completed ingest run",
	})
)

func init() {
	prometheus.MustRegister(
		FetchTotal, ItemsSeen, ItemsDiscarded,
		RunsTotal, RunDuration,
		collectionEvents, collectionBreaking, collectionHigh,
		collectionTodayCost, lastRunTimestamp,
	)
}

// ObserveCollection publishes the summary of a freshly merged collection.
func ObserveCollection(meta conflict.Meta) {
	collectionEvents.Set(float64(meta.EventCount))
	collectionBreaking.Set(float64(meta.BreakingCount))
	collectionHigh.Set(float64(meta.HighCount))
	collectionTodayCost.Set(float64(meta.TodayExtraCost))
	lastRunTimestamp.Set(float64(meta.LastUpdated.Unix()))
}

// ObserveRun records the outcome and duration of one ingest cycle.
func ObserveRun(status string, duration time.Duration) {
	RunsTotal.WithLabelValues(status).Inc()
	RunDuration.Observe(duration.Seconds())
}
