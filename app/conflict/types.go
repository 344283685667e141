package conflict

import (
	"time"
)

// Collection shaping rules.
const (
	// RetentionWindow is how long an event stays in the collection past its
	// timestamp, measured at merge time.
	RetentionWindow = 72 * time.Hour
	// BreakingWindow marks high severity events no older than this as breaking.
	BreakingWindow = 3 * time.Hour
	// IngestWindow rejects fetched items older than this before scoring.
	IngestWindow = 7 * 24 * time.Hour
	// MaxEvents caps the merged collection, keeping the newest entries.
	MaxEvents = 200
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 300
	idTitleLen        = 50
	seenTitleLen      = 40
	idHexLen          = 10
)

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// RawItem is a normalized feed entry before any conflict scoring.
type RawItem struct {
	Title       string
	Link        string
	Description string
	Published   string // raw publication timestamp text, may be empty
	Source      string
}

// CombinedText is the haystack used for keyword and cost matching.
func (r RawItem) CombinedText() string {
	return r.Title + " " + r.Description
}

// Event is a single tracked conflict event, shaped as served to clients.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Severity    Severity  `json:"severity"`
	CostUSD     int64     `json:"cost_usd"`
	CostLabel   string    `json:"cost_label,omitempty"`
	IsNew       bool      `json:"is_new"`
	IsBreaking  bool      `json:"is_breaking"`
}

// Meta summarizes the current collection for the dashboard header.
type Meta struct {
	LastUpdated    time.Time `json:"last_updated"`
	EventCount     int       `json:"event_count"`
	BreakingCount  int       `json:"breaking_count"`
	TodayExtraCost int64     `json:"today_extra_cost"`
	HighCount      int       `json:"high_count"`
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
