package conflict

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// BuildCandidates runs the scoring pipeline over freshly fetched items: age
// cutoff, relevance filtering, cost estimation, severity classification and
// identity assignment. prior is the previous collection indexed by id; an
// item whose id is absent from it is flagged is_new, and the flag is carried
// unchanged from then on.
func BuildCandidates(items []RawItem, prior map[string]Event, now time.Time) []Event {
	filter := NewFilter()
	oldest := now.Add(-IngestWindow)

	events := make([]Event, 0, len(items))
	for _, item := range items {
		ts := resolveTimestamp(item.Published, now)
		if ts.Before(oldest) {
			continue
		}
		if !filter.Accept(item) {
			continue
		}

		text := item.CombinedText()
		costUSD, costLabel := EstimateCost(text)
		id := EventID(item.Title, ts)
		_, known := prior[id]

		events = append(events, Event{
			ID:          id,
			Title:       truncateRunes(item.Title, maxTitleLen),
			Source:      item.Source,
			URL:         item.Link,
			Description: truncateRunes(item.Description, maxDescriptionLen),
			Timestamp:   ts,
			Severity:    Classify(text),
			CostUSD:     costUSD,
			CostLabel:   costLabel,
			IsNew:       !known,
		})
	}
	return events
}

// IndexByID builds the id lookup used for is_new detection and merging.
func IndexByID(events []Event) map[string]Event {
	index := make(map[string]Event, len(events))
	for _, e := range events {
		index[e.ID] = e
	}
	return index
}

// resolveTimestamp parses the feed-supplied publication time and converts it
// to UTC. Missing or unparseable values fall back to the run time so the
// item still enters the pipeline instead of being dropped.
func resolveTimestamp(published string, now time.Time) time.Time {
	published = strings.TrimSpace(published)
	if published == "" {
		return now
	}
	ts, err := dateparse.ParseAny(published)
	if err != nil {
		return now
	}
	return ts.UTC()
}
