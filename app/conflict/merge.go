package conflict

import (
	"slices"
	"time"
)

// Merge combines this run's candidates with the prior collection. Candidates
// win id collisions, surviving prior events are carried forward unchanged,
// and the result is trimmed to the retention window and the collection cap.
// is_breaking is recomputed here for every event that remains.
func Merge(candidates, prior []Event, now time.Time) []Event {
	index := make(map[string]int, len(candidates))
	merged := make([]Event, 0, len(candidates)+len(prior))
	for _, e := range candidates {
		if i, ok := index[e.ID]; ok {
			merged[i] = e
			continue
		}
		index[e.ID] = len(merged)
		merged = append(merged, e)
	}
	for _, e := range prior {
		if _, ok := index[e.ID]; ok {
			continue
		}
		index[e.ID] = len(merged)
		merged = append(merged, e)
	}

	// Events exactly at the retention boundary stay.
	cutoff := now.Add(-RetentionWindow)
	kept := make([]Event, 0, len(merged))
	for _, e := range merged {
		if e.Timestamp.Before(cutoff) {
			continue
		}
		kept = append(kept, e)
	}

	slices.SortStableFunc(kept, func(a, b Event) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	if len(kept) > MaxEvents {
		kept = kept[:MaxEvents]
	}

	breakingCutoff := now.Add(-BreakingWindow)
	for i := range kept {
		kept[i].IsBreaking = kept[i].Severity == SeverityHigh && !kept[i].Timestamp.Before(breakingCutoff)
	}
	return kept
}
