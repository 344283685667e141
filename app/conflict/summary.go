package conflict

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// BuildMeta computes the dashboard summary for a final collection.
// TodayExtraCost sums cost_usd over events timestamped on or after the start
// of the current UTC calendar day.
func BuildMeta(events []Event, now time.Time) Meta {
	now = now.UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	meta := Meta{
		LastUpdated: now,
		EventCount:  len(events),
	}
	for _, e := range events {
		if e.IsBreaking {
			meta.BreakingCount++
		}
		if e.Severity == SeverityHigh {
			meta.HighCount++
		}
		if !e.Timestamp.Before(dayStart) {
			meta.TodayExtraCost += e.CostUSD
		}
	}
	return meta
}

var usdPrinter = message.NewPrinter(language.English)

// FormatUSD renders a dollar amount with thousands separators for logs and
// the stats endpoint, e.g. 2000000 becomes "$2,000,000".
func FormatUSD(amount int64) string {
	return usdPrinter.Sprintf("$%d", amount)
}
