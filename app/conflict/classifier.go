package conflict

import (
	"strings"
)

var (
	highSeverityWords = []string{
		"killed", "dead", "casualties", "massacre", "nuclear", "invasion",
		"airstrike", "missile strike", "bombing", "dozens", "hundreds",
	}
	mediumSeverityWords = []string{
		"attack", "attacked", "clash", "shelling", "drone", "wounded",
		"offensive",
	}
)

// Classify assigns a severity tier from keyword presence. Any high keyword
// wins over any number of medium ones; everything else is low.
func Classify(text string) Severity {
	lowered := strings.ToLower(text)
	if containsAny(lowered, highSeverityWords) {
		return SeverityHigh
	}
	if containsAny(lowered, mediumSeverityWords) {
		return SeverityMedium
	}
	return SeverityLow
}
