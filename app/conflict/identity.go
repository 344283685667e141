package conflict

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// EventID derives a stable identifier from the first 50 characters of the
// title plus the event's UTC calendar date. The same story keeps its id
// across runs even when feeds reorder items or trailing text drifts.
func EventID(title string, ts time.Time) string {
	seed := truncateRunes(title, idTitleLen) + ts.UTC().Format("2006-01-02")
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])[:idHexLen]
}
