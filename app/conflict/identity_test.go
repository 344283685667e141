package conflict

import (
	"strings"
	"testing"
	"time"
)

func TestEventID_StableAcrossCalls(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	first := EventID("Missile strike hits port city", ts)
	second := EventID("Missile strike hits port city", ts)

	if first != second {
		t.Errorf("Expected identical ids for identical input, got %s and %s", first, second)
	}
}

func TestEventID_Format(t *testing.T) {
	id := EventID("Some title", time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))

	if len(id) != 10 {
		t.Errorf("Expected 10 character id, got %d (%s)", len(id), id)
	}
	if strings.ToLower(id) != id {
		t.Errorf("Expected lowercase hex id, got %s", id)
	}
	for _, c := range id {
		if !strings.ContainsRune("0123456789abcdef", c) {
			t.Errorf("Expected hex digits only, got %s", id)
			break
		}
	}
}

func TestEventID_DateChangesID(t *testing.T) {
	title := "Shelling resumes along the frontline"
	day1 := EventID(title, time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC))
	day2 := EventID(title, time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC))

	if day1 == day2 {
		t.Errorf("Expected different ids for different calendar dates")
	}
}

func TestEventID_TimeOfDayIgnored(t *testing.T) {
	title := "Shelling resumes along the frontline"
	morning := EventID(title, time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC))
	evening := EventID(title, time.Date(2026, 3, 14, 22, 45, 0, 0, time.UTC))

	if morning != evening {
		t.Errorf("Expected same id for the same calendar date regardless of time")
	}
}

func TestEventID_OnlyTitlePrefixMatters(t *testing.T) {
	ts := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	prefix := strings.Repeat("a", 50)

	first := EventID(prefix+" with one ending", ts)
	second := EventID(prefix+" with a completely different ending", ts)

	if first != second {
		t.Errorf("Expected identical ids when titles share the first 50 characters")
	}

	third := EventID(strings.Repeat("b", 50)+" with one ending", ts)
	if first == third {
		t.Errorf("Expected different ids for different title prefixes")
	}
}
