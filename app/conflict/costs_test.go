package conflict

import (
	"testing"
)

func TestEstimateCost(t *testing.T) {
	tests := []struct {
		text          string
		expectedUSD   int64
		expectedLabel string
	}{
		{"Nuclear test announced", 2_000_000_000, "Nuclear weapon deployment"},
		{"Aircraft carrier deployed to the gulf", 800_000_000, "Aircraft carrier operation/day"},
		{"B-2 bombers flew overnight", 135_000, "B-2 bomber sortie/hr"},
		{"F-35 jets scrambled", 36_000, "F-35 sortie/hr"},
		{"F16 squadron relocated", 22_000, "F-16 sortie/hr"},
		{"Tomahawk launched from destroyer", 2_000_000, "Tomahawk cruise missile"},
		{"Patriot battery fired interceptors", 4_000_000, "Patriot interceptor"},
		{"HIMARS rounds hit the depot", 100_000, "HIMARS rocket"},
		{"JDAM kits delivered", 30_000, "JDAM guided bomb"},
		{"Abrams column advances", 10_000_000, "Abrams tank"},
		{"Drone strike on convoy", 50_000, "Drone strike est."},
		{"Air strike flattens warehouse", 500_000, "Airstrike estimated cost"},
		{"Artillery duel across the river", 10_000, "Artillery round"},
		{"Missile intercepted over the city", 500_000, "Missile (generic est.)"},
		{"Roadside bomb defused", 50_000, "Bomb/munition"},
		{"Blast heard downtown", 20_000, "Explosive device"},
		{"Diplomats meet for talks", 0, ""},
	}

	for _, test := range tests {
		usd, label := EstimateCost(test.text)
		if usd != test.expectedUSD {
			t.Errorf("EstimateCost(%q): expected %d, got %d", test.text, test.expectedUSD, usd)
		}
		if label != test.expectedLabel {
			t.Errorf("EstimateCost(%q): expected label %q, got %q", test.text, test.expectedLabel, label)
		}
	}
}

func TestEstimateCost_FirstRowWins(t *testing.T) {
	// Text matches both the nuclear row and the missile row; the table is
	// ordered and the earlier row must win.
	usd, label := EstimateCost("Nuclear-capable missile paraded")
	if usd != 2_000_000_000 || label != "Nuclear weapon deployment" {
		t.Errorf("Expected nuclear row to win, got %d %q", usd, label)
	}
}

func TestEstimateCost_SpecificBeforeGeneric(t *testing.T) {
	// "missile strike" contains no "airstrike"/"air strike" substring, so the
	// generic missile row applies rather than the airstrike row.
	usd, label := EstimateCost("Russia launches missile strike killing dozens in Kyiv")
	if usd != 500_000 {
		t.Errorf("Expected 500000, got %d", usd)
	}
	if label != "Missile (generic est.)" {
		t.Errorf("Expected generic missile label, got %q", label)
	}
}

func TestEstimateCost_ProximityWindow(t *testing.T) {
	// Patriot row requires "missile" or "intercept" within 20 characters.
	usd, _ := EstimateCost("patriot crews completed scheduled training")
	if usd == 4_000_000 {
		t.Errorf("Patriot row should not match without a nearby intercept/missile mention")
	}

	usd, label := EstimateCost("patriot system intercepted the salvo")
	if usd != 4_000_000 || label != "Patriot interceptor" {
		t.Errorf("Expected Patriot interceptor match, got %d %q", usd, label)
	}
}

func TestEstimateCost_CaseInsensitive(t *testing.T) {
	usd, label := EstimateCost("TOMAHAWK STRIKE CONFIRMED")
	if usd != 2_000_000 || label != "Tomahawk cruise missile" {
		t.Errorf("Expected case-insensitive Tomahawk match, got %d %q", usd, label)
	}
}
