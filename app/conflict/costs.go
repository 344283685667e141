package conflict

import (
	"regexp"
)

type costEntry struct {
	pattern *regexp.Regexp
	usd     int64
	label   string
}

func costRow(pattern string, usd int64, label string) costEntry {
	return costEntry{regexp.MustCompile("(?i)" + pattern), usd, label}
}

// Rough unit costs for weapon systems mentioned in reporting. Order matters:
// specific systems come before generic munition categories and the first
// matching row wins.
var costTable = []costEntry{
	costRow(`nuclear|nuke`, 2_000_000_000, "Nuclear weapon deployment"),
	costRow(`aircraft carrier`, 800_000_000, "Aircraft carrier operation/day"),
	costRow(`B-2|B2 bomber`, 135_000, "B-2 bomber sortie/hr"),
	costRow(`F-35|F35`, 36_000, "F-35 sortie/hr"),
	costRow(`F-16|F16`, 22_000, "F-16 sortie/hr"),
	costRow(`tomahawk`, 2_000_000, "Tomahawk cruise missile"),
	costRow(`patriot.{0,20}(missile|intercept)`, 4_000_000, "Patriot interceptor"),
	costRow(`HIMARS|himars`, 100_000, "HIMARS rocket"),
	costRow(`JDAM|jdam`, 30_000, "JDAM guided bomb"),
	costRow(`abrams|tank.{0,10}(destroy|hit)`, 10_000_000, "Abrams tank"),
	costRow(`drone.{0,20}(strike|attack)`, 50_000, "Drone strike est."),
	costRow(`airstrike|air strike`, 500_000, "Airstrike estimated cost"),
	costRow(`artillery|shelling|shell`, 10_000, "Artillery round"),
	costRow(`missile`, 500_000, "Missile (generic est.)"),
	costRow(`bomb`, 50_000, "Bomb/munition"),
	costRow(`explosion|blast`, 20_000, "Explosive device"),
}

// EstimateCost scans text against the cost table and returns the first
// matching row's dollar figure and label, or (0, "") when nothing matches.
func EstimateCost(text string) (int64, string) {
	for _, entry := range costTable {
		if entry.pattern.MatchString(text) {
			return entry.usd, entry.label
		}
	}
	return 0, ""
}
