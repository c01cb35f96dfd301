package engine

import "time"

// now is swapped in tests for deterministic months and timestamps.
var now = time.Now

func timestamp() string {
	return now().Format("2006-01-02T15:04:05")
}

// CurrentMonthID returns the current month as "YYYY-MM". Month ids sort
// lexicographically in chronological order, which the archival and
// snapshot logic relies on.
func CurrentMonthID() string {
	return now().Format("2006-01")
}

// Today returns the current date as "YYYY-MM-DD".
func Today() string {
	return now().Format("2006-01-02")
}
