package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is a package-level time source so tests can freeze time via SetClock.
// Production code uses the real clock; tests inject a fake for deterministic output.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used for "today", future-date checks and
// launch countdowns. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Now returns the current time from the package clock.
func Now() time.Time {
	return clock.Now()
}

// Today returns the current calendar date in loc as YYYY-MM-DD.
func Today(loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return clock.Now().In(loc).Format(DateLayout)
}
