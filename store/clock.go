package store

import "time"

// Clock supplies the bot's notion of "now", pinned to its operating
// timezone. Day boundaries and the reminder window are both derived
// from it; tests swap in a fixed clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// NewSystemClock returns a Clock backed by the wall clock in loc.
// A nil location falls back to the process-local timezone.
func NewSystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// DayKey formats t as the YYYY-MM-DD bucket key for the calendar day it
// falls on, in t's own location.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
