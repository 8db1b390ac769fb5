package engine

import (
	"time"

	"github.com/lomazzo/birthkeep/internal/datemath"
)

// Clock abstracts time.Now() to allow deterministic testing.
// It is the only source of "today" in the whole application.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Today returns the civil date of the clock's current moment.
func Today(c Clock) datemath.Date {
	return datemath.FromTime(c.Now())
}
