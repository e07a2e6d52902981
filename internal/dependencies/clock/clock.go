package clock

import "time"

// Clock is the time source for round deadlines, activity stamps and token expiry
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Reached reports whether the deadline has arrived. A deadline equal to now counts as reached.
func Reached(c Clock, deadline time.Time) bool {
	return !c.Now().Before(deadline)
}
