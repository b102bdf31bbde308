package loop

import "time"

// A Clock tells the current time and blocks the calling goroutine for the
// pacing sleep. Injecting it keeps the frame loop testable with accelerated
// or zero-length frame budgets.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

// NewSystemClock returns a Clock backed by the wall clock.
func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
