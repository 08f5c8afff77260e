// Package clock abstracts the wall clock and deferred callbacks so that
// timing behaviour can be driven deterministically in tests.
package clock

import "time"

// Clock is injected wherever code would otherwise call time.Now or
// time.AfterFunc directly.
type Clock interface {
	Now() time.Time

	// AfterFunc calls f in its own goroutine (real) or synchronously
	// during Advance (fake) once d has elapsed. If d <= 0, f runs as soon
	// as possible.
	AfterFunc(d time.Duration, f func()) *Timer
}

// Timer is a pending AfterFunc call.
type Timer struct {
	stopFunc func() bool
}

// Stop prevents the Timer from firing. It reports false if the timer
// already fired or was stopped.
func (t *Timer) Stop() bool { return t.stopFunc() }
