package clock

import (
	"sort"
	"sync"
	"time"
)

// FakeClock is a deterministic Clock for tests. Time only moves when
// Advance or Set is called; AfterFunc callbacks then run synchronously in
// the calling goroutine, in deadline order.
//
// Callbacks run without the clock's lock held, so they may call Now or
// AfterFunc. They must not call Advance.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
	waiters []*fakeWaiter
}

type fakeWaiter struct {
	deadline time.Time
	callback func()
	seq      int
	stopped  bool
	fired    bool
}

// Fake returns a FakeClock set to initial.
func Fake(initial time.Time) *FakeClock {
	return &FakeClock{current: initial}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// AfterFunc registers f to run once the clock reaches now+d. If d <= 0, f
// is called before AfterFunc returns.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) *Timer {
	if d <= 0 {
		f()
		return &Timer{stopFunc: func() bool { return false }}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	w := &fakeWaiter{
		deadline: c.current.Add(d),
		callback: f,
		seq:      len(c.waiters),
	}
	c.waiters = append(c.waiters, w)

	return &Timer{stopFunc: func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		if w.stopped || w.fired {
			return false
		}
		w.stopped = true
		return true
	}}
}

// Advance moves the clock forward by d and runs every callback whose
// deadline is now due.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.current.Add(d)
	c.mu.Unlock()
	c.runUntil(target)
}

// Set moves the clock to t. Moving backwards fires nothing.
func (c *FakeClock) Set(t time.Time) {
	c.runUntil(t)
}

// Pending returns the number of callbacks that have not fired or been
// stopped.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, w := range c.waiters {
		if !w.stopped && !w.fired {
			n++
		}
	}
	return n
}

// runUntil fires due waiters one at a time so that a callback which
// registers a new, already-due waiter sees it fire within the same call.
func (c *FakeClock) runUntil(target time.Time) {
	for {
		c.mu.Lock()
		due := c.nextDueLocked(target)
		if due == nil {
			c.current = target
			c.compactLocked()
			c.mu.Unlock()
			return
		}
		due.fired = true
		if due.deadline.After(c.current) {
			c.current = due.deadline
		}
		c.mu.Unlock()
		due.callback()
	}
}

func (c *FakeClock) nextDueLocked(target time.Time) *fakeWaiter {
	var live []*fakeWaiter
	for _, w := range c.waiters {
		if w.stopped || w.fired || w.deadline.After(target) {
			continue
		}
		live = append(live, w)
	}
	if len(live) == 0 {
		return nil
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].deadline.Equal(live[j].deadline) {
			return live[i].seq < live[j].seq
		}
		return live[i].deadline.Before(live[j].deadline)
	})
	return live[0]
}

func (c *FakeClock) compactLocked() {
	kept := c.waiters[:0]
	for _, w := range c.waiters {
		if !w.stopped && !w.fired {
			kept = append(kept, w)
		}
	}
	c.waiters = kept
}
