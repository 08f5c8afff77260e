package user

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/adhocore/gronx"

	"github.com/notepid/flockr/internal/clock"
)

// DefaultPurgeCron runs the session sweep every fifteen minutes.
const DefaultPurgeCron = "*/15 * * * *"

const retryDelay = 30 * time.Second

// Sweeper purges expired sessions on a cron schedule.
type Sweeper struct {
	sessions *Sessions
	clock    clock.Clock
	expr     string

	mu      sync.Mutex
	timer   *clock.Timer
	stopped bool
	runs    int
}

// NewSweeper validates expr and returns an idle sweeper.
func NewSweeper(sessions *Sessions, clk clock.Clock, expr string) (*Sweeper, error) {
	if expr == "" {
		expr = DefaultPurgeCron
	}
	if !gronx.IsValid(expr) {
		return nil, fmt.Errorf("invalid purge cron expression: %s", expr)
	}
	if clk == nil {
		clk = clock.Real()
	}
	return &Sweeper{sessions: sessions, clock: clk, expr: expr}, nil
}

// Start arms the first sweep and stops the schedule when ctx is done.
func (s *Sweeper) Start(ctx context.Context) {
	s.schedule()
	go func() {
		<-ctx.Done()
		s.Stop()
	}()
}

// Stop cancels the pending sweep.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
	}
}

// Runs returns how many sweeps have completed.
func (s *Sweeper) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

func (s *Sweeper) schedule() {
	now := s.clock.Now()
	wait := retryDelay
	next, err := gronx.NextTickAfter(s.expr, now, false)
	if err != nil {
		log.Printf("sessions: next sweep for %q: %v", s.expr, err)
	} else {
		wait = next.Sub(now)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.timer = s.clock.AfterFunc(wait, s.run)
}

func (s *Sweeper) run() {
	n, err := s.sessions.Purge()
	if err != nil {
		log.Printf("sessions: sweep failed: %v", err)
	} else if n > 0 {
		log.Printf("sessions: purged %d expired sessions", n)
	}

	s.mu.Lock()
	s.runs++
	s.mu.Unlock()
	s.schedule()
}
