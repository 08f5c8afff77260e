package message

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestStandup_RoundTrip(t *testing.T) {
	f := newFixture(t)
	f.dir.handles[1] = "h"

	finish, err := f.store.StandupStart(1, 1, 1)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if finish != epoch.Unix()+1 {
		t.Fatalf("expected finish %d, got %d", epoch.Unix()+1, finish)
	}
	st, _ := f.store.StandupActive(1)
	if !st.IsActive || st.TimeFinish == nil || *st.TimeFinish != finish {
		t.Fatalf("expected active standup, got %+v", st)
	}
	if err := f.store.StandupSend(1, 1, "a"); err != nil {
		t.Fatalf("send a: %v", err)
	}
	if err := f.store.StandupSend(1, 1, "b"); err != nil {
		t.Fatalf("send b: %v", err)
	}
	if f.store.Count(1) != 0 {
		t.Fatalf("expected nothing posted before the window closes")
	}

	f.clock.Advance(time.Second)

	st, _ = f.store.StandupActive(1)
	if st.IsActive || st.TimeFinish != nil {
		t.Fatalf("expected inactive standup, got %+v", st)
	}
	page, _ := f.store.Paginate(1, 1, 0)
	if len(page.Messages) != 1 {
		t.Fatalf("expected exactly one message, got %d", len(page.Messages))
	}
	if got := page.Messages[0]; got.Message != "h: a\nh: b" || got.UserID != 1 {
		t.Fatalf("unexpected standup message %+v", got)
	}
	if f.rec.standups != 0 || f.rec.appended[PathStandup] != 1 {
		t.Fatalf("unexpected recorder state %+v", f.rec)
	}
}

func TestStandup_EmptyBufferPostsNothing(t *testing.T) {
	f := newFixture(t)
	if _, err := f.store.StandupStart(2, 1, 5); err != nil {
		t.Fatalf("start: %v", err)
	}
	f.clock.Advance(5 * time.Second)
	if f.store.Count(1) != 0 {
		t.Fatalf("expected no message for an empty standup")
	}
	if _, err := f.store.StandupStart(2, 1, 5); err != nil {
		t.Fatalf("expected a new standup after the first closed, got %v", err)
	}
}

func TestStandup_Preconditions(t *testing.T) {
	f := newFixture(t)
	if _, err := f.store.StandupStart(3, 1, 5); !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected not-member, got %v", err)
	}
	if _, err := f.store.StandupStart(1, 1, 0); !errors.Is(err, ErrStandupLength) {
		t.Fatalf("expected bad length, got %v", err)
	}
	if err := f.store.StandupSend(1, 1, "early"); !errors.Is(err, ErrStandupInactive) {
		t.Fatalf("expected inactive, got %v", err)
	}
	if _, err := f.store.StandupStart(1, 1, 5); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := f.store.StandupStart(2, 1, 5); !errors.Is(err, ErrStandupActive) {
		t.Fatalf("expected already active, got %v", err)
	}
	if f.clock.Pending() != 1 {
		t.Fatalf("expected a single armed timer, got %d", f.clock.Pending())
	}
	if err := f.store.StandupSend(2, 1, strings.Repeat("x", 1001)); !errors.Is(err, ErrMessageLength) {
		t.Fatalf("expected length error, got %v", err)
	}
	if err := f.store.StandupSend(3, 1, "hi"); !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected not-member, got %v", err)
	}
	if _, err := f.store.StandupActive(77); !errors.Is(err, ErrChannelNotFound) {
		t.Fatalf("expected channel-not-found, got %v", err)
	}
}

func TestStandup_LongBufferSplitsOnLines(t *testing.T) {
	f := newFixture(t)
	f.dir.handles[1] = "h"
	if _, err := f.store.StandupStart(1, 1, 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	line := strings.Repeat("y", 600)
	for i := 0; i < 3; i++ {
		if err := f.store.StandupSend(1, 1, line); err != nil {
			t.Fatalf("send: %v", err)
		}
	}
	f.clock.Advance(time.Second)

	page, _ := f.store.Paginate(1, 1, 0)
	if len(page.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(page.Messages))
	}
	for _, m := range page.Messages {
		if m.Message != "h: "+line {
			t.Fatalf("expected one line per message, got %d chars", len(m.Message))
		}
	}
}

func TestStandup_ClearDiscardsWindow(t *testing.T) {
	f := newFixture(t)
	if _, err := f.store.StandupStart(1, 1, 3); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := f.store.StandupSend(1, 1, "a"); err != nil {
		t.Fatalf("send: %v", err)
	}
	f.store.Clear()
	if f.rec.standups != 0 {
		t.Fatalf("expected active gauge back to 0, got %d", f.rec.standups)
	}
	f.clock.Advance(3 * time.Second)
	if f.store.Count(1) != 0 {
		t.Fatalf("expected cleared standup not to post")
	}
}

func TestSplit_HardBreaksOverlongLine(t *testing.T) {
	s := NewStore(Options{Directory: newFakeDirectory(), Words: fixedWords("cat"), MaxLength: 10})
	got := s.split([]string{"abc", "de", strings.Repeat("z", 25)})
	want := []string{"abc\nde", "zzzzzzzzzz", "zzzzzzzzzz", "zzzzz"}
	if len(got) != len(want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("chunk %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestStandup_LengthBeyondTimerRange(t *testing.T) {
	f := newFixture(t)
	if _, err := f.store.StandupStart(1, 1, int(maxStandupLength)+1); !errors.Is(err, ErrStandupLength) {
		t.Fatalf("expected bad length, got %v", err)
	}
	if f.clock.Pending() != 0 {
		t.Fatalf("expected no timer for a rejected standup, got %d", f.clock.Pending())
	}

	finish, err := f.store.StandupStart(1, 1, int(maxStandupLength))
	if err != nil {
		t.Fatalf("start at the limit: %v", err)
	}
	if finish != epoch.Unix()+maxStandupLength {
		t.Fatalf("expected finish %d, got %d", epoch.Unix()+maxStandupLength, finish)
	}
	f.clock.Advance(24 * time.Hour)
	status, _ := f.store.StandupActive(1)
	if !status.IsActive {
		t.Fatalf("expected a long standup to stay active")
	}
}
