package message

import (
	"errors"
	"fmt"
	"testing"
)

func TestPaginate_EmptyChannel(t *testing.T) {
	f := newFixture(t)
	page, err := f.store.Paginate(1, 1, 0)
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if len(page.Messages) != 0 || page.Start != 0 || page.End != -1 {
		t.Fatalf("expected empty page, got %+v", page)
	}
	if page.Messages == nil {
		t.Fatalf("expected a non-nil empty slice")
	}
}

func TestPaginate_StartAtTotalReturnsOneMessage(t *testing.T) {
	f := newFixture(t)
	oldest := f.send(t, 1, "one")
	f.send(t, 1, "two")
	f.send(t, 1, "three")

	page, err := f.store.Paginate(1, 1, 3)
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	// Kept for compatibility: start == total yields one message, not zero.
	if len(page.Messages) != 1 || page.End != -1 {
		t.Fatalf("expected exactly one message and end -1, got %+v", page)
	}
	if page.Messages[0].MessageID != oldest {
		t.Fatalf("expected oldest message %d, got %d", oldest, page.Messages[0].MessageID)
	}

	if _, err := f.store.Paginate(1, 1, 4); !errors.Is(err, ErrInvalidStart) {
		t.Fatalf("expected invalid start, got %v", err)
	}
	if _, err := f.store.Paginate(1, 1, -1); !errors.Is(err, ErrInvalidStart) {
		t.Fatalf("expected invalid start for negative, got %v", err)
	}
}

func TestPaginate_Windows(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 120; i++ {
		f.send(t, 1, fmt.Sprintf("m%d", i))
	}

	page, err := f.store.Paginate(1, 1, 0)
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if len(page.Messages) != 50 || page.End != 50 {
		t.Fatalf("expected 50 messages ending at 50, got %d/%d", len(page.Messages), page.End)
	}
	if page.Messages[0].Message != "m119" || page.Messages[49].Message != "m70" {
		t.Fatalf("expected newest-first window, got %s..%s", page.Messages[0].Message, page.Messages[49].Message)
	}

	page, _ = f.store.Paginate(1, 1, 50)
	if page.Messages[0].Message != "m69" || page.End != 100 {
		t.Fatalf("expected second window from m69, got %s end %d", page.Messages[0].Message, page.End)
	}

	page, _ = f.store.Paginate(1, 1, 100)
	if len(page.Messages) != 20 || page.End != -1 {
		t.Fatalf("expected final 20 with end -1, got %d/%d", len(page.Messages), page.End)
	}
	if page.Messages[19].Message != "m0" {
		t.Fatalf("expected oldest last, got %s", page.Messages[19].Message)
	}

	page, _ = f.store.Paginate(1, 1, 70)
	if len(page.Messages) != 50 || page.End != -1 {
		t.Fatalf("expected exactly 50 remaining with end -1, got %d/%d", len(page.Messages), page.End)
	}
}

func TestPaginate_RequiresMembership(t *testing.T) {
	f := newFixture(t)
	if _, err := f.store.Paginate(3, 1, 0); !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected not-member, got %v", err)
	}
}
