package apperr

import (
	"errors"
	"fmt"
	"testing"
)

var errSample = NotFound("thing not found")

func TestCodeOf_WrappedAppError(t *testing.T) {
	err := fmt.Errorf("lookup: %w", errSample)
	if got := CodeOf(err); got != CodeNotFound {
		t.Fatalf("expected %s, got %s", CodeNotFound, got)
	}
	if !errors.Is(err, errSample) {
		t.Fatalf("expected errors.Is to match the sentinel")
	}
}

func TestCodeOf_PlainErrorIsInternal(t *testing.T) {
	if got := CodeOf(errors.New("boom")); got != CodeInternal {
		t.Fatalf("expected %s, got %s", CodeInternal, got)
	}
	if got := CodeOf(nil); got != "" {
		t.Fatalf("expected empty code for nil, got %s", got)
	}
}

func TestIs_MatchesEqualCodeAndMessage(t *testing.T) {
	a := Forbidden("nope")
	b := Forbidden("nope")
	if !errors.Is(a, b) {
		t.Fatalf("expected equal code+message to match")
	}
	if errors.Is(a, Forbidden("other")) {
		t.Fatalf("expected different message not to match")
	}
}

func TestWrap_KeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(CodeInternal, "save failed", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable")
	}
	if err.Error() != "save failed: disk full" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
