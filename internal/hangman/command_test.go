package hangman

import "testing"

func TestParse_StartPhraseAnyState(t *testing.T) {
	for _, active := range []bool{false, true} {
		if got := Parse("/hangman start", active); got.Kind != Start {
			t.Fatalf("active=%v: expected start, got %v", active, got.Kind)
		}
	}
	if got := Parse("/hangman  start", false); got.Kind != Ordinary {
		t.Fatalf("expected inexact phrase to be ordinary, got %v", got.Kind)
	}
}

func TestParse_GuessOnlyWhileActive(t *testing.T) {
	if got := Parse("/guess a", false); got.Kind != Ordinary {
		t.Fatalf("expected ordinary while idle, got %v", got.Kind)
	}
	got := Parse("/guess  A", true)
	if got.Kind != Guess || got.Letter != "a" {
		t.Fatalf("expected guess a, got %+v", got)
	}
}

func TestParse_MalformedGuessIsInvalid(t *testing.T) {
	for _, text := range []string{"/guess", "/guess a b", "/guess 1", "/guess a1"} {
		if got := Parse(text, true); got.Kind != Invalid {
			t.Fatalf("%q: expected invalid, got %v", text, got.Kind)
		}
	}
	if got := Parse("hello /guess a", true); got.Kind != Ordinary {
		t.Fatalf("expected ordinary text, got %v", got.Kind)
	}
}
