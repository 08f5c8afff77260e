package hangman

import (
	"strings"
	"testing"
)

type fixedWords struct {
	word string
	def  string
}

func (f fixedWords) RandomWord() string { return f.word }

func (f fixedWords) Define(string) (string, bool) { return f.def, f.def != "" }

func newCatEngine() *Engine {
	return NewEngine(fixedWords{word: "cat", def: "a small feline"}, DefaultMaxIncorrect, 1000)
}

func play(e *Engine, g *Game, text string) (string, Outcome) {
	return e.Apply(g, Parse(text, g.Active()))
}

func TestEngine_StartRendersBlankWord(t *testing.T) {
	e := newCatEngine()
	var g Game
	out, outcome := play(e, &g, StartPhrase)
	if outcome != Started || !g.Active() {
		t.Fatalf("expected started game, got %v", outcome)
	}
	if !strings.Contains(out, "Guess a letter") || !strings.Contains(out, "word: _ _ _") {
		t.Fatalf("unexpected start display:\n%s", out)
	}
}

func TestEngine_WinInAnyOrder(t *testing.T) {
	e := newCatEngine()
	var g Game
	play(e, &g, StartPhrase)
	play(e, &g, "/guess t")
	out, outcome := play(e, &g, "/guess c")
	if outcome != Progressed {
		t.Fatalf("expected progress, got %v", outcome)
	}
	if !strings.Contains(out, "word: c _ t") {
		t.Fatalf("unexpected progress display:\n%s", out)
	}
	out, outcome = play(e, &g, "/guess a")
	if outcome != Won {
		t.Fatalf("expected win, got %v", outcome)
	}
	if g.Active() {
		t.Fatalf("expected game to be idle after a win")
	}
	if !strings.Contains(out, "WELL DONE!") || !strings.Contains(out, "definition: a small feline") {
		t.Fatalf("unexpected win display:\n%s", out)
	}
}

func TestEngine_LossAfterTenDistinctWrongGuesses(t *testing.T) {
	e := newCatEngine()
	var g Game
	play(e, &g, StartPhrase)
	wrong := []string{"b", "d", "e", "f", "g", "h", "i", "j", "k"}
	for _, l := range wrong {
		_, outcome := play(e, &g, "/guess "+l)
		if outcome != Progressed {
			t.Fatalf("guess %s: expected progress, got %v", l, outcome)
		}
	}
	// Repeating a wrong guess does not count again.
	if _, outcome := play(e, &g, "/guess b"); outcome != Progressed {
		t.Fatalf("expected repeated guess to keep the game going, got %v", outcome)
	}
	out, outcome := play(e, &g, "/guess l")
	if outcome != Lost {
		t.Fatalf("expected loss, got %v", outcome)
	}
	if g.Active() {
		t.Fatalf("expected game to be idle after a loss")
	}
	if !strings.Contains(out, "YOU LOSE") || !strings.Contains(out, "The word was: cat") {
		t.Fatalf("unexpected loss display:\n%s", out)
	}
}

func TestEngine_NonAlphabeticGuessDoesNotCount(t *testing.T) {
	e := newCatEngine()
	var g Game
	play(e, &g, StartPhrase)
	out, outcome := play(e, &g, "/guess 7")
	if outcome != Rejected || out != pleaseLetter {
		t.Fatalf("expected rejection, got %v %q", outcome, out)
	}
	if len(g.Guesses()) != 0 {
		t.Fatalf("expected no recorded guesses, got %v", g.Guesses())
	}
	out, _ = play(e, &g, "/guess z")
	if !strings.Contains(out, "incorrect: z") {
		t.Fatalf("expected one incorrect guess, got:\n%s", out)
	}
}

func TestEngine_MissingDefinitionUsesPlaceholder(t *testing.T) {
	e := NewEngine(fixedWords{word: "ox"}, DefaultMaxIncorrect, 1000)
	var g Game
	play(e, &g, StartPhrase)
	play(e, &g, "/guess o")
	out, outcome := play(e, &g, "/guess x")
	if outcome != Won || !strings.Contains(out, NoDefinition) {
		t.Fatalf("expected placeholder definition, got %v:\n%s", outcome, out)
	}
}

func TestEngine_DisplayCappedByDefinition(t *testing.T) {
	long := strings.Repeat("x", 2000)
	e := NewEngine(fixedWords{word: "ox", def: long}, DefaultMaxIncorrect, 200)
	var g Game
	play(e, &g, StartPhrase)
	play(e, &g, "/guess o")
	out, _ := play(e, &g, "/guess x")
	if n := len([]rune(out)); n != 200 {
		t.Fatalf("expected display capped at 200, got %d", n)
	}
	if !strings.HasPrefix(out, titleComplete) {
		t.Fatalf("expected header to survive truncation:\n%s", out)
	}
}

func TestEngine_StartWhileActiveRestarts(t *testing.T) {
	e := newCatEngine()
	var g Game
	play(e, &g, StartPhrase)
	play(e, &g, "/guess c")
	play(e, &g, StartPhrase)
	if len(g.Guesses()) != 0 {
		t.Fatalf("expected restart to clear guesses, got %v", g.Guesses())
	}
}
