package hangman

import "strings"

// DefaultMaxIncorrect is the number of distinct wrong guesses that ends a
// game.
const DefaultMaxIncorrect = 10

// Game is the per-channel hangman state. The zero value is an idle game.
// Game is not safe for concurrent use; callers serialize access per
// channel.
type Game struct {
	word    string
	guesses []string
}

// Active reports whether a word is in play.
func (g *Game) Active() bool { return g.word != "" }

// Word returns the secret word, or "" when idle.
func (g *Game) Word() string { return g.word }

// Guesses returns the raw guess log in submission order.
func (g *Game) Guesses() []string {
	out := make([]string, len(g.guesses))
	copy(out, g.guesses)
	return out
}

func (g *Game) start(word string) {
	g.word = strings.ToLower(word)
	g.guesses = nil
}

func (g *Game) end() {
	g.word = ""
	g.guesses = nil
}

func (g *Game) guess(letter string) {
	g.guesses = append(g.guesses, letter)
}

// revealed renders the word with unguessed letters as underscores, and
// reports whether any letter is still hidden.
func (g *Game) revealed() (string, bool) {
	seen := make(map[string]bool, len(g.guesses))
	for _, gs := range g.guesses {
		seen[gs] = true
	}
	hidden := false
	parts := make([]string, 0, len(g.word))
	for _, r := range g.word {
		l := string(r)
		if seen[l] {
			parts = append(parts, l)
			continue
		}
		parts = append(parts, "_")
		hidden = true
	}
	return strings.Join(parts, " "), hidden
}

// incorrect returns the distinct guesses that do not occur in the word, in
// the order they were first made.
func (g *Game) incorrect() []string {
	var out []string
	counted := make(map[string]bool)
	for _, gs := range g.guesses {
		if counted[gs] || strings.Contains(g.word, gs) {
			continue
		}
		counted[gs] = true
		out = append(out, gs)
	}
	return out
}
