package hangman

import (
	"strings"
	"unicode/utf8"
)

// NoDefinition replaces a missing dictionary entry.
const NoDefinition = "No definition found."

const (
	title         = "HANGMAN MODE!!"
	titleComplete = "HANGMAN MODE COMPLETE!!"
	pleaseLetter  = "PLEASE ENTER A LETTER"
)

// frames are indexed by how far the drawing has progressed; index 10 is
// the full figure.
var frames = [...]string{
	0: "Guess a letter",
	1: "\n\n\n\n\n________",
	2: `
    |
    |
    |
    |
____|____`,
	3: `     _____
    |
    |
    |
    |
____|____`,
	4: `     _____
    |    |
    |
    |
    |
____|____`,
	5: `     _____
    |    |
    |    0
    |
    |
____|____`,
	6: `     _____
    |    |
    |    0
    |    /
    |
____|____`,
	7: `     _____
    |    |
    |    0
    |    /|
    |
____|____`,
	8: `     _____
    |    |
    |    0
    |    /|\
    |
____|____`,
	9: `     _____
    |    |
    |    0
    |    /|\
    |    /
____|____`,
	10: `     _____
    |    |
    |    0
    |    /|\
    |    / \
____|____`,
}

type view struct {
	revealed   string
	incorrect  int
	wrong      string
	definition string
	won        bool
	lost       bool
	rejected   bool
}

// frame maps an incorrect count onto the drawing so that the last allowed
// mistake always shows the full figure.
func (e *Engine) frame(incorrect int) string {
	if incorrect <= 0 {
		return frames[0]
	}
	i := incorrect + (DefaultMaxIncorrect - e.maxIncorrect)
	if i >= len(frames) {
		i = len(frames) - 1
	}
	return frames[i]
}

func (e *Engine) render(v view) string {
	out := e.compose(v)
	if e.maxLength <= 0 || utf8.RuneCountInString(out) <= e.maxLength {
		return out
	}
	// Only the definition is unbounded.
	over := utf8.RuneCountInString(out) - e.maxLength
	def := []rune(v.definition)
	if over < len(def) {
		v.definition = string(def[:len(def)-over])
	} else {
		v.definition = ""
	}
	out = e.compose(v)
	if utf8.RuneCountInString(out) > e.maxLength {
		out = string([]rune(out)[:e.maxLength])
	}
	return out
}

func (e *Engine) compose(v view) string {
	var b strings.Builder
	switch {
	case v.rejected:
		b.WriteString(pleaseLetter)
	case v.won:
		b.WriteString(titleComplete + "\nWELL DONE!\n\n")
		b.WriteString("word: " + v.revealed + "\n")
		b.WriteString("definition: " + v.definition)
		if v.wrong != "" {
			b.WriteString("\nincorrect: " + v.wrong)
		}
	case v.lost:
		b.WriteString(title + "\nYOU LOSE :(\n")
		b.WriteString(frames[len(frames)-1])
		b.WriteString("\n\nThe word was: " + v.revealed + "\n")
		b.WriteString("definition: " + v.definition)
	default:
		b.WriteString(title + "\n")
		b.WriteString(e.frame(v.incorrect))
		b.WriteString("\n\nword: " + v.revealed)
		if v.incorrect > 0 {
			b.WriteString("\nincorrect: " + v.wrong)
		}
	}
	return b.String()
}
