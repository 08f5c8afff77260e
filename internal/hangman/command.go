package hangman

import (
	"strings"
	"unicode"
)

// StartPhrase is the exact message body that starts a game.
const StartPhrase = "/hangman start"

const guessPrefix = "/guess"

// Kind tags a parsed chat command.
type Kind int

const (
	// Ordinary text is appended verbatim.
	Ordinary Kind = iota
	Start
	Guess
	// Invalid is a /guess while a game is running that does not name a
	// single alphabetic guess.
	Invalid
)

func (k Kind) String() string {
	switch k {
	case Start:
		return "start"
	case Guess:
		return "guess"
	case Invalid:
		return "invalid"
	default:
		return "ordinary"
	}
}

// Command is the result of Parse. Letter is set for Guess and is lower
// case.
type Command struct {
	Kind   Kind
	Letter string
}

// Parse classifies text before any game state is touched. active reports
// whether a game is running in the channel; /guess is ordinary text
// otherwise.
func Parse(text string, active bool) Command {
	if text == StartPhrase {
		return Command{Kind: Start}
	}
	if !active {
		return Command{Kind: Ordinary}
	}
	fields := strings.Fields(text)
	if len(fields) == 0 || fields[0] != guessPrefix {
		return Command{Kind: Ordinary}
	}
	if len(fields) != 2 || !isAlpha(fields[1]) {
		return Command{Kind: Invalid}
	}
	return Command{Kind: Guess, Letter: strings.ToLower(fields[1])}
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
