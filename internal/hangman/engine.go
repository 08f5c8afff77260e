package hangman

import "strings"

// Outcome is what a command did to the game.
type Outcome int

const (
	NoChange Outcome = iota
	Started
	Progressed
	Won
	Lost
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Started:
		return "started"
	case Progressed:
		return "progressed"
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Rejected:
		return "rejected"
	default:
		return "none"
	}
}

// Words supplies secret words and their definitions.
type Words interface {
	RandomWord() string
	Define(word string) (string, bool)
}

// Engine applies parsed commands to a Game and renders the message body
// that replaces the submitted text.
type Engine struct {
	words        Words
	maxIncorrect int
	maxLength    int
}

// NewEngine returns an Engine. maxIncorrect is clamped to 1..10 and
// maxLength (in code points) bounds every rendered display.
func NewEngine(words Words, maxIncorrect, maxLength int) *Engine {
	if maxIncorrect <= 0 || maxIncorrect > DefaultMaxIncorrect {
		maxIncorrect = DefaultMaxIncorrect
	}
	return &Engine{words: words, maxIncorrect: maxIncorrect, maxLength: maxLength}
}

// Apply runs cmd against g. For Ordinary commands it returns ("",
// NoChange) and the caller keeps the submitted text.
func (e *Engine) Apply(g *Game, cmd Command) (string, Outcome) {
	switch cmd.Kind {
	case Start:
		g.start(e.words.RandomWord())
		revealed, _ := g.revealed()
		return e.render(view{revealed: revealed}), Started
	case Guess:
		if !g.Active() {
			return "", NoChange
		}
		g.guess(cmd.Letter)
		return e.evaluate(g)
	case Invalid:
		return e.render(view{rejected: true}), Rejected
	default:
		return "", NoChange
	}
}

func (e *Engine) evaluate(g *Game) (string, Outcome) {
	revealed, hidden := g.revealed()
	wrong := g.incorrect()
	v := view{
		revealed:  revealed,
		incorrect: len(wrong),
		wrong:     strings.Join(wrong, " "),
	}

	switch {
	case len(wrong) >= e.maxIncorrect:
		v.lost = true
		v.revealed = g.word
		v.definition = e.define(g.word)
		g.end()
		return e.render(v), Lost
	case !hidden:
		v.won = true
		v.definition = e.define(g.word)
		g.end()
		return e.render(v), Won
	}
	return e.render(v), Progressed
}

func (e *Engine) define(word string) string {
	if e.words == nil {
		return NoDefinition
	}
	def, ok := e.words.Define(word)
	if !ok || strings.TrimSpace(def) == "" {
		return NoDefinition
	}
	return def
}
