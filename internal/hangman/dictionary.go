package hangman

import (
	_ "embed"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed words.yaml
var defaultWords []byte

// Entry is one dictionary word.
type Entry struct {
	Word       string `yaml:"word"`
	Definition string `yaml:"definition"`
}

type dictionaryFile struct {
	Words []Entry `yaml:"words"`
}

// Dictionary is a fixed word list loaded from YAML.
type Dictionary struct {
	words []string
	defs  map[string]string
	pick  func(n int) int
}

// DefaultDictionary returns the built-in word list.
func DefaultDictionary() (*Dictionary, error) {
	return parseDictionary(defaultWords)
}

// LoadDictionary reads a word list from path. An empty path selects the
// built-in list.
func LoadDictionary(path string) (*Dictionary, error) {
	if path == "" {
		return DefaultDictionary()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary %s: %w", path, err)
	}
	d, err := parseDictionary(data)
	if err != nil {
		return nil, fmt.Errorf("dictionary %s: %w", path, err)
	}
	return d, nil
}

func parseDictionary(data []byte) (*Dictionary, error) {
	var f dictionaryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse dictionary: %w", err)
	}
	d := &Dictionary{defs: make(map[string]string), pick: rand.IntN}
	for _, e := range f.Words {
		w := strings.ToLower(strings.TrimSpace(e.Word))
		if w == "" || !isAlpha(w) {
			continue
		}
		if _, dup := d.defs[w]; !dup {
			d.words = append(d.words, w)
		}
		d.defs[w] = strings.TrimSpace(e.Definition)
	}
	if len(d.words) == 0 {
		return nil, fmt.Errorf("dictionary has no usable words")
	}
	return d, nil
}

// Len returns the number of words.
func (d *Dictionary) Len() int { return len(d.words) }

// RandomWord picks a word uniformly.
func (d *Dictionary) RandomWord() string {
	return d.words[d.pick(len(d.words))]
}

// Define returns the definition of word, if one is known.
func (d *Dictionary) Define(word string) (string, bool) {
	def, ok := d.defs[strings.ToLower(word)]
	if !ok || def == "" {
		return "", false
	}
	return def, true
}
