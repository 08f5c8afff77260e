package hangman

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultDictionary_Loads(t *testing.T) {
	d, err := DefaultDictionary()
	if err != nil {
		t.Fatalf("default dictionary: %v", err)
	}
	if d.Len() == 0 {
		t.Fatalf("expected words")
	}
	w := d.RandomWord()
	if !isAlpha(w) {
		t.Fatalf("expected alphabetic word, got %q", w)
	}
	if _, ok := d.Define("cat"); !ok {
		t.Fatalf("expected a definition for cat")
	}
}

func TestLoadDictionary_SkipsUnusableEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.yaml")
	data := "words:\n  - word: Moose\n  - word: two words\n  - word: \"42\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	d, err := LoadDictionary(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if d.Len() != 1 || d.RandomWord() != "moose" {
		t.Fatalf("expected only moose, got %d words", d.Len())
	}
	if _, ok := d.Define("moose"); ok {
		t.Fatalf("expected no definition")
	}
}

func TestLoadDictionary_EmptyIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.yaml")
	if err := os.WriteFile(path, []byte("words: []\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadDictionary(path); err == nil {
		t.Fatalf("expected error for empty dictionary")
	}
}
