package words

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spelltutor/internal/state"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog failed: %v", err)
	}

	stats := c.Stats()
	if stats.Easy == 0 || stats.Medium == 0 || stats.Hard == 0 {
		t.Errorf("Expected all pools to be populated, got %+v", stats)
	}
	if stats.Letters != len(Alphabet) {
		t.Errorf("Expected %d letters, got %d", len(Alphabet), stats.Letters)
	}

	// Every letter list only holds words starting with that letter.
	for letter, list := range c.LetterToSpellings {
		for _, w := range list {
			if !strings.HasPrefix(strings.ToUpper(w), letter) {
				t.Errorf("Word %q listed under %s", w, letter)
			}
		}
	}
}

func TestCatalog_RandomWord(t *testing.T) {
	c, _ := DefaultCatalog()
	c.Seed(1)
	ctx := context.Background()

	for _, d := range state.Difficulties {
		e, err := c.RandomWord(ctx, d)
		if err != nil {
			t.Fatalf("RandomWord(%s) failed: %v", d, err)
		}
		if e.Word == "" || e.Hint == "" || e.Jumbled == "" {
			t.Errorf("Incomplete entry for %s: %+v", d, e)
		}
	}

	if _, err := c.RandomWord(ctx, state.Difficulty("extreme")); !errors.Is(err, state.ErrInvalidDifficulty) {
		t.Errorf("Expected ErrInvalidDifficulty, got %v", err)
	}
}

func TestCatalog_LetterWords(t *testing.T) {
	c, err := ParseCatalog([]byte(`{"letterToSpellings": {"b": ["bat", "ball"]}}`))
	if err != nil {
		t.Fatalf("ParseCatalog failed: %v", err)
	}

	lw, err := c.LetterWords(context.Background(), "B")
	if err != nil {
		t.Fatalf("LetterWords failed: %v", err)
	}
	if lw.Letter != "B" {
		t.Errorf("Expected letter B, got %s", lw.Letter)
	}
	if len(lw.Words) != 2 {
		t.Errorf("Expected 2 words, got %v", lw.Words)
	}
	if lw.Random != "bat" && lw.Random != "ball" {
		t.Errorf("Random word %q is not in the list", lw.Random)
	}

	// Lower case lookups work too.
	if _, err := c.LetterWords(context.Background(), "b"); err != nil {
		t.Errorf("Lower case lookup failed: %v", err)
	}

	if _, err := c.LetterWords(context.Background(), "Q"); !errors.Is(err, ErrInvalidLetter) {
		t.Errorf("Expected ErrInvalidLetter, got %v", err)
	}
}

func TestParseCatalog_FillsJumbled(t *testing.T) {
	c, err := ParseCatalog([]byte(`{"easy": [{"word": "cat", "hint": "meow"}]}`))
	if err != nil {
		t.Fatalf("ParseCatalog failed: %v", err)
	}
	j := c.Easy[0].Jumbled
	if j == "" || j == "cat" {
		t.Errorf("Expected a scrambled form of cat, got %q", j)
	}
}

func TestParseCatalog_Errors(t *testing.T) {
	if _, err := ParseCatalog([]byte(`{ not json`)); err == nil {
		t.Error("Expected error for invalid JSON")
	}
	if _, err := ParseCatalog([]byte(`{}`)); err == nil {
		t.Error("Expected error for empty catalog")
	}
}

func TestLoadCatalog_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.json")
	if err := os.WriteFile(path, []byte(`{"hard": [{"word": "xylophone", "jumbled": "phonexylo", "hint": "music"}]}`), 0o644); err != nil {
		t.Fatalf("Failed to write catalog: %v", err)
	}

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if c.Stats().Hard != 1 {
		t.Errorf("Expected 1 hard word, got %+v", c.Stats())
	}

	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing catalog file")
	}
}

func TestJumble(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	tests := []struct {
		word       string
		mustDiffer bool
	}{
		{"cat", true},
		{"elephant", true},
		{"a", false},
		{"zz", false},
		{"", false},
	}

	for _, tt := range tests {
		got := Jumble(tt.word, rnd)
		if len(got) != len(tt.word) {
			t.Errorf("Jumble(%q) = %q changed length", tt.word, got)
		}
		if tt.mustDiffer && got == tt.word {
			t.Errorf("Jumble(%q) returned the word unchanged", tt.word)
		}
		if !tt.mustDiffer && got != tt.word {
			t.Errorf("Jumble(%q) = %q, expected unchanged", tt.word, got)
		}
		if sortRunes(got) != sortRunes(tt.word) {
			t.Errorf("Jumble(%q) = %q is not a permutation", tt.word, got)
		}
	}
}

func sortRunes(s string) string {
	r := []rune(s)
	for i := 1; i < len(r); i++ {
		for j := i; j > 0 && r[j] < r[j-1]; j-- {
			r[j], r[j-1] = r[j-1], r[j]
		}
	}
	return string(r)
}
