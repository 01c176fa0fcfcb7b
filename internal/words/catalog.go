package words

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"

	"spelltutor/internal/state"
)

//go:embed default_words.json
var defaultWordsJSON []byte

// ErrInvalidLetter is returned for letters the catalog has no words for.
var ErrInvalidLetter = errors.New("invalid letter")

// Catalog is the word database. It satisfies Provider without any I/O.
type Catalog struct {
	Easy              []Entry             `json:"easy"`
	Medium            []Entry             `json:"medium"`
	Hard              []Entry             `json:"hard"`
	LetterToSpellings map[string][]string `json:"letterToSpellings"`

	mu  sync.Mutex
	rnd *rand.Rand
}

// Stats counts the words available per pool.
type Stats struct {
	Easy    int `json:"easy"`
	Medium  int `json:"medium"`
	Hard    int `json:"hard"`
	Letters int `json:"letters"`
}

// LoadCatalog reads a catalog from path, or the embedded default when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word catalog %s: %w", path, err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse word catalog %s: %w", path, err)
	}
	return c, nil
}

// DefaultCatalog returns the built-in word list.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultWordsJSON)
}

// ParseCatalog decodes a catalog and fills in missing jumbled forms.
func ParseCatalog(data []byte) (*Catalog, error) {
	c := &Catalog{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, err
	}
	if len(c.Easy)+len(c.Medium)+len(c.Hard) == 0 && len(c.LetterToSpellings) == 0 {
		return nil, errors.New("catalog has no words")
	}

	for _, pool := range [][]Entry{c.Easy, c.Medium, c.Hard} {
		for i := range pool {
			if strings.TrimSpace(pool[i].Jumbled) == "" {
				pool[i].Jumbled = Jumble(pool[i].Word, c.rnd)
			}
		}
	}

	// Letter keys are matched upper case.
	letters := make(map[string][]string, len(c.LetterToSpellings))
	for k, v := range c.LetterToSpellings {
		key := strings.ToUpper(strings.TrimSpace(k))
		letters[key] = append(letters[key], v...)
	}
	c.LetterToSpellings = letters

	return c, nil
}

// Seed makes random picks reproducible.
func (c *Catalog) Seed(seed int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rnd = rand.New(rand.NewSource(seed))
}

func (c *Catalog) pool(d state.Difficulty) []Entry {
	switch d {
	case state.Easy:
		return c.Easy
	case state.Medium:
		return c.Medium
	case state.Hard:
		return c.Hard
	}
	return nil
}

// RandomWord picks a word of difficulty d.
func (c *Catalog) RandomWord(ctx context.Context, d state.Difficulty) (Entry, error) {
	pool := c.pool(d)
	if len(pool) == 0 {
		return Entry{}, fmt.Errorf("%w: %q", state.ErrInvalidDifficulty, d)
	}

	c.mu.Lock()
	e := pool[c.rnd.Intn(len(pool))]
	c.mu.Unlock()
	return e, nil
}

// LetterWords returns every word starting with letter and a random one of them.
func (c *Catalog) LetterWords(ctx context.Context, letter string) (LetterWords, error) {
	key := strings.ToUpper(strings.TrimSpace(letter))
	list := c.LetterToSpellings[key]
	if len(list) == 0 {
		return LetterWords{}, fmt.Errorf("%w: %q", ErrInvalidLetter, letter)
	}

	out := LetterWords{Letter: key, Words: make([]string, len(list))}
	copy(out.Words, list)

	c.mu.Lock()
	out.Random = list[c.rnd.Intn(len(list))]
	c.mu.Unlock()
	return out, nil
}

// Stats reports the size of each pool.
func (c *Catalog) Stats() Stats {
	return Stats{
		Easy:    len(c.Easy),
		Medium:  len(c.Medium),
		Hard:    len(c.Hard),
		Letters: len(c.LetterToSpellings),
	}
}

// Jumble scrambles the letters of word. When the word has at least two
// distinct letters the result differs from the word.
func Jumble(word string, rnd *rand.Rand) string {
	runes := []rune(word)
	if len(runes) < 2 || !hasDistinct(runes) {
		return word
	}

	shuffle := rand.Shuffle
	if rnd != nil {
		shuffle = rnd.Shuffle
	}
	for {
		shuffle(len(runes), func(i, j int) {
			runes[i], runes[j] = runes[j], runes[i]
		})
		if string(runes) != word {
			return string(runes)
		}
	}
}

func hasDistinct(runes []rune) bool {
	for _, r := range runes[1:] {
		if r != runes[0] {
			return true
		}
	}
	return false
}
