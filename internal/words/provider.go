// Package words serves and fetches the word data the game asks questions from.
//
// A Provider answers two queries: a random word for a difficulty, and the
// list of words starting with a letter. Catalog answers them in-process;
// Client answers them over HTTP from a Server.
package words

import (
	"context"

	"spelltutor/internal/state"
)

// Entry is one word of the jumbled and spelling pools.
type Entry struct {
	Word    string `json:"word"`
	Jumbled string `json:"jumbled"`
	Hint    string `json:"hint"`
	Image   string `json:"image"`
}

// LetterWords is every known word for a letter plus one picked at random.
type LetterWords struct {
	Letter string   `json:"letter"`
	Words  []string `json:"words"`
	Random string   `json:"random"`
}

// Provider is the word data source the game consumes.
type Provider interface {
	RandomWord(ctx context.Context, d state.Difficulty) (Entry, error)
	LetterWords(ctx context.Context, letter string) (LetterWords, error)
}

// Alphabet is the set of letters letter-mode questions are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
