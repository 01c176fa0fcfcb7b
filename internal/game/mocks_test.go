package game

import (
	"context"
	"errors"
	"strings"
	"sync"

	"spelltutor/internal/scoring"
	"spelltutor/internal/state"
	"spelltutor/internal/words"
)

// FakeProvider implements words.Provider with canned data.
type FakeProvider struct {
	mu sync.Mutex

	Entry   words.Entry
	Letters map[string][]string
	Fail    bool

	RandomCalls int
	LetterCalls []string
}

func (f *FakeProvider) RandomWord(ctx context.Context, d state.Difficulty) (words.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RandomCalls++
	if f.Fail {
		return words.Entry{}, &state.TransportError{Op: "random word", Err: errors.New("connection refused")}
	}
	return f.Entry, nil
}

func (f *FakeProvider) LetterWords(ctx context.Context, letter string) (words.LetterWords, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LetterCalls = append(f.LetterCalls, letter)
	if f.Fail {
		return words.LetterWords{}, &state.TransportError{Op: "letter words", Err: errors.New("connection refused")}
	}
	list := f.Letters[strings.ToUpper(letter)]
	lw := words.LetterWords{Letter: strings.ToUpper(letter), Words: list}
	if len(list) > 0 {
		lw.Random = list[0]
	}
	return lw, nil
}

func (f *FakeProvider) SetFail(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Fail = fail
}

// MockStorage implements scoring.HighScoreStore and scoring.HistoryStore.
type MockStorage struct {
	High      int
	Entries   []scoring.ResultEntry
	SaveCalls []int
	SaveErr   error
}

func (m *MockStorage) Load(ctx context.Context) (int, error) {
	return m.High, nil
}

func (m *MockStorage) Save(ctx context.Context, candidate int) (bool, error) {
	m.SaveCalls = append(m.SaveCalls, candidate)
	if m.SaveErr != nil {
		return false, m.SaveErr
	}
	if candidate > m.High {
		m.High = candidate
		return true, nil
	}
	return false, nil
}

func (m *MockStorage) Record(ctx context.Context, e scoring.ResultEntry) error {
	m.Entries = append(m.Entries, e)
	return nil
}

func (m *MockStorage) Top(ctx context.Context, n int) ([]scoring.ResultEntry, error) {
	return scoring.TopEntries(m.Entries, n), nil
}

// allLetters returns a letter table where every letter maps to the given words.
func allLetters(list ...string) map[string][]string {
	m := make(map[string][]string, len(words.Alphabet))
	for _, r := range words.Alphabet {
		m[string(r)] = list
	}
	return m
}
