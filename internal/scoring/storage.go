package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// HighScoreStore keeps the best score ever reached on this device.
// This allows for swapping the persistence layer and faking it in tests.
type HighScoreStore interface {
	// Load returns the stored high score, or 0 when none is stored or the
	// stored value cannot be read back.
	Load(ctx context.Context) (int, error)
	// Save stores candidate and returns true only if it beats the stored
	// score. Otherwise storage is left untouched.
	Save(ctx context.Context, candidate int) (bool, error)
}

// HistoryStore records finished games. Not every backend keeps history.
type HistoryStore interface {
	Record(ctx context.Context, entry ResultEntry) error
	Top(ctx context.Context, n int) ([]ResultEntry, error)
}

var errCorruptScores = errors.New("scores file is corrupt")

// scoreFile is the on-disk layout of JSONFileStore.
type scoreFile struct {
	HighScore int           `json:"high_score"`
	UpdatedAt string        `json:"updated_at,omitempty"`
	History   []ResultEntry `json:"history,omitempty"`
}

// JSONFileStore is an implementation of HighScoreStore and HistoryStore
// backed by a single JSON file.
type JSONFileStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONFileStore creates a store at the default location,
// ~/.config/spelltutor/scores.json.
func NewJSONFileStore() (*JSONFileStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not get user home directory: %w", err)
	}
	return NewJSONFileStoreAt(filepath.Join(homeDir, ".config", "spelltutor", "scores.json")), nil
}

// NewJSONFileStoreAt creates a store writing to path.
func NewJSONFileStoreAt(path string) *JSONFileStore {
	return &JSONFileStore{path: path}
}

// Path returns the file backing the store.
func (jfs *JSONFileStore) Path() string { return jfs.path }

func (jfs *JSONFileStore) Load(ctx context.Context) (int, error) {
	jfs.mu.Lock()
	defer jfs.mu.Unlock()

	f, err := jfs.read()
	if errors.Is(err, errCorruptScores) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return f.HighScore, nil
}

func (jfs *JSONFileStore) Save(ctx context.Context, candidate int) (bool, error) {
	jfs.mu.Lock()
	defer jfs.mu.Unlock()

	f, err := jfs.read()
	if err != nil && !errors.Is(err, errCorruptScores) {
		return false, err
	}
	if candidate <= f.HighScore {
		return false, nil
	}

	f.HighScore = candidate
	f.UpdatedAt = time.Now().Format(time.RFC3339)
	if err := jfs.write(f); err != nil {
		return false, err
	}
	return true, nil
}

// Record appends a finished game to the history.
func (jfs *JSONFileStore) Record(ctx context.Context, entry ResultEntry) error {
	jfs.mu.Lock()
	defer jfs.mu.Unlock()

	f, err := jfs.read()
	if err != nil && !errors.Is(err, errCorruptScores) {
		return err
	}
	f.History = append(f.History, entry)
	return jfs.write(f)
}

// Top returns the n best recorded games.
func (jfs *JSONFileStore) Top(ctx context.Context, n int) ([]ResultEntry, error) {
	jfs.mu.Lock()
	defer jfs.mu.Unlock()

	f, err := jfs.read()
	if errors.Is(err, errCorruptScores) {
		return []ResultEntry{}, nil
	}
	if err != nil {
		return nil, err
	}
	return TopEntries(f.History, n), nil
}

func (jfs *JSONFileStore) read() (scoreFile, error) {
	var f scoreFile

	data, err := os.ReadFile(jfs.path)
	// A missing file just means nothing was saved yet.
	if os.IsNotExist(err) {
		return f, nil
	}
	if err != nil {
		return f, fmt.Errorf("error reading scores file: %w", err)
	}
	if len(data) == 0 {
		return f, nil
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return scoreFile{}, fmt.Errorf("%w: %v", errCorruptScores, err)
	}
	if f.HighScore < 0 {
		f.HighScore = 0
	}
	return f, nil
}

func (jfs *JSONFileStore) write(f scoreFile) error {
	dir := filepath.Dir(jfs.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating scores directory: %w", err)
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding scores: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".scores-*.json")
	if err != nil {
		return fmt.Errorf("error opening scores file for writing: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("error writing scores file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error writing scores file: %w", err)
	}
	return os.Rename(tmp.Name(), jfs.path)
}

// MemoryStore keeps scores in memory only.
type MemoryStore struct {
	mu      sync.Mutex
	high    int
	entries []ResultEntry
}

// NewMemoryStore returns a store seeded with highScore.
func NewMemoryStore(highScore int) *MemoryStore {
	return &MemoryStore{high: highScore}
}

func (m *MemoryStore) Load(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.high, nil
}

func (m *MemoryStore) Save(ctx context.Context, candidate int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if candidate <= m.high {
		return false, nil
	}
	m.high = candidate
	return true, nil
}

func (m *MemoryStore) Record(ctx context.Context, entry ResultEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MemoryStore) Top(ctx context.Context, n int) ([]ResultEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return TopEntries(m.entries, n), nil
}
