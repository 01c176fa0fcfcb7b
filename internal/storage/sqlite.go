// Package storage provides the database-backed high-score stores.
// SQLite uses the pure-Go modernc.org/sqlite driver so no CGO is needed.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"spelltutor/internal/scoring"
)

// createdAtLayout sorts lexically in time order.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore keeps the high score and the game history in one SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

var (
	_ scoring.HighScoreStore = (*SQLiteStore)(nil)
	_ scoring.HistoryStore   = (*SQLiteStore)(nil)
)

// OpenSQLite creates or opens the database at dbPath, creating parent
// directories and running migrations. A leading ~ is expanded.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	dbPath, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer keeps the conditional update race free.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS high_score (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			score INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		INSERT OR IGNORE INTO high_score (id, score) VALUES (1, 0);

		CREATE TABLE IF NOT EXISTS results (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			age INTEGER NOT NULL DEFAULT 0,
			mode TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			score INTEGER NOT NULL,
			correct INTEGER NOT NULL DEFAULT 0,
			incorrect INTEGER NOT NULL DEFAULT 0,
			best_streak INTEGER NOT NULL DEFAULT 0,
			stars INTEGER NOT NULL DEFAULT 1,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(score DESC, created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx, "SELECT score FROM high_score WHERE id = 1").Scan(&score)
	if err == sql.ErrNoRows || (err == nil && !score.Valid) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return int(score.Int64), nil
}

func (s *SQLiteStore) Save(ctx context.Context, candidate int) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE high_score SET score = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = 1 AND score < ?`,
		candidate, candidate,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot save high score: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot read affected rows: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) Record(ctx context.Context, e scoring.ResultEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results
		 (id, player, age, mode, difficulty, score, correct, incorrect, best_streak, stars, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Player, e.Age, e.Mode, e.Difficulty, e.Score,
		e.Correct, e.Incorrect, e.BestStreak, e.Stars,
		e.CreatedAt.UTC().Format(createdAtLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record result: %w", err)
	}
	return nil
}

// Top returns the n best games, highest score first. Ties go to the
// earlier game. n <= 0 returns every game.
func (s *SQLiteStore) Top(ctx context.Context, n int) ([]scoring.ResultEntry, error) {
	limit := n
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, player, age, mode, difficulty, score, correct, incorrect, best_streak, stars, created_at
		 FROM results
		 ORDER BY score DESC, created_at ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []scoring.ResultEntry
	for rows.Next() {
		var e scoring.ResultEntry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Player, &e.Age, &e.Mode, &e.Difficulty, &e.Score,
			&e.Correct, &e.Incorrect, &e.BestStreak, &e.Stars, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if parsed, err := time.Parse(createdAtLayout, createdAt); err == nil {
			e.CreatedAt = parsed
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
