package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"spelltutor/internal/scoring"
)

type store interface {
	scoring.HighScoreStore
	scoring.HistoryStore
}

func openSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func openRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, "test"), mr
}

func backends(t *testing.T) map[string]store {
	rs, _ := openRedis(t)
	return map[string]store{
		"sqlite": openSQLite(t),
		"redis":  rs,
	}
}

func TestHighScore(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if hs, err := s.Load(ctx); err != nil || hs != 0 {
				t.Fatalf("Expected empty store to load 0, got %d %v", hs, err)
			}

			steps := []struct {
				candidate int
				saved     bool
				want      int
			}{
				{120, true, 120},
				{80, false, 120},
				{120, false, 120},
				{370, true, 370},
				{0, false, 370},
			}
			for _, st := range steps {
				saved, err := s.Save(ctx, st.candidate)
				if err != nil {
					t.Fatalf("Save(%d) failed: %v", st.candidate, err)
				}
				if saved != st.saved {
					t.Errorf("Save(%d) = %v, want %v", st.candidate, saved, st.saved)
				}
				hs, err := s.Load(ctx)
				if err != nil {
					t.Fatalf("Load failed: %v", err)
				}
				if hs != st.want {
					t.Errorf("After Save(%d) high score is %d, want %d", st.candidate, hs, st.want)
				}
			}
		})
	}
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	entries := []scoring.ResultEntry{
		{ID: "a", Player: "Ada", Age: 7, Mode: "jumbled", Difficulty: "easy", Score: 90, Stars: 2, CreatedAt: base},
		{ID: "b", Player: "Bo", Age: 8, Mode: "letter", Difficulty: "hard", Score: 300, Stars: 3, CreatedAt: base.Add(time.Minute)},
		{ID: "c", Player: "Cy", Age: 9, Mode: "spelling", Difficulty: "medium", Score: 90, Stars: 2, CreatedAt: base.Add(2 * time.Minute)},
	}

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, e := range entries {
				if err := s.Record(ctx, e); err != nil {
					t.Fatalf("Record(%s) failed: %v", e.ID, err)
				}
			}

			top, err := s.Top(ctx, 2)
			if err != nil {
				t.Fatalf("Top failed: %v", err)
			}
			if len(top) != 2 {
				t.Fatalf("Expected 2 entries, got %d", len(top))
			}
			if top[0].ID != "b" || top[1].ID != "a" {
				t.Errorf("Unexpected order %s, %s", top[0].ID, top[1].ID)
			}
			if top[0].Player != "Bo" || top[0].Mode != "letter" || top[0].Age != 8 || top[0].Stars != 3 {
				t.Errorf("Entry not round-tripped: %+v", top[0])
			}
			if !top[0].CreatedAt.Equal(entries[1].CreatedAt) {
				t.Errorf("CreatedAt mismatch: %v", top[0].CreatedAt)
			}

			all, err := s.Top(ctx, 0)
			if err != nil {
				t.Fatalf("Top(0) failed: %v", err)
			}
			if len(all) != 3 {
				t.Errorf("Expected all 3 entries, got %d", len(all))
			}
		})
	}
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "scores.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	if _, err := s.Save(ctx, 250); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	s.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Database file was not created: %v", err)
	}

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer s.Close()
	if hs, _ := s.Load(ctx); hs != 250 {
		t.Errorf("Expected 250 after reopen, got %d", hs)
	}
}

func TestRedis_CorruptValueReadsAsZero(t *testing.T) {
	ctx := context.Background()
	s, mr := openRedis(t)

	if err := mr.Set("test:high_score", "not-a-number"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if hs, err := s.Load(ctx); err != nil || hs != 0 {
		t.Errorf("Expected corrupt value to load as 0, got %d %v", hs, err)
	}

	saved, err := s.Save(ctx, 10)
	if err != nil || !saved {
		t.Errorf("Expected save over a corrupt value, got %v %v", saved, err)
	}
	if got, _ := mr.Get("test:high_score"); got != "10" {
		t.Errorf("Expected stored 10, got %q", got)
	}
}

func TestRedis_Unavailable(t *testing.T) {
	s, mr := openRedis(t)
	mr.Close()

	if _, err := s.Save(context.Background(), 10); err == nil {
		t.Error("Expected an error when redis is down")
	}
}
