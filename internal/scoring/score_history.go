package scoring

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"spelltutor/internal/state"
)

// ResultEntry is one finished game.
type ResultEntry struct {
	ID         string    `json:"id"`
	Player     string    `json:"player"`
	Age        int       `json:"age"`
	Mode       string    `json:"mode"`
	Difficulty string    `json:"difficulty"`
	Score      int       `json:"score"`
	Correct    int       `json:"correct"`
	Incorrect  int       `json:"incorrect"`
	BestStreak int       `json:"best_streak"`
	Stars      int       `json:"stars"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewResultEntry builds the history record of a finished game.
func NewResultEntry(s state.GameState, r Results, at time.Time) ResultEntry {
	return ResultEntry{
		ID:         uuid.NewString(),
		Player:     s.PlayerName,
		Age:        s.PlayerAge,
		Mode:       string(s.Mode),
		Difficulty: string(s.Difficulty),
		Score:      r.Score,
		Correct:    r.Correct,
		Incorrect:  r.Incorrect,
		BestStreak: r.BestStreak,
		Stars:      r.Stars,
		CreatedAt:  at.UTC(),
	}
}

// Level is the leaderboard title for the difficulty the game was played at.
func (e ResultEntry) Level() string {
	switch state.Difficulty(e.Difficulty) {
	case state.Hard:
		return "Expert"
	case state.Medium:
		return "Intermediate"
	default:
		return "Beginner"
	}
}

// TopEntries returns the n best entries, highest score first. Ties go to
// the earlier game. The input slice is not modified.
func TopEntries(entries []ResultEntry, n int) []ResultEntry {
	entriesCopy := make([]ResultEntry, len(entries))
	copy(entriesCopy, entries)

	sort.SliceStable(entriesCopy, func(i, j int) bool {
		if entriesCopy[i].Score != entriesCopy[j].Score {
			return entriesCopy[i].Score > entriesCopy[j].Score
		}
		return entriesCopy[i].CreatedAt.Before(entriesCopy[j].CreatedAt)
	})

	if n <= 0 || len(entriesCopy) < n {
		return entriesCopy
	}
	return entriesCopy[:n]
}
