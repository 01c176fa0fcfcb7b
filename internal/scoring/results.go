package scoring

import (
	"strings"

	"spelltutor/internal/state"
)

// Results is the summary shown when a game ends.
type Results struct {
	Score      int
	Correct    int
	Incorrect  int
	BestStreak int
	Total      int
	Percentage float64
	Stars      int
	NewRecord  bool
}

// ComputeResults summarises a finished game. It depends only on the final
// counters and on whether the score set a new record.
func ComputeResults(s state.GameState, newRecord bool) Results {
	pct := Percentage(s.CorrectAnswers, s.TotalQuestions)
	return Results{
		Score:      s.Score,
		Correct:    s.CorrectAnswers,
		Incorrect:  s.IncorrectAnswers,
		BestStreak: s.BestStreak,
		Total:      s.TotalQuestions,
		Percentage: pct,
		Stars:      StarsFor(pct),
		NewRecord:  newRecord,
	}
}

// Percentage of correct answers out of total.
func Percentage(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// StarsFor maps a percentage to a one to three star rating.
func StarsFor(percentage float64) int {
	switch {
	case percentage >= 80:
		return 3
	case percentage >= 50:
		return 2
	default:
		return 1
	}
}

// Rating renders the stars plus the record marker.
func (r Results) Rating() string {
	rating := strings.Repeat("⭐", r.Stars)
	if r.NewRecord {
		rating += " 🏆 NEW RECORD!"
	}
	return rating
}
