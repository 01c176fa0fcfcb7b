package scoring

import (
	"spelltutor/internal/state"
)

// streakBonusPerAnswer is the bonus per streak step once a streak reaches two.
const streakBonusPerAnswer = 5

// BaseScore is the points a correct answer earns at difficulty d before
// any streak bonus.
func BaseScore(d state.Difficulty) int {
	return getScoreTable()[d]
}

// StreakBonus is the bonus for a correct answer that brought the streak to
// streak. A streak of one earns nothing.
func StreakBonus(streak int) int {
	if streak > 1 {
		return streak * streakBonusPerAnswer
	}
	return 0
}

// ScoreDelta is the total added to the score by a correct answer at
// difficulty d that brought the streak to streak.
func ScoreDelta(d state.Difficulty, streak int) int {
	return BaseScore(d) + StreakBonus(streak)
}

// ApplyResult scores one answered question. QuestionsAnswered is not
// touched: the caller advances it after scoring.
func ApplyResult(s state.GameState, correct bool) state.GameState {
	if !correct {
		s.IncorrectAnswers++
		s.Streak = 0
		return s
	}

	s.CorrectAnswers++
	s.Streak++
	s.Score += ScoreDelta(s.Difficulty, s.Streak)
	if s.Streak > s.BestStreak {
		s.BestStreak = s.Streak
	}
	return s
}

// ApplySkip breaks the streak without counting the question as right or wrong.
func ApplySkip(s state.GameState) state.GameState {
	s.Streak = 0
	return s
}

// getScoreTable returns the base score for each difficulty.
func getScoreTable() map[state.Difficulty]int {
	return map[state.Difficulty]int{
		state.Easy:   10,
		state.Medium: 20,
		state.Hard:   30,
	}
}
