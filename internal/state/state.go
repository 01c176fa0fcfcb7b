package state

// DefaultTotalQuestions is the number of questions in one game.
const DefaultTotalQuestions = 10

// Question is the active question. Jumbled and spelling questions carry
// Jumbled, Hint and Image; letter questions carry Letter and CandidateWords.
type Question struct {
	Word           string
	Jumbled        string
	Hint           string
	Image          string
	Letter         string
	CandidateWords []string
}

// Feedback describes how the last question was resolved.
type Feedback struct {
	Correct bool
	Skipped bool
	Word    string // the word shown back to the player
}

// GameState is the whole session. It is a value: every transition returns
// a new GameState and leaves the old one untouched.
type GameState struct {
	Screen     Screen
	PlayerName string
	PlayerAge  int
	Mode       Mode
	Difficulty Difficulty

	Score      int
	Streak     int
	BestStreak int

	QuestionsAnswered int
	CorrectAnswers    int
	IncorrectAnswers  int
	TotalQuestions    int

	CurrentWord *Question
	Feedback    *Feedback
	LoadError   string
}

// New returns the state of a fresh session sitting on the setup screen.
func New(totalQuestions int) GameState {
	if totalQuestions <= 0 {
		totalQuestions = DefaultTotalQuestions
	}
	return GameState{
		Screen:         ScreenSetup,
		Difficulty:     Easy,
		TotalQuestions: totalQuestions,
	}
}

// ResetStats zeroes score, streaks and counters for a new game.
func (s GameState) ResetStats() GameState {
	s.Score = 0
	s.Streak = 0
	s.BestStreak = 0
	s.QuestionsAnswered = 0
	s.CorrectAnswers = 0
	s.IncorrectAnswers = 0
	s.CurrentWord = nil
	s.Feedback = nil
	s.LoadError = ""
	return s
}

// Finished reports whether every question of the game has been answered or skipped.
func (s GameState) Finished() bool {
	return s.QuestionsAnswered >= s.TotalQuestions
}

// AwaitingAnswer reports whether the current question can still be answered.
func (s GameState) AwaitingAnswer() bool {
	return s.Screen == ScreenGame && s.Feedback == nil && !s.Finished()
}

// Progress is the fraction of the game already played, in [0,1].
func (s GameState) Progress() float64 {
	if s.TotalQuestions <= 0 {
		return 0
	}
	p := float64(s.QuestionsAnswered) / float64(s.TotalQuestions)
	if p > 1 {
		return 1
	}
	return p
}

// QuestionNumber is the 1-based number of the question on screen.
func (s GameState) QuestionNumber() int {
	n := s.QuestionsAnswered + 1
	if s.Feedback != nil || n > s.TotalQuestions {
		n--
	}
	return n
}
