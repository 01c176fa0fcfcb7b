// Package game drives one play session: a pure reducer over state.GameState
// and a Session that feeds it actions, talks to the word provider and the
// score stores, and notifies listeners.
package game

import (
	"context"
	"strings"

	"spelltutor/internal/scoring"
	"spelltutor/internal/state"
)

// Player-facing validation messages.
const (
	msgMissingPlayer = "Please enter your name and age! 😊"
	msgNoMode        = "Please select a game mode first! 🎮"
	msgNoQuestion    = "There's no question to answer right now."
	msgNotNow        = "That can't be done right now."
)

// Action is an input to Reduce.
type Action interface {
	action()
}

// StartGame submits the setup form.
type StartGame struct {
	Name string
	Age  int
}

// SelectMode picks the game mode on the menu.
type SelectMode struct{ Mode state.Mode }

// SelectDifficulty starts a game at the given difficulty.
type SelectDifficulty struct{ Difficulty state.Difficulty }

// QuestionLoaded installs a freshly fetched question.
type QuestionLoaded struct{ Question state.Question }

// QuestionFailed records that fetching the next question failed.
type QuestionFailed struct{ Err error }

// AnswerEvaluated applies the verdict for the question For points at.
// A nil For applies to whatever question is current.
type AnswerEvaluated struct {
	For     *state.Question
	Verdict Verdict
}

// SkipQuestion gives up on the current question.
type SkipQuestion struct{}

// ShowResults ends the game. Results are computed by the session before dispatch.
type ShowResults struct{ Results scoring.Results }

// PlayAgain and BackToMenu both return from the results screen to the menu.
type PlayAgain struct{}

type BackToMenu struct{}

func (StartGame) action()        {}
func (SelectMode) action()       {}
func (SelectDifficulty) action() {}
func (QuestionLoaded) action()   {}
func (QuestionFailed) action()   {}
func (AnswerEvaluated) action()  {}
func (SkipQuestion) action()     {}
func (ShowResults) action()      {}
func (PlayAgain) action()        {}
func (BackToMenu) action()       {}

// Reduce returns the state that follows s after a. When a is rejected the
// returned error is a *state.ValidationError and s is returned unchanged.
func Reduce(ctx context.Context, s state.GameState, a Action) (state.GameState, error) {
	switch a := a.(type) {
	case StartGame:
		if strings.TrimSpace(a.Name) == "" || a.Age <= 0 {
			return s, state.Invalid(state.ErrMissingPlayer, msgMissingPlayer)
		}
		next, err := state.Transition(ctx, s.Screen, state.EventStart)
		if err != nil {
			return s, err
		}
		s.Screen = next
		s.PlayerName = strings.TrimSpace(a.Name)
		s.PlayerAge = a.Age
		return s, nil

	case SelectMode:
		if _, err := state.ParseMode(string(a.Mode)); err != nil {
			return s, state.Invalid(err, "Unknown game mode.")
		}
		next, err := state.Transition(ctx, s.Screen, state.EventSelectMode)
		if err != nil {
			return s, err
		}
		s.Screen = next
		s.Mode = a.Mode
		return s, nil

	case SelectDifficulty:
		if _, err := state.ParseDifficulty(string(a.Difficulty)); err != nil {
			return s, state.Invalid(err, "Unknown difficulty.")
		}
		if !state.CanTransition(s.Screen, state.EventSelectDifficulty) {
			return s, state.Invalid(state.ErrInvalidTransition, msgNotNow)
		}
		if s.Mode == state.ModeNone {
			return s, state.Invalid(state.ErrNoMode, msgNoMode)
		}
		next, err := state.Transition(ctx, s.Screen, state.EventSelectDifficulty)
		if err != nil {
			return s, err
		}
		s = s.ResetStats()
		s.Screen = next
		s.Difficulty = a.Difficulty
		return s, nil

	case QuestionLoaded:
		if s.Screen != state.ScreenGame || s.Finished() {
			return s, state.Invalid(state.ErrInvalidTransition, msgNotNow)
		}
		q := a.Question
		s.CurrentWord = &q
		s.Feedback = nil
		s.LoadError = ""
		return s, nil

	case QuestionFailed:
		if s.Screen != state.ScreenGame || s.Finished() {
			return s, state.Invalid(state.ErrInvalidTransition, msgNotNow)
		}
		s.CurrentWord = nil
		s.Feedback = nil
		s.LoadError = LoadErrorText
		return s, nil

	case AnswerEvaluated:
		if !s.AwaitingAnswer() || s.CurrentWord == nil || s.LoadError != "" {
			return s, state.Invalid(state.ErrNoQuestion, msgNoQuestion)
		}
		if a.For != nil && a.For != s.CurrentWord {
			return s, state.Invalid(state.ErrNoQuestion, msgNoQuestion)
		}
		s = scoring.ApplyResult(s, a.Verdict.Correct)
		s.QuestionsAnswered++

		q := *s.CurrentWord
		q.Word = a.Verdict.Shown
		s.CurrentWord = &q
		s.Feedback = &state.Feedback{Correct: a.Verdict.Correct, Word: a.Verdict.Shown}
		return s, nil

	case SkipQuestion:
		if !s.AwaitingAnswer() {
			return s, state.Invalid(state.ErrInvalidTransition, msgNotNow)
		}
		s = scoring.ApplySkip(s)
		s.QuestionsAnswered++

		word := ""
		if s.CurrentWord != nil {
			word = s.CurrentWord.Word
		}
		s.Feedback = &state.Feedback{Skipped: true, Word: word}
		if s.Finished() {
			return finish(ctx, s)
		}
		return s, nil

	case ShowResults:
		if !s.Finished() {
			return s, state.Invalid(state.ErrInvalidTransition, msgNotNow)
		}
		return finish(ctx, s)

	case PlayAgain:
		return toMenu(ctx, s, state.EventPlayAgain)

	case BackToMenu:
		return toMenu(ctx, s, state.EventBackToMenu)
	}
	return s, state.Invalid(state.ErrInvalidTransition, msgNotNow)
}

func finish(ctx context.Context, s state.GameState) (state.GameState, error) {
	if s.Screen == state.ScreenResults {
		return s, nil
	}
	next, err := state.Transition(ctx, s.Screen, state.EventFinish)
	if err != nil {
		return s, err
	}
	s.Screen = next
	return s, nil
}

func toMenu(ctx context.Context, s state.GameState, event string) (state.GameState, error) {
	next, err := state.Transition(ctx, s.Screen, event)
	if err != nil {
		return s, err
	}
	s.Screen = next
	s.CurrentWord = nil
	s.Feedback = nil
	s.LoadError = ""
	return s, nil
}
