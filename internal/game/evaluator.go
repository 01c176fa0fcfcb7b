package game

import (
	"context"
	"strings"

	"spelltutor/internal/state"
	"spelltutor/internal/words"
)

// Verdict is the outcome of evaluating one submission.
type Verdict struct {
	Correct bool
	// Shown is the word displayed back to the player. In letter mode a
	// correct submission replaces the drawn word.
	Shown string
}

// Evaluate checks submitted against q. Comparison ignores case and
// surrounding whitespace.
//
// Letter questions accept any of q.CandidateWords. When the question holds
// no candidates they are fetched again from p; if that fails the verdict is
// incorrect and the TransportError is returned alongside it so the caller
// can log it.
func Evaluate(ctx context.Context, p words.Provider, mode state.Mode, q state.Question, submitted string) (Verdict, error) {
	answer := strings.TrimSpace(submitted)
	if answer == "" {
		return Verdict{}, state.Invalid(state.ErrEmptyAnswer, "Please type your answer! ✏️")
	}

	if mode != state.ModeLetter {
		return Verdict{Correct: strings.EqualFold(answer, q.Word), Shown: q.Word}, nil
	}

	candidates := q.CandidateWords
	if len(candidates) == 0 {
		lw, err := p.LetterWords(ctx, q.Letter)
		if err != nil {
			return Verdict{Shown: q.Word}, err
		}
		candidates = lw.Words
	}

	for _, w := range candidates {
		if strings.EqualFold(answer, w) {
			return Verdict{Correct: true, Shown: answer}, nil
		}
	}
	return Verdict{Shown: q.Word}, nil
}
