package game

import (
	"context"
	"fmt"
	"math/rand"

	"spelltutor/internal/state"
	"spelltutor/internal/words"
)

// LoadErrorText replaces the question text when a question could not be fetched.
const LoadErrorText = "Error loading question"

// LoadQuestion fetches the next question for mode at difficulty d.
// Letter questions draw their letter uniformly from words.Alphabet using rnd.
func LoadQuestion(ctx context.Context, p words.Provider, mode state.Mode, d state.Difficulty, rnd *rand.Rand) (state.Question, error) {
	switch mode {
	case state.ModeJumbled, state.ModeSpelling:
		e, err := p.RandomWord(ctx, d)
		if err != nil {
			return state.Question{}, err
		}
		return state.Question{
			Word:    e.Word,
			Jumbled: e.Jumbled,
			Hint:    e.Hint,
			Image:   e.Image,
		}, nil

	case state.ModeLetter:
		letter := randomLetter(rnd)
		lw, err := p.LetterWords(ctx, letter)
		if err != nil {
			return state.Question{}, err
		}
		return state.Question{
			Word:           lw.Random,
			Letter:         letter,
			CandidateWords: lw.Words,
		}, nil
	}
	return state.Question{}, fmt.Errorf("load question: %w", state.Invalid(state.ErrNoMode, "Please select a game mode first! 🎮"))
}

func randomLetter(rnd *rand.Rand) string {
	var i int
	if rnd != nil {
		i = rnd.Intn(len(words.Alphabet))
	} else {
		i = rand.Intn(len(words.Alphabet))
	}
	return words.Alphabet[i : i+1]
}
