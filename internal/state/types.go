package state

import (
	"fmt"
	"strings"
)

// Mode is the kind of question a game asks.
type Mode string

const (
	ModeNone     Mode = ""
	ModeJumbled  Mode = "jumbled"  // unscramble the shown letters
	ModeSpelling Mode = "spelling" // spell the word described by the hint
	ModeLetter   Mode = "letter"   // spell any word starting with a letter
)

// Modes lists the selectable modes in menu order.
var Modes = []Mode{ModeJumbled, ModeSpelling, ModeLetter}

// ParseMode converts a user or config supplied name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeJumbled, ModeSpelling, ModeLetter:
		return m, nil
	}
	return ModeNone, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Title is the label shown on the mode card.
func (m Mode) Title() string {
	switch m {
	case ModeJumbled:
		return "Jumbled Words"
	case ModeSpelling:
		return "Spelling Bee"
	case ModeLetter:
		return "Letter Fun"
	}
	return "No mode"
}

// Difficulty controls the word pool and the base score of a correct answer.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists the difficulties in menu order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case Easy, Medium, Hard:
		return d, nil
	}
	return Easy, fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
}

// Screen is one of the fixed screens of the game. Exactly one is active.
type Screen string

const (
	ScreenSetup   Screen = "setup"
	ScreenMenu    Screen = "menu"
	ScreenGame    Screen = "game"
	ScreenResults Screen = "results"
)
