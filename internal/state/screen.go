package state

import (
	"context"
	"errors"

	"github.com/looplab/fsm"
)

// Screen events.
const (
	EventStart            = "start"
	EventSelectMode       = "selectMode"
	EventSelectDifficulty = "selectDifficulty"
	EventFinish           = "finish"
	EventPlayAgain        = "playAgain"
	EventBackToMenu       = "backToMenu"
)

func getScreenTransitions() fsm.Events {
	return fsm.Events{
		{Name: EventStart, Src: []string{string(ScreenSetup)}, Dst: string(ScreenMenu)},
		{Name: EventSelectMode, Src: []string{string(ScreenMenu)}, Dst: string(ScreenMenu)},
		{Name: EventSelectDifficulty, Src: []string{string(ScreenMenu)}, Dst: string(ScreenGame)},
		{Name: EventFinish, Src: []string{string(ScreenGame)}, Dst: string(ScreenResults)},

		// Both result actions lead back to the menu.
		{Name: EventPlayAgain, Src: []string{string(ScreenResults)}, Dst: string(ScreenMenu)},
		{Name: EventBackToMenu, Src: []string{string(ScreenResults)}, Dst: string(ScreenMenu)},
	}
}

// NewScreenFSM builds the screen machine positioned on from.
func NewScreenFSM(from Screen) *fsm.FSM {
	return fsm.NewFSM(string(from), getScreenTransitions(), fsm.Callbacks{})
}

// CanTransition reports whether event is accepted on screen from.
func CanTransition(from Screen, event string) bool {
	return NewScreenFSM(from).Can(event)
}

// Transition fires event from screen from and returns the destination screen.
// Events the screen does not accept yield a ValidationError and from itself.
func Transition(ctx context.Context, from Screen, event string) (Screen, error) {
	f := NewScreenFSM(from)
	if !f.Can(event) {
		return from, Invalid(ErrInvalidTransition, "That can't be done right now.")
	}

	err := f.Event(ctx, event)
	// Self transitions (mode selection) report NoTransitionError.
	var noTransition fsm.NoTransitionError
	if err != nil && !errors.As(err, &noTransition) {
		return from, err
	}
	return Screen(f.Current()), nil
}
