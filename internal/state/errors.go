package state

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingPlayer is returned when setup is submitted without a name or age.
	ErrMissingPlayer = errors.New("player name and age are required")
	// ErrNoMode is returned when a difficulty is picked before a mode.
	ErrNoMode = errors.New("no game mode selected")
	// ErrEmptyAnswer is returned for blank answer submissions.
	ErrEmptyAnswer = errors.New("empty answer")
	// ErrNoQuestion is returned when answering while no question is loaded.
	ErrNoQuestion = errors.New("no question loaded")
	// ErrInvalidTransition is returned for actions the current screen does not accept.
	ErrInvalidTransition = errors.New("invalid screen transition")
	ErrInvalidMode       = errors.New("invalid game mode")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
)

// ValidationError reports rejected user input. The state it was raised
// against is left untouched; Message is safe to show to the player.
type ValidationError struct {
	Err     error
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Invalid builds a ValidationError around one of the sentinel errors.
func Invalid(err error, message string) *ValidationError {
	return &ValidationError{Err: err, Message: message}
}

// TransportError wraps a failed call to the word service.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
