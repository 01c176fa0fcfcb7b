// Package effects turns session events into sounds and confetti. Nothing
// here feeds back into the game state.
package effects

import (
	"io"
	"strings"
	"sync"

	"spelltutor/internal/game"
)

// Effect names a sound.
type Effect string

const (
	EffectSuccess   Effect = "success"   // player registered
	EffectCorrect   Effect = "correct"   // right answer
	EffectIncorrect Effect = "incorrect" // wrong answer
	EffectComplete  Effect = "complete"  // game over
)

// AudioPlayer plays an effect. Play must not block for long.
type AudioPlayer interface {
	Play(e Effect)
}

// Bell rings the terminal bell: once for most effects, twice for a wrong
// answer and three times at the end of a game.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell returns a Bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Play(e Effect) {
	n := 1
	switch e {
	case EffectIncorrect:
		n = 2
	case EffectComplete:
		n = 3
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = io.WriteString(b.w, strings.Repeat("\a", n))
}

// Silent discards every effect.
type Silent struct{}

func (Silent) Play(Effect) {}

// SoundFor returns the effect for a session event, if it has one.
func SoundFor(k game.EventKind) (Effect, bool) {
	switch k {
	case game.EventStarted:
		return EffectSuccess, true
	case game.EventCorrect:
		return EffectCorrect, true
	case game.EventIncorrect:
		return EffectIncorrect, true
	case game.EventFinished:
		return EffectComplete, true
	}
	return "", false
}

// Listener plays the sound for each event on p.
func Listener(p AudioPlayer) game.Listener {
	return func(ev game.Event) {
		if e, ok := SoundFor(ev.Kind); ok {
			p.Play(e)
		}
	}
}
