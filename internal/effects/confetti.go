package effects

import (
	"math/rand"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"spelltutor/internal/game"
)

// ConfettiWidth is the number of pieces in one burst.
const ConfettiWidth = 30

var confettiGlyphs = []string{"✦", "●", "▲", "■", "✶", "◆"}

// confettiColors is the burst palette.
var confettiColors = []lipgloss.Color{"#ff6b6b", "#4ecdc4", "#45b7d1", "#f9ca24", "#6c5ce7", "#a29bfe"}

// Confetti renders n randomly coloured glyphs, space separated.
func Confetti(n int, rnd *rand.Rand) string {
	if n <= 0 {
		return ""
	}
	pieces := make([]string, n)
	for i := range pieces {
		glyph := confettiGlyphs[rnd.Intn(len(confettiGlyphs))]
		color := confettiColors[rnd.Intn(len(confettiColors))]
		pieces[i] = lipgloss.NewStyle().Foreground(color).Render(glyph)
	}
	return strings.Join(pieces, " ")
}

// Celebrator keeps the confetti burst for the latest celebration.
type Celebrator struct {
	mu    sync.Mutex
	rnd   *rand.Rand
	burst string
}

func NewCelebrator(rnd *rand.Rand) *Celebrator {
	return &Celebrator{rnd: rnd}
}

// Listener throws confetti for correct answers and finished games and
// clears it when the next question comes up.
func (c *Celebrator) Listener() game.Listener {
	return func(ev game.Event) {
		c.mu.Lock()
		defer c.mu.Unlock()
		switch ev.Kind {
		case game.EventCorrect, game.EventFinished:
			c.burst = Confetti(ConfettiWidth, c.rnd)
		case game.EventQuestionLoaded, game.EventQuestionFailed, game.EventMenu, game.EventGameStarted:
			c.burst = ""
		}
	}
}

// Burst returns the current confetti line, or "" when there is nothing to celebrate.
func (c *Celebrator) Burst() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.burst
}
