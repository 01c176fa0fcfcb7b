package tui

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"spelltutor/internal/effects"
	"spelltutor/internal/game"
	"spelltutor/internal/scoring"
	"spelltutor/internal/state"
	"spelltutor/internal/words"
)

func newTestModel(t *testing.T, total int, opts Options) (Model, *game.Session) {
	t.Helper()
	catalog, err := words.DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog failed: %v", err)
	}
	sess := game.NewSession(game.Options{
		Words:          catalog,
		Scores:         scoring.NewMemoryStore(0),
		Rand:           rand.New(rand.NewSource(3)),
		TotalQuestions: total,
		FeedbackDelay:  time.Millisecond,
	})
	cel := effects.NewCelebrator(rand.New(rand.NewSource(3)))
	sess.Subscribe(cel.Listener())
	return NewModel(context.Background(), sess, cel, opts), sess
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msg to m and then runs any command it returns, feeding back
// the game messages, until no more game work is pending.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	for cmd != nil {
		out := cmd()
		switch out.(type) {
		case actionMsg, answerMsg, feedbackDoneMsg, highScoreMsg:
			next, cmd = m.Update(out)
			m = next.(Model)
		default:
			cmd = nil
		}
	}
	return m
}

func TestModel_SetupValidation(t *testing.T) {
	m, sess := newTestModel(t, 3, Options{})

	m = send(t, m, key("enter")) // name -> age
	m = send(t, m, key("enter")) // submit
	if sess.State().Screen != state.ScreenSetup {
		t.Fatalf("Expected to stay on setup, got %s", sess.State().Screen)
	}
	if !strings.Contains(m.View(), "Please enter your name and age!") {
		t.Error("Expected validation message in view")
	}

	m.nameInput.SetValue("Ada")
	m.ageInput.SetValue("7")
	m = send(t, m, key("enter")) // focus went back to the empty name field
	m = send(t, m, key("enter"))
	if sess.State().Screen != state.ScreenMenu {
		t.Fatalf("Expected menu, got %s", sess.State().Screen)
	}
	if strings.Contains(m.View(), "Please enter") {
		t.Error("Message should be cleared after a valid start")
	}
}

func TestModel_PlayThrough(t *testing.T) {
	m, sess := newTestModel(t, 2, Options{Name: "Ada", Age: 7})
	m = send(t, m, startMsg{})
	if sess.State().Screen != state.ScreenMenu {
		t.Fatalf("Expected auto start into menu, got %s", sess.State().Screen)
	}

	m = send(t, m, key("e"))
	if !strings.Contains(m.View(), "Please select a game mode first!") {
		t.Error("Expected no-mode message")
	}

	m = send(t, m, key("2"))
	m = send(t, m, key("m"))
	st := sess.State()
	if st.Screen != state.ScreenGame || st.Difficulty != state.Medium || st.CurrentWord == nil {
		t.Fatalf("Expected a loaded medium game, got %+v", st)
	}

	// Empty answer is rejected without changing the state.
	m = send(t, m, key("enter"))
	if sess.State().QuestionsAnswered != 0 || !strings.Contains(m.View(), "Please type your answer!") {
		t.Error("Expected empty answer rejection")
	}

	m.answerInput.SetValue(sess.State().CurrentWord.Word)
	m = send(t, m, key("enter"))
	st = sess.State()
	if st.CorrectAnswers != 1 || st.Score != 20 {
		t.Errorf("Expected one correct medium answer, got %+v", st)
	}
	if st.Feedback != nil {
		t.Error("Feedback should be replaced by the next question after the delay")
	}

	m = send(t, m, key("tab"))
	if sess.State().Screen != state.ScreenResults {
		t.Fatalf("Expected results after skipping the last question, got %s", sess.State().Screen)
	}
	view := m.View()
	if !strings.Contains(view, "Score: 20") || !strings.Contains(view, "⭐⭐") {
		t.Errorf("Unexpected results view:\n%s", view)
	}

	m = send(t, m, key("b"))
	if sess.State().Screen != state.ScreenMenu {
		t.Errorf("Expected menu after back, got %s", sess.State().Screen)
	}
	if m.highScore != 20 {
		t.Errorf("Expected refreshed high score 20, got %d", m.highScore)
	}
}

func TestModel_StaleFeedbackTickIgnored(t *testing.T) {
	m, sess := newTestModel(t, 5, Options{Name: "Ada", Age: 7})
	m = send(t, m, startMsg{})
	m = send(t, m, key("1"))
	m = send(t, m, key("e"))

	before := sess.State()
	m = send(t, m, feedbackDoneMsg{seq: m.seq + 1})
	if sess.State() != before {
		t.Error("A stale tick must not advance the game")
	}
}

func TestQuestionText(t *testing.T) {
	q := state.Question{Word: "apple", Jumbled: "pplae", Hint: "A red fruit", Image: "🍎", Letter: "A"}

	emoji, text, hint := questionText(state.ModeJumbled, q)
	if emoji != "🍎" || text != "PPLAE" || hint != "Hint: A red fruit" {
		t.Errorf("Unexpected jumbled text %q %q %q", emoji, text, hint)
	}

	_, text, hint = questionText(state.ModeSpelling, q)
	if text != "❓❓❓" || !strings.Contains(hint, "A red fruit") {
		t.Errorf("Spelling text should hide the word: %q %q", text, hint)
	}

	emoji, _, hint = questionText(state.ModeLetter, state.Question{Word: "bat", Letter: "B"})
	if emoji != "📝" || !strings.Contains(hint, `"B"`) || !strings.Contains(hint, "bat") {
		t.Errorf("Unexpected letter text %q %q", emoji, hint)
	}
}
