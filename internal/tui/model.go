// Package tui is the Bubble Tea front end of the game, for local terminals
// and for SSH sessions.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"spelltutor/internal/effects"
	"spelltutor/internal/game"
	"spelltutor/internal/scoring"
	"spelltutor/internal/state"
)

// actionMsg carries an action produced by a command, to be dispatched on the update loop.
type actionMsg struct{ action game.Action }

type answerMsg struct {
	action game.Action
	err    error
}

// feedbackDoneMsg ends the feedback pause numbered seq.
type feedbackDoneMsg struct{ seq int }

type highScoreMsg int

type startMsg struct{}

// Options prefill the setup form. With both set the form is submitted on start.
type Options struct {
	Name string
	Age  int
}

// Model renders one game session.
type Model struct {
	ctx       context.Context
	session   *game.Session
	celebrate *effects.Celebrator

	nameInput   textinput.Model
	ageInput    textinput.Model
	answerInput textinput.Model
	progress    progress.Model

	message   string
	highScore int
	pending   bool // a fetch or save is running
	seq       int
	autoStart bool
}

// NewModel builds the model for sess. celebrate may be nil.
func NewModel(ctx context.Context, sess *game.Session, celebrate *effects.Celebrator, opts Options) Model {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 30
	name.Width = 30
	name.SetValue(opts.Name)

	age := textinput.New()
	age.Placeholder = "Age"
	age.CharLimit = 3
	age.Width = 5
	if opts.Age > 0 {
		age.SetValue(strconv.Itoa(opts.Age))
	}

	if opts.Name == "" {
		name.Focus()
	} else {
		age.Focus()
	}

	answer := textinput.New()
	answer.Placeholder = "Type your answer"
	answer.CharLimit = 40
	answer.Width = 30

	return Model{
		ctx:         ctx,
		session:     sess,
		celebrate:   celebrate,
		nameInput:   name,
		ageInput:    age,
		answerInput: answer,
		progress:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		autoStart:   strings.TrimSpace(opts.Name) != "" && opts.Age > 0,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.loadHighScore()}
	if m.autoStart {
		cmds = append(cmds, func() tea.Msg { return startMsg{} })
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w := msg.Width - 8
		if w > 50 {
			w = 50
		}
		if w > 10 {
			m.progress.Width = w
		}
		return m, nil

	case highScoreMsg:
		m.highScore = int(msg)
		return m, nil

	case startMsg:
		return m.submitSetup()

	case actionMsg:
		m.pending = false
		if err := m.session.Dispatch(m.ctx, msg.action); err != nil {
			m.message = err.Error()
			return m, nil
		}
		return m.afterDispatch(msg.action)

	case answerMsg:
		m.pending = false
		if msg.err != nil {
			m.message = msg.err.Error()
			return m, nil
		}
		if err := m.session.Dispatch(m.ctx, msg.action); err != nil {
			m.message = err.Error()
			return m, nil
		}
		m.message = ""
		m.answerInput.Blur()
		m.seq++
		return m, m.feedbackTick(m.seq)

	case feedbackDoneMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		return m.advance()

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.session.State().Screen {
		case state.ScreenSetup:
			return m.updateSetup(msg)
		case state.ScreenMenu:
			return m.updateMenu(msg)
		case state.ScreenGame:
			return m.updateGame(msg)
		case state.ScreenResults:
			return m.updateResults(msg)
		}
	}
	return m, nil
}

func (m Model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if m.nameInput.Focused() {
			m.nameInput.Blur()
			m.ageInput.Focus()
			return m, textinput.Blink
		}
		return m.submitSetup()
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		if m.nameInput.Focused() {
			m.nameInput.Blur()
			m.ageInput.Focus()
		} else {
			m.ageInput.Blur()
			m.nameInput.Focus()
		}
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	if m.nameInput.Focused() {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.ageInput, cmd = m.ageInput.Update(msg)
	}
	return m, cmd
}

func (m Model) submitSetup() (tea.Model, tea.Cmd) {
	age, err := strconv.Atoi(strings.TrimSpace(m.ageInput.Value()))
	if err != nil {
		age = 0
	}
	if err := m.session.Start(m.ctx, m.nameInput.Value(), age); err != nil {
		m.message = err.Error()
		if strings.TrimSpace(m.nameInput.Value()) == "" {
			m.ageInput.Blur()
			m.nameInput.Focus()
		}
		return m, nil
	}
	m.message = ""
	m.nameInput.Blur()
	m.ageInput.Blur()
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "1", "2", "3":
		mode := state.Modes[key[0]-'1']
		if err := m.session.SelectMode(m.ctx, mode); err != nil {
			m.message = err.Error()
			return m, nil
		}
		m.message = ""

	case "e", "m", "h":
		d := map[string]state.Difficulty{"e": state.Easy, "m": state.Medium, "h": state.Hard}[key]
		if err := m.session.Dispatch(m.ctx, game.SelectDifficulty{Difficulty: d}); err != nil {
			m.message = err.Error()
			return m, nil
		}
		m.message = ""
		m.answerInput.Reset()
		m.pending = true
		return m, m.questionCmd(m.session.State())

	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if m.pending {
			return m, nil
		}
		m.pending = true
		return m, m.answerCmd(m.session.State(), m.answerInput.Value())

	case tea.KeyTab:
		if m.pending {
			return m, nil
		}
		if err := m.session.Dispatch(m.ctx, game.SkipQuestion{}); err != nil {
			m.message = err.Error()
			return m, nil
		}
		m.message = ""
		m.answerInput.Reset()
		m.pending = true
		snap := m.session.State()
		if snap.Screen == state.ScreenResults {
			return m, m.finishCmd(snap)
		}
		return m, m.questionCmd(snap)
	}

	if !m.answerInput.Focused() {
		return m, nil
	}
	var cmd tea.Cmd
	m.answerInput, cmd = m.answerInput.Update(msg)
	return m, cmd
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error
	switch msg.String() {
	case "p":
		err = m.session.PlayAgain(m.ctx)
	case "b":
		err = m.session.BackToMenu(m.ctx)
	case "q", "esc":
		return m, tea.Quit
	default:
		return m, nil
	}
	if err != nil {
		m.message = err.Error()
		return m, nil
	}
	m.message = ""
	return m, m.loadHighScore()
}

// advance runs when the feedback pause is over.
func (m Model) advance() (tea.Model, tea.Cmd) {
	snap := m.session.State()
	if snap.Screen != state.ScreenGame || snap.Feedback == nil {
		return m, nil
	}
	m.pending = true
	if snap.Finished() {
		return m, m.finishCmd(snap)
	}
	return m, m.questionCmd(snap)
}

func (m Model) afterDispatch(a game.Action) (tea.Model, tea.Cmd) {
	switch a.(type) {
	case game.QuestionLoaded, game.QuestionFailed:
		m.answerInput.Reset()
		m.answerInput.Focus()
		return m, textinput.Blink
	case game.ShowResults:
		m.answerInput.Blur()
		return m, m.loadHighScore()
	}
	return m, nil
}

func (m Model) questionCmd(snap state.GameState) tea.Cmd {
	sess, ctx := m.session, m.ctx
	return func() tea.Msg {
		return actionMsg{action: sess.Question(ctx, snap)}
	}
}

func (m Model) answerCmd(snap state.GameState, text string) tea.Cmd {
	sess, ctx := m.session, m.ctx
	return func() tea.Msg {
		a, err := sess.Answer(ctx, snap, text)
		return answerMsg{action: a, err: err}
	}
}

func (m Model) finishCmd(snap state.GameState) tea.Cmd {
	sess, ctx := m.session, m.ctx
	return func() tea.Msg {
		return actionMsg{action: sess.Finish(ctx, snap)}
	}
}

func (m Model) feedbackTick(seq int) tea.Cmd {
	return tea.Tick(m.session.FeedbackDelay(), func(time.Time) tea.Msg {
		return feedbackDoneMsg{seq: seq}
	})
}

func (m Model) loadHighScore() tea.Cmd {
	sess, ctx := m.session, m.ctx
	return func() tea.Msg {
		return highScoreMsg(sess.HighScore(ctx))
	}
}

// ----------------------------- views ----------------------------------

func (m Model) View() string {
	s := m.session.State()

	var body string
	switch s.Screen {
	case state.ScreenSetup:
		body = m.viewSetup()
	case state.ScreenMenu:
		body = m.viewMenu(s)
	case state.ScreenGame:
		body = m.viewGame(s)
	case state.ScreenResults:
		body = m.viewResults(s)
	}

	out := titleStyle.Render("🐝 Spelling Tutor") + "\n\n" + body
	if m.message != "" {
		out += "\n\n" + redStyle.Render(m.message)
	}
	return out + "\n"
}

func (m Model) viewSetup() string {
	var b strings.Builder
	b.WriteString(boldStyle.Render("Welcome! Let's learn some words.") + "\n\n")
	b.WriteString("Name: " + m.nameInput.View() + "\n")
	b.WriteString("Age:  " + m.ageInput.View() + "\n\n")
	b.WriteString(helpStyle.Render("enter next/start • tab switch field • ctrl+c quit"))
	return b.String()
}

func (m Model) viewMenu(s state.GameState) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Hi %s! Pick a game.", boldStyle.Render(s.PlayerName)))
	if m.highScore > 0 {
		b.WriteString("  " + scoreStyle.Render(fmt.Sprintf("High score: %d", m.highScore)))
	}
	b.WriteString("\n\n")

	descriptions := map[state.Mode]string{
		state.ModeJumbled:  "🔀 Unscramble the letters",
		state.ModeSpelling: "🐝 Spell the word from a hint",
		state.ModeLetter:   "🔤 Words that start with a letter",
	}
	cards := make([]string, 0, len(state.Modes))
	for i, mode := range state.Modes {
		style := cardStyle
		if mode == s.Mode {
			style = selectedCardStyle
		}
		cards = append(cards, style.Render(fmt.Sprintf("%d. %s\n%s", i+1, boldStyle.Render(mode.Title()), descriptions[mode])))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n\n")

	b.WriteString("Difficulty: ")
	for i, d := range state.Difficulties {
		if i > 0 {
			b.WriteString("   ")
		}
		b.WriteString(fmt.Sprintf("[%c] %s (%d pts)", d[0], d, scoring.BaseScore(d)))
	}
	b.WriteString("\n\n" + helpStyle.Render("1-3 choose mode • e/m/h start • q quit"))
	return b.String()
}

func (m Model) viewGame(s state.GameState) string {
	var b strings.Builder

	status := fmt.Sprintf("Score: %d   Streak: 🔥 %d   Question %d/%d", s.Score, s.Streak, s.QuestionNumber(), s.TotalQuestions)
	b.WriteString(scoreStyle.Render(status) + "\n")
	b.WriteString(m.progress.ViewAs(s.Progress()) + "\n")

	var panel strings.Builder
	switch q := s.CurrentWord; {
	case s.LoadError != "":
		panel.WriteString("⚠️\n")
		panel.WriteString(questionStyle.Render(s.LoadError) + "\n")
		panel.WriteString(helpStyle.Render("Press tab to skip this question."))
	case q == nil:
		panel.WriteString("Loading…")
	default:
		emoji, text, hint := questionText(s.Mode, *q)
		panel.WriteString(emoji + "\n")
		panel.WriteString(questionStyle.Render(text) + "\n")
		panel.WriteString("💡 " + hint)
	}
	b.WriteString(panelStyle.Render(panel.String()) + "\n\n")

	b.WriteString("> " + m.answerInput.View() + "\n")

	if f := s.Feedback; f != nil {
		b.WriteString("\n")
		switch {
		case f.Skipped:
			b.WriteString(helpStyle.Render("⏭  Skipped"))
		case f.Correct:
			b.WriteString(greenStyle.Render("🎉 Excellent! That's correct! ") + boldStyle.Render(f.Word))
		default:
			b.WriteString(redStyle.Render("❌ Oops! The correct answer is: ") + boldStyle.Render(f.Word))
		}
		b.WriteString("\n")
	}
	if c := m.confetti(); c != "" {
		b.WriteString("\n" + c + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("enter submit • tab skip • ctrl+c quit"))
	return b.String()
}

// questionText returns the emoji, the prompt and the hint shown for q.
func questionText(mode state.Mode, q state.Question) (string, string, string) {
	switch mode {
	case state.ModeJumbled:
		return orDefault(q.Image, "🎯"), strings.ToUpper(q.Jumbled), "Hint: " + q.Hint
	case state.ModeLetter:
		return "📝", "_ _ _ _ _", fmt.Sprintf("Spell a word starting with %q: %s", q.Letter, q.Word)
	}
	return orDefault(q.Image, "🎯"), "❓❓❓", "Spell this word: " + q.Hint
}

func (m Model) viewResults(s state.GameState) string {
	r, ok := m.session.Results()
	if !ok {
		return "Saving your score…"
	}

	var b strings.Builder
	b.WriteString(boldStyle.Render(fmt.Sprintf("🎉 Great job, %s!", s.PlayerName)) + "\n\n")
	b.WriteString(scoreStyle.Render(fmt.Sprintf("Score: %d", r.Score)) + "\n")
	b.WriteString(greenStyle.Render(fmt.Sprintf("Correct: %d", r.Correct)) + "\n")
	b.WriteString(redStyle.Render(fmt.Sprintf("Incorrect: %d", r.Incorrect)) + "\n")
	b.WriteString(fmt.Sprintf("Best streak: %d\n", r.BestStreak))
	b.WriteString(fmt.Sprintf("Accuracy: %.0f%%\n\n", r.Percentage))
	b.WriteString(r.Rating() + "\n")
	if m.highScore > 0 {
		b.WriteString(helpStyle.Render(fmt.Sprintf("High score: %d", m.highScore)) + "\n")
	}
	if c := m.confetti(); c != "" {
		b.WriteString("\n" + c + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("p play again • b back to menu • q quit"))
	return b.String()
}

func (m Model) confetti() string {
	if m.celebrate == nil {
		return ""
	}
	return m.celebrate.Burst()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
