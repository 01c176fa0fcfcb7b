package game

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"spelltutor/internal/scoring"
	"spelltutor/internal/state"
	"spelltutor/internal/words"
)

// DefaultFeedbackDelay is how long answer feedback stays up before the game moves on.
const DefaultFeedbackDelay = 2 * time.Second

// EventKind tells listeners what just happened.
type EventKind int

const (
	EventRejected EventKind = iota // an action failed validation
	EventStarted
	EventModeSelected
	EventGameStarted
	EventQuestionLoaded
	EventQuestionFailed
	EventCorrect
	EventIncorrect
	EventSkipped
	EventFinished
	EventMenu
)

func (k EventKind) String() string {
	switch k {
	case EventRejected:
		return "rejected"
	case EventStarted:
		return "started"
	case EventModeSelected:
		return "mode_selected"
	case EventGameStarted:
		return "game_started"
	case EventQuestionLoaded:
		return "question_loaded"
	case EventQuestionFailed:
		return "question_failed"
	case EventCorrect:
		return "correct"
	case EventIncorrect:
		return "incorrect"
	case EventSkipped:
		return "skipped"
	case EventFinished:
		return "finished"
	case EventMenu:
		return "menu"
	}
	return "unknown"
}

// Event is published after every dispatched action.
type Event struct {
	Kind  EventKind
	State state.GameState
	// Err is set for EventRejected and EventQuestionFailed.
	Err error
	// Results is set for EventFinished.
	Results *scoring.Results
}

// Listener receives session events. Listeners run synchronously on the
// dispatching goroutine and must not call back into the session.
type Listener func(Event)

// Options configures a Session.
type Options struct {
	Words   words.Provider
	Scores  scoring.HighScoreStore
	History scoring.HistoryStore // optional

	Logger *log.Logger
	Rand   *rand.Rand
	Now    func() time.Time

	TotalQuestions int
	FeedbackDelay  time.Duration
}

// Session owns the GameState of one player.
//
// Work that blocks (fetching questions, checking letter answers, saving the
// score) is split from state changes: Question, Answer and Finish read a
// snapshot and return an Action, and Dispatch applies it. A UI event loop
// runs the former off-loop and the latter on-loop. Start, Submit, Skip and
// the other helpers do both in sequence.
type Session struct {
	opts Options

	mu        sync.Mutex
	state     state.GameState
	results   *scoring.Results
	listeners []Listener
}

// NewSession creates a session sitting on the setup screen.
func NewSession(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.FeedbackDelay <= 0 {
		opts.FeedbackDelay = DefaultFeedbackDelay
	}
	if opts.Scores == nil {
		opts.Scores = scoring.NewMemoryStore(0)
	}
	return &Session{opts: opts, state: state.New(opts.TotalQuestions)}
}

// State returns a snapshot of the current state.
func (s *Session) State() state.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Results returns the results of the last finished game, if any.
func (s *Session) Results() (scoring.Results, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.results == nil {
		return scoring.Results{}, false
	}
	return *s.results, true
}

// FeedbackDelay is the pause between an answer and the next question.
func (s *Session) FeedbackDelay() time.Duration { return s.opts.FeedbackDelay }

// Subscribe registers l for all future events.
func (s *Session) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// HighScore loads the stored high score. Storage errors read as 0.
func (s *Session) HighScore(ctx context.Context) int {
	hs, err := s.opts.Scores.Load(ctx)
	if err != nil {
		s.opts.Logger.Warn("failed to load high score", "err", err)
		return 0
	}
	return hs
}

// Dispatch applies a to the current state and notifies listeners.
func (s *Session) Dispatch(ctx context.Context, a Action) error {
	s.mu.Lock()
	prev := s.state
	next, err := Reduce(ctx, prev, a)
	var ev Event
	if err != nil {
		ev = Event{Kind: EventRejected, State: prev, Err: err}
	} else {
		s.state = next
		ev = s.eventFor(prev, next, a)
	}
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	if err != nil {
		s.opts.Logger.Debug("action rejected", "action", actionName(a), "err", err)
	} else {
		s.opts.Logger.Debug("action applied", "action", actionName(a), "event", ev.Kind, "screen", ev.State.Screen)
	}
	for _, l := range listeners {
		l(ev)
	}
	return err
}

// eventFor must be called with s.mu held.
func (s *Session) eventFor(prev, next state.GameState, a Action) Event {
	ev := Event{State: next}
	switch a := a.(type) {
	case StartGame:
		ev.Kind = EventStarted
	case SelectMode:
		ev.Kind = EventModeSelected
	case SelectDifficulty:
		s.results = nil
		ev.Kind = EventGameStarted
	case QuestionLoaded:
		ev.Kind = EventQuestionLoaded
	case QuestionFailed:
		ev.Kind = EventQuestionFailed
		ev.Err = a.Err
	case AnswerEvaluated:
		ev.Kind = EventIncorrect
		if a.Verdict.Correct {
			ev.Kind = EventCorrect
		}
	case SkipQuestion:
		ev.Kind = EventSkipped
	case ShowResults:
		r := a.Results
		s.results = &r
		ev.Kind = EventFinished
		ev.Results = &r
	case PlayAgain, BackToMenu:
		ev.Kind = EventMenu
	}
	return ev
}

// Question fetches the next question for snapshot and returns the action
// that installs it. Fetch failures become QuestionFailed.
func (s *Session) Question(ctx context.Context, snapshot state.GameState) Action {
	q, err := LoadQuestion(ctx, s.opts.Words, snapshot.Mode, snapshot.Difficulty, s.opts.Rand)
	if err != nil {
		s.opts.Logger.Error("failed to load question", "mode", snapshot.Mode, "difficulty", snapshot.Difficulty, "err", err)
		return QuestionFailed{Err: err}
	}
	return QuestionLoaded{Question: q}
}

// Answer evaluates text against the question in snapshot. Validation
// failures are returned as errors and no action is produced.
func (s *Session) Answer(ctx context.Context, snapshot state.GameState, text string) (Action, error) {
	switch {
	case snapshot.Screen == state.ScreenGame && snapshot.Feedback == nil && snapshot.LoadError != "":
		return nil, state.Invalid(state.ErrNoQuestion, msgNoQuestion)
	case !snapshot.AwaitingAnswer():
		return nil, state.Invalid(state.ErrInvalidTransition, msgNotNow)
	case snapshot.CurrentWord == nil:
		return nil, state.Invalid(state.ErrNoQuestion, msgNoQuestion)
	}

	v, err := Evaluate(ctx, s.opts.Words, snapshot.Mode, *snapshot.CurrentWord, text)
	if err != nil {
		if state.IsValidation(err) {
			return nil, err
		}
		s.opts.Logger.Warn("could not re-fetch letter words, counting answer as incorrect", "letter", snapshot.CurrentWord.Letter, "err", err)
	}
	return AnswerEvaluated{For: snapshot.CurrentWord, Verdict: v}, nil
}

// Finish saves the final score and records the game. Storage failures are
// logged and treated as no new record.
func (s *Session) Finish(ctx context.Context, snapshot state.GameState) Action {
	newRecord, err := s.opts.Scores.Save(ctx, snapshot.Score)
	if err != nil {
		s.opts.Logger.Error("failed to save high score", "score", snapshot.Score, "err", err)
		newRecord = false
	}

	r := scoring.ComputeResults(snapshot, newRecord)
	if s.opts.History != nil {
		entry := scoring.NewResultEntry(snapshot, r, s.opts.Now())
		if err := s.opts.History.Record(ctx, entry); err != nil {
			s.opts.Logger.Error("failed to record game", "player", snapshot.PlayerName, "err", err)
		}
	}
	s.opts.Logger.Info("game finished",
		"player", snapshot.PlayerName,
		"mode", snapshot.Mode,
		"difficulty", snapshot.Difficulty,
		"score", r.Score,
		"stars", r.Stars,
		"record", r.NewRecord,
	)
	return ShowResults{Results: r}
}

// Start submits the setup form.
func (s *Session) Start(ctx context.Context, name string, age int) error {
	return s.Dispatch(ctx, StartGame{Name: name, Age: age})
}

func (s *Session) SelectMode(ctx context.Context, m state.Mode) error {
	return s.Dispatch(ctx, SelectMode{Mode: m})
}

// SelectDifficulty starts a game and loads its first question. A failed
// load is not an error: the state carries LoadError instead.
func (s *Session) SelectDifficulty(ctx context.Context, d state.Difficulty) error {
	if err := s.Dispatch(ctx, SelectDifficulty{Difficulty: d}); err != nil {
		return err
	}
	return s.loadNext(ctx)
}

// Submit evaluates and scores an answer. The next question is loaded by
// Advance once the feedback delay has passed.
func (s *Session) Submit(ctx context.Context, text string) error {
	a, err := s.Answer(ctx, s.State(), text)
	if err != nil {
		s.reject(err)
		return err
	}
	return s.Dispatch(ctx, a)
}

// Skip abandons the current question and moves straight on.
func (s *Session) Skip(ctx context.Context) error {
	if err := s.Dispatch(ctx, SkipQuestion{}); err != nil {
		return err
	}
	if s.State().Screen == state.ScreenResults {
		return s.Dispatch(ctx, s.Finish(ctx, s.State()))
	}
	return s.loadNext(ctx)
}

// Advance ends the feedback pause: it shows results after the last
// question, or loads the next one.
func (s *Session) Advance(ctx context.Context) error {
	snap := s.State()
	if snap.Screen != state.ScreenGame || snap.Feedback == nil {
		err := state.Invalid(state.ErrInvalidTransition, msgNotNow)
		s.reject(err)
		return err
	}
	if snap.Finished() {
		return s.Dispatch(ctx, s.Finish(ctx, snap))
	}
	return s.loadNext(ctx)
}

// AdvanceAfterDelay waits out the feedback delay, then calls Advance.
func (s *Session) AdvanceAfterDelay(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t := time.NewTimer(s.opts.FeedbackDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
	}
	return s.Advance(ctx)
}

func (s *Session) PlayAgain(ctx context.Context) error {
	return s.Dispatch(ctx, PlayAgain{})
}

func (s *Session) BackToMenu(ctx context.Context) error {
	return s.Dispatch(ctx, BackToMenu{})
}

func (s *Session) loadNext(ctx context.Context) error {
	a := s.Question(ctx, s.State())
	err := s.Dispatch(ctx, a)
	var ve *state.ValidationError
	if errors.As(err, &ve) && errors.Is(ve, state.ErrInvalidTransition) {
		// The game moved on while the question was loading.
		return nil
	}
	return err
}

// reject publishes a validation failure that never reached Reduce.
func (s *Session) reject(err error) {
	s.mu.Lock()
	ev := Event{Kind: EventRejected, State: s.state, Err: err}
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()
	for _, l := range listeners {
		l(ev)
	}
}

func actionName(a Action) string {
	switch a.(type) {
	case StartGame:
		return "start"
	case SelectMode:
		return "select_mode"
	case SelectDifficulty:
		return "select_difficulty"
	case QuestionLoaded:
		return "question_loaded"
	case QuestionFailed:
		return "question_failed"
	case AnswerEvaluated:
		return "answer"
	case SkipQuestion:
		return "skip"
	case ShowResults:
		return "show_results"
	case PlayAgain:
		return "play_again"
	case BackToMenu:
		return "back_to_menu"
	}
	return "unknown"
}
