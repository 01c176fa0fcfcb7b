package words

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"spelltutor/internal/scoring"
	"spelltutor/internal/state"
)

// leaderboardSize is the number of entries GET /api/leaderboard returns.
const leaderboardSize = 10

// Server exposes a Catalog over HTTP.
type Server struct {
	r       *chi.Mux
	catalog *Catalog
	history scoring.HistoryStore
	logger  *log.Logger
}

// NewServer installs middleware and routes. history may be nil, in which
// case the leaderboard is a fixed sample.
func NewServer(catalog *Catalog, history scoring.HistoryStore, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{r: chi.NewRouter(), catalog: catalog, history: history, logger: logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(s.requestLogger)
	s.r.Use(jsonContentType)
	s.r.Use(allowAnyOrigin)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	s.r.Route("/api", func(r chi.Router) {
		r.Get("/word/random", s.handleRandomWord)
		r.Get("/word/letter", s.handleLetterWords)
		r.Post("/check/spelling", s.handleCheckSpelling)
		r.Get("/stats", s.handleStats)
		r.Get("/leaderboard", s.handleLeaderboard)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.r }

func (s *Server) handleRandomWord(w http.ResponseWriter, r *http.Request) {
	difficulty := r.URL.Query().Get("difficulty")
	if difficulty == "" {
		difficulty = string(state.Easy)
	}

	entry, err := s.catalog.RandomWord(r.Context(), state.Difficulty(difficulty))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid difficulty"})
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleLetterWords(w http.ResponseWriter, r *http.Request) {
	letter := strings.ToUpper(r.URL.Query().Get("letter"))
	if letter == "" {
		letter = "A"
	}

	lw, err := s.catalog.LetterWords(r.Context(), letter)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid letter"})
		return
	}
	writeJSON(w, http.StatusOK, lw)
}

type checkSpellingReq struct {
	Answer  string `json:"answer"`
	Correct string `json:"correct"`
}

type checkSpellingRes struct {
	Correct       bool   `json:"correct"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
}

func (s *Server) handleCheckSpelling(w http.ResponseWriter, r *http.Request) {
	var req checkSpellingReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		return
	}

	user := strings.ToLower(strings.TrimSpace(req.Answer))
	correct := strings.ToLower(strings.TrimSpace(req.Correct))
	writeJSON(w, http.StatusOK, checkSpellingRes{
		Correct:       user == correct,
		UserAnswer:    user,
		CorrectAnswer: correct,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Stats())
}

type leaderboardEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Level string `json:"level"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSON(w, http.StatusOK, map[string][]leaderboardEntry{"topScores": sampleLeaderboard()})
		return
	}

	top, err := s.history.Top(r.Context(), leaderboardSize)
	if err != nil {
		s.logger.Error("leaderboard query failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "leaderboard unavailable"})
		return
	}

	out := make([]leaderboardEntry, 0, len(top))
	for _, e := range top {
		out = append(out, leaderboardEntry{Name: e.Player, Score: e.Score, Level: e.Level()})
	}
	writeJSON(w, http.StatusOK, map[string][]leaderboardEntry{"topScores": out})
}

// sampleLeaderboard is served when no score history is configured.
func sampleLeaderboard() []leaderboardEntry {
	return []leaderboardEntry{
		{Name: "Champion", Score: 1000, Level: "Expert"},
		{Name: "StarLearner", Score: 850, Level: "Advanced"},
		{Name: "WordWizard", Score: 720, Level: "Intermediate"},
	}
}

// ----------------------------- middleware ----------------------------------

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// allowAnyOrigin lets browser clients on other origins call the API.
func allowAnyOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
