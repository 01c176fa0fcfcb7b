package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"spelltutor/internal/config"
	"spelltutor/internal/effects"
	"spelltutor/internal/game"
	"spelltutor/internal/scoring"
	"spelltutor/internal/storage"
	"spelltutor/internal/words"
)

// app holds what a command needs once configuration is loaded.
type app struct {
	cfg     config.Config
	logger  *log.Logger
	scores  scoring.HighScoreStore
	history scoring.HistoryStore
	closers []io.Closer
}

// newApp loads configuration, sets up logging and opens the score store.
// With logToFile set, logs go to log.file so they stay off the game screen.
func newApp(ctx context.Context, opts *rootOptions, logToFile bool) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	a := &app{cfg: cfg}
	logger, closer, err := newLogger(cfg.Log, logToFile)
	if err != nil {
		return nil, err
	}
	a.logger = logger
	if closer != nil {
		a.closers = append(a.closers, closer)
	}

	if err := a.openStores(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func newLogger(lc config.LogConfig, toFile bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", lc.Level, err)
	}

	var w io.Writer = os.Stderr
	var closer io.Closer
	if toFile {
		w = io.Discard
		if lc.File != "" {
			path := config.ExpandPath(lc.File)
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
			}
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return nil, nil, fmt.Errorf("cannot open log file: %w", err)
			}
			w, closer = f, f
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "spelltutor",
		Level:           level,
	})
	return logger, closer, nil
}

func (a *app) openStores(ctx context.Context) error {
	sc := a.cfg.Store
	switch sc.Backend {
	case config.BackendJSON:
		s := scoring.NewJSONFileStoreAt(a.cfg.StorePath())
		a.scores, a.history = s, s

	case config.BackendSQLite:
		s, err := storage.OpenSQLite(a.cfg.StorePath())
		if err != nil {
			return err
		}
		a.closers = append(a.closers, s)
		a.scores, a.history = s, s

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     sc.Redis.Addr,
			Password: sc.Redis.Password,
			DB:       sc.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			return fmt.Errorf("cannot reach redis at %s: %w", sc.Redis.Addr, err)
		}
		a.closers = append(a.closers, client)
		s := storage.NewRedisStore(client, sc.Redis.Key)
		a.scores, a.history = s, s

	case config.BackendMemory:
		s := scoring.NewMemoryStore(0)
		a.scores, a.history = s, s

	default:
		return fmt.Errorf("unknown store backend %q", sc.Backend)
	}
	a.logger.Debug("score store ready", "backend", sc.Backend)
	return nil
}

// wordProvider returns the in-process catalog when offline, or an HTTP
// client for words.url.
func (a *app) wordProvider(offline bool) (words.Provider, error) {
	if offline {
		return a.catalog()
	}
	return words.NewClient(a.cfg.Words.URL, a.cfg.Words.Timeout), nil
}

func (a *app) catalog() (*words.Catalog, error) {
	c, err := words.LoadCatalog(config.ExpandPath(a.cfg.Words.Catalog))
	if err != nil {
		return nil, err
	}
	c.Seed(time.Now().UnixNano())
	return c, nil
}

// newSession builds a game session with sound and confetti attached.
func (a *app) newSession(p words.Provider, audio effects.AudioPlayer, logger *log.Logger) (*game.Session, *effects.Celebrator) {
	sess := game.NewSession(game.Options{
		Words:          p,
		Scores:         a.scores,
		History:        a.history,
		Logger:         logger,
		TotalQuestions: a.cfg.Game.TotalQuestions,
		FeedbackDelay:  a.cfg.Game.FeedbackDelay,
	})
	celebrator := effects.NewCelebrator(rand.New(rand.NewSource(time.Now().UnixNano())))
	sess.Subscribe(effects.Listener(audio))
	sess.Subscribe(celebrator.Listener())
	return sess, celebrator
}

// Close releases stores and the log file.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
