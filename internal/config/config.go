// Package config loads spelltutor settings from YAML and the environment.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

//go:embed default.yaml
var defaultYAML []byte

// Store backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config is the complete application configuration.
type Config struct {
	Game   GameConfig   `yaml:"game"`
	Words  WordsConfig  `yaml:"words"`
	Store  StoreConfig  `yaml:"store"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

type GameConfig struct {
	TotalQuestions int           `yaml:"total_questions"`
	FeedbackDelay  time.Duration `yaml:"feedback_delay"`
}

// WordsConfig locates the word data.
type WordsConfig struct {
	URL     string        `yaml:"url"`
	Catalog string        `yaml:"catalog"`
	Timeout time.Duration `yaml:"timeout"`
}

// StoreConfig selects where high scores and game history are kept.
type StoreConfig struct {
	Backend string      `yaml:"backend"`
	Path    string      `yaml:"path"`
	Redis   RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

type ServerConfig struct {
	HTTP    string `yaml:"http"`
	SSH     string `yaml:"ssh"`
	HostKey string `yaml:"host_key"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the hardcoded defaults. They match the embedded default.yaml.
func Default() Config {
	return Config{
		Game: GameConfig{
			TotalQuestions: 10,
			FeedbackDelay:  2 * time.Second,
		},
		Words: WordsConfig{
			URL: "http://localhost:5000",
		},
		Store: StoreConfig{
			Backend: BackendJSON,
			Redis: RedisConfig{
				Addr: "localhost:6379",
				Key:  "spelltutor",
			},
		},
		Server: ServerConfig{
			HTTP:    ":5000",
			HostKey: "~/.config/spelltutor/ssh_host_ed25519",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.config/spelltutor/spelltutor.log",
		},
	}
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendJSON, BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("config: unknown store backend %q", c.Store.Backend)
	}
	if c.Game.TotalQuestions <= 0 {
		return fmt.Errorf("config: game.total_questions must be positive, got %d", c.Game.TotalQuestions)
	}
	if c.Game.FeedbackDelay < 0 {
		return fmt.Errorf("config: game.feedback_delay must not be negative")
	}
	if c.Words.Timeout < 0 {
		return fmt.Errorf("config: words.timeout must not be negative")
	}
	return nil
}

// StorePath is the file used by the json and sqlite backends.
func (c Config) StorePath() string {
	if c.Store.Path != "" {
		return ExpandPath(c.Store.Path)
	}
	name := "scores.json"
	if c.Store.Backend == BackendSQLite {
		name = "scores.db"
	}
	return filepath.Join(Dir(), name)
}

// Dir is ~/.config/spelltutor, or a relative .spelltutor when home is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".spelltutor"
	}
	return filepath.Join(home, ".config", "spelltutor")
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
