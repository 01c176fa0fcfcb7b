package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultMatchesEmbeddedYAML(t *testing.T) {
	cfg, err := parse(defaultYAML)
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded default differs from Default():\n%+v\n%+v", cfg, Default())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoad_CustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte(`
game:
  total_questions: 5
  feedback_delay: 500ms
store:
  backend: sqlite
  path: /tmp/scores.db
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Game.TotalQuestions != 5 || cfg.Game.FeedbackDelay != 500*time.Millisecond {
		t.Errorf("Unexpected game config %+v", cfg.Game)
	}
	if cfg.Store.Backend != BackendSQLite || cfg.StorePath() != "/tmp/scores.db" {
		t.Errorf("Unexpected store config %+v", cfg.Store)
	}
	// Keys not in the file keep their defaults.
	if cfg.Store.Redis.Key != "spelltutor" || cfg.Log.Level != "info" {
		t.Errorf("Defaults lost: %+v %+v", cfg.Store.Redis, cfg.Log)
	}
}

func TestLoad_CustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for a missing custom config")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("game: [not, a, map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Expected error for malformed YAML")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("store:\n  backend: floppy\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); err == nil {
		t.Error("Expected validation error for unknown backend")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvWordsURL:  "http://words:9000",
		EnvStore:     BackendRedis,
		EnvPort:      "8081",
		EnvLogLevel:  "debug",
		EnvRedisAddr: "redis:6379",
	}
	cfg := Default()
	ApplyEnv(&cfg, func(k string) string { return env[k] })

	if cfg.Words.URL != "http://words:9000" || cfg.Store.Backend != BackendRedis ||
		cfg.Server.HTTP != ":8081" || cfg.Log.Level != "debug" || cfg.Store.Redis.Addr != "redis:6379" {
		t.Errorf("Overrides not applied: %+v", cfg)
	}

	cfg = Default()
	ApplyEnv(&cfg, func(k string) string {
		if k == EnvPort {
			return "http"
		}
		return ""
	})
	if cfg != Default() {
		t.Errorf("Unset or bad variables changed the config: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero questions", func(c *Config) { c.Game.TotalQuestions = 0 }},
		{"negative delay", func(c *Config) { c.Game.FeedbackDelay = -time.Second }},
		{"negative timeout", func(c *Config) { c.Words.Timeout = -time.Second }},
		{"bad backend", func(c *Config) { c.Store.Backend = "mongo" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestStorePathDefaults(t *testing.T) {
	cfg := Default()
	if filepath.Base(cfg.StorePath()) != "scores.json" {
		t.Errorf("Unexpected json path %s", cfg.StorePath())
	}
	cfg.Store.Backend = BackendSQLite
	if filepath.Base(cfg.StorePath()) != "scores.db" {
		t.Errorf("Unexpected sqlite path %s", cfg.StorePath())
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("SPELLTUTOR_TEST_VALUE=from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SPELLTUTOR_TEST_VALUE", "")
	os.Unsetenv("SPELLTUTOR_TEST_VALUE")

	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv failed: %v", err)
	}
	if got := os.Getenv("SPELLTUTOR_TEST_VALUE"); got != "from-file" {
		t.Errorf("Expected value from .env, got %q", got)
	}
}
