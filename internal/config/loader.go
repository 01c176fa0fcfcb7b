package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the file.
const (
	EnvWordsURL  = "SPELLTUTOR_WORDS_URL"
	EnvStore     = "SPELLTUTOR_STORE"
	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvRedisAddr = "REDIS_ADDR"
)

// Load reads the configuration and applies environment overrides.
// Search order: customPath -> ~/.config/spelltutor/config.yaml -> ./configs/spelltutor.yaml -> embedded default.
// Only a custom path that cannot be read or parsed is an error.
func Load(customPath string) (Config, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	ApplyEnv(&cfg, os.Getenv)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Default(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Default(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{filepath.Join(Dir(), "config.yaml"), filepath.Join("configs", "spelltutor.yaml")} {
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	cfg, err := parse(defaultYAML)
	if err != nil {
		return Default(), nil
	}
	return cfg, nil
}

// parse decodes data over the defaults so omitted keys keep their default.
func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any of the supported variables that are set.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv(EnvWordsURL); v != "" {
		cfg.Words.URL = v
	}
	if v := getenv(EnvStore); v != "" {
		cfg.Store.Backend = v
	}
	if v := getenv(EnvPort); v != "" {
		if _, err := strconv.Atoi(v); err == nil {
			cfg.Server.HTTP = ":" + v
		}
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := getenv(EnvRedisAddr); v != "" {
		cfg.Store.Redis.Addr = v
	}
}

// LoadDotEnv loads variables from the given .env files (default ./.env)
// without overriding ones already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}
