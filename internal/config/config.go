// Package config loads the .architect/config.yaml configuration file.
// API keys never live here; they come from the environment (optionally via a
// .env file loaded at startup).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/uilabs/architect/internal/architect"
	"github.com/uilabs/architect/internal/tokens"
)

// Dir is the configuration directory, relative to the working directory.
const Dir = ".architect"

// File is the config file name inside Dir.
const File = "config.yaml"

// SessionConfig selects the session store backend.
type SessionConfig struct {
	Backend string // "memory" or "sqlite"
	Path    string // sqlite database path
}

// TransportConfig controls client-side backoff on transient service errors.
type TransportConfig struct {
	Retries   int
	BaseDelay time.Duration
}

// Config is the resolved configuration with defaults applied.
type Config struct {
	Provider    string
	Model       string
	BaseURL     string
	MaxRetries  int
	Temperature float64
	MaxTokens   int
	TokensPath  string
	Listen      string
	Session     SessionConfig
	Transport   TransportConfig
}

// rawConfig mirrors the YAML structure. Pointer fields distinguish "not set"
// from explicit zero values.
type rawConfig struct {
	Provider    *string  `yaml:"provider"`
	Model       *string  `yaml:"model"`
	BaseURL     *string  `yaml:"baseURL"`
	MaxRetries  *int     `yaml:"maxRetries"`
	Temperature *float64 `yaml:"temperature"`
	MaxTokens   *int     `yaml:"maxTokens"`
	TokensPath  *string  `yaml:"tokensPath"`
	Listen      *string  `yaml:"listen"`
	Session     struct {
		Backend *string `yaml:"backend"`
		Path    *string `yaml:"path"`
	} `yaml:"session"`
	Transport struct {
		Retries   *int    `yaml:"retries"`
		BaseDelay *string `yaml:"baseDelay"`
	} `yaml:"transport"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		Provider:   "groq",
		MaxRetries: architect.DefaultMaxRetries,
		TokensPath: tokens.DefaultPath,
		Listen:     ":8080",
		Session: SessionConfig{
			Backend: "memory",
			Path:    filepath.Join(Dir, "sessions.db"),
		},
		Transport: TransportConfig{
			BaseDelay: 2 * time.Second,
		},
	}
}

// Load reads .architect/config.yaml under dir, merging file values over
// defaults. A missing file yields the defaults; a malformed one is an error.
func Load(dir string) (Config, error) {
	cfg := Default()

	path := filepath.Join(dir, Dir, File)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", path, err)
	}

	if raw.Provider != nil {
		cfg.Provider = *raw.Provider
	}
	if raw.Model != nil {
		cfg.Model = *raw.Model
	}
	if raw.BaseURL != nil {
		cfg.BaseURL = *raw.BaseURL
	}
	if raw.MaxRetries != nil {
		cfg.MaxRetries = *raw.MaxRetries
	}
	if raw.Temperature != nil {
		cfg.Temperature = *raw.Temperature
	}
	if raw.MaxTokens != nil {
		cfg.MaxTokens = *raw.MaxTokens
	}
	if raw.TokensPath != nil {
		cfg.TokensPath = *raw.TokensPath
	}
	if raw.Listen != nil {
		cfg.Listen = *raw.Listen
	}
	if raw.Session.Backend != nil {
		cfg.Session.Backend = *raw.Session.Backend
	}
	if raw.Session.Path != nil {
		cfg.Session.Path = *raw.Session.Path
	}
	if raw.Transport.Retries != nil {
		cfg.Transport.Retries = *raw.Transport.Retries
	}
	if raw.Transport.BaseDelay != nil {
		d, err := time.ParseDuration(*raw.Transport.BaseDelay)
		if err != nil {
			return cfg, fmt.Errorf("invalid transport.baseDelay %q: %w", *raw.Transport.BaseDelay, err)
		}
		cfg.Transport.BaseDelay = d
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider must not be empty")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("maxRetries must not be negative")
	}
	if c.Session.Backend != "memory" && c.Session.Backend != "sqlite" {
		return fmt.Errorf("session.backend must be memory or sqlite, got %q", c.Session.Backend)
	}
	return nil
}

// APIKeyEnv names the environment variable carrying the given provider's key.
func APIKeyEnv(provider string) string {
	switch provider {
	case "claude":
		return "ANTHROPIC_API_KEY"
	default:
		return "GROQ_API_KEY"
	}
}
