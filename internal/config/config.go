// Package config loads the aicommit settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every load and validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Defaults.
const (
	DefaultModel          = "llama3.1"
	DefaultOllamaHost     = "http://localhost:11434"
	DefaultEditor         = "vim"
	DefaultMaxDiffBytes   = 100 * 1024
	DefaultRequestTimeout = 2 * time.Minute
)

// Environment overrides.
const (
	EnvModel      = "AICOMMIT_MODEL"
	EnvOllamaHost = "OLLAMA_HOST"
	EnvEditor     = "AICOMMIT_EDITOR"
)

// Config represents the application configuration.
type Config struct {
	Model          string        `yaml:"model"`
	OllamaHost     string        `yaml:"ollama_host"`
	Editor         string        `yaml:"editor,omitempty"`
	Temperature    float64       `yaml:"temperature"`
	MaxDiffBytes   int           `yaml:"max_diff_bytes"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Model:          DefaultModel,
		OllamaHost:     DefaultOllamaHost,
		Temperature:    0,
		MaxDiffBytes:   DefaultMaxDiffBytes,
		RequestTimeout: DefaultRequestTimeout,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/aicommit/config.yaml (or the OS equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, "aicommit", "config.yaml"), nil
}

// Load reads path on top of the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Exists reports whether a config file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Save writes cfg to path, creating the parent directory.
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: model is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.OllamaHost) == "" {
		return fmt.Errorf("%w: ollama_host is required", ErrInvalidConfig)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%w: temperature must be between 0 and 2, got %g", ErrInvalidConfig, c.Temperature)
	}
	if c.MaxDiffBytes < 0 {
		return fmt.Errorf("%w: max_diff_bytes must not be negative", ErrInvalidConfig)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("%w: request_timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}

// ResolveEditor returns the editor command: the configured one, then
// $GIT_EDITOR, $VISUAL, $EDITOR, then vim.
func (c *Config) ResolveEditor(getenv func(string) string) string {
	if c.Editor != "" {
		return c.Editor
	}
	for _, key := range []string{"GIT_EDITOR", "VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
	}
	return DefaultEditor
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvModel)); v != "" {
		c.Model = v
	}
	if v := strings.TrimSpace(getenv(EnvOllamaHost)); v != "" {
		c.OllamaHost = v
	}
	if v := strings.TrimSpace(getenv(EnvEditor)); v != "" {
		c.Editor = v
	}
}
