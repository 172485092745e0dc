// Package config loads settings from TOML files with environment overrides.
//
// Resolution order, lowest to highest: built-in defaults, the config file,
// REVISE_* environment variables. A missing config file is not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Errors returned by Load and Validate.
var (
	// ErrInvalidTimeout indicates timeout_ms is zero or negative.
	ErrInvalidTimeout = errors.New("timeout_ms must be positive")

	// ErrUnknownProvider indicates the provider name has no configuration.
	ErrUnknownProvider = errors.New("unknown provider")
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "REVISE_"

// Config holds all settings.
type Config struct {
	// Provider selects the transformation backend: "cli", "anthropic",
	// "openai", or "gemini".
	Provider string `toml:"provider"`

	// TimeoutMS bounds each transformation in milliseconds.
	TimeoutMS int `toml:"timeout_ms"`

	// PreserveUndo records replacements as single undo units.
	PreserveUndo bool `toml:"preserve_undo"`

	// FormatAfter runs the formatter over the replaced range.
	FormatAfter bool `toml:"format_after"`

	// SaveAfter persists the buffer after a successful replacement.
	SaveAfter bool `toml:"save_after"`

	// Reindent re-derives replacement indentation from the original lines.
	Reindent bool `toml:"reindent"`

	// HookPath points to an optional Lua hook file.
	HookPath string `toml:"hook_path"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// FormatCommand is the external formatter invoked when FormatAfter is
	// set, e.g. "gofmt".
	FormatCommand string `toml:"format_command"`

	Providers Providers `toml:"providers"`
}

// Providers groups per-backend settings.
type Providers struct {
	CLI       CLIProvider   `toml:"cli"`
	Anthropic ModelProvider `toml:"anthropic"`
	OpenAI    ModelProvider `toml:"openai"`
	Gemini    ModelProvider `toml:"gemini"`
}

// CLIProvider configures an external command backend.
type CLIProvider struct {
	// Command is the executable to run.
	Command string `toml:"command"`

	// Args are passed to the command. The placeholders {instruction},
	// {filetype}, and {path} are substituted per request.
	Args []string `toml:"args"`

	// JSON switches stdin/stdout to a JSON envelope instead of raw text.
	JSON bool `toml:"json"`
}

// ModelProvider configures an API-backed model.
type ModelProvider struct {
	// Model overrides the backend's default model.
	Model string `toml:"model"`

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `toml:"api_key_env"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Provider:     "cli",
		TimeoutMS:    30000,
		PreserveUndo: true,
		Reindent:     true,
		LogLevel:     "info",
		Providers: Providers{
			Anthropic: ModelProvider{APIKeyEnv: "ANTHROPIC_API_KEY"},
			OpenAI:    ModelProvider{APIKeyEnv: "OPENAI_API_KEY"},
			Gemini:    ModelProvider{APIKeyEnv: "GEMINI_API_KEY"},
		},
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "revise", "config.toml")
}

// Load reads the config file at path, layers it over the defaults, applies
// environment overrides, and validates. An empty path uses DefaultPath. A
// missing file leaves the defaults in place.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Defaults apply.
		default:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv layers REVISE_* variables over the loaded values.
func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvPrefix + "PROVIDER"); ok {
		c.Provider = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "TIMEOUT_MS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.TimeoutMS = n
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "HOOK_PATH"); ok {
		c.HookPath = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "PRESERVE_UNDO"); ok {
		c.PreserveUndo = parseBool(v, c.PreserveUndo)
	}
	if v, ok := os.LookupEnv(EnvPrefix + "FORMAT_AFTER"); ok {
		c.FormatAfter = parseBool(v, c.FormatAfter)
	}
	if v, ok := os.LookupEnv(EnvPrefix + "SAVE_AFTER"); ok {
		c.SaveAfter = parseBool(v, c.SaveAfter)
	}
	if v, ok := os.LookupEnv(EnvPrefix + "REINDENT"); ok {
		c.Reindent = parseBool(v, c.Reindent)
	}
	if v, ok := os.LookupEnv(EnvPrefix + "CLI_COMMAND"); ok {
		c.Providers.CLI.Command = v
	}
}

func parseBool(s string, fallback bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return b
}

// Validate checks invariants that cannot be expressed in the schema.
func (c *Config) Validate() error {
	if c.TimeoutMS <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTimeout, c.TimeoutMS)
	}
	switch c.Provider {
	case "cli", "anthropic", "openai", "gemini":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Provider)
	}
	return nil
}

// Timeout returns TimeoutMS as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}
