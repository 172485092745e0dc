// Package app wires configuration, logging, hooks, providers, and the
// session into a running application.
package app

import (
	"fmt"
	"os"

	"github.com/dshills/revise/internal/config"
	"github.com/dshills/revise/internal/engine/history"
	"github.com/dshills/revise/internal/hook"
	"github.com/dshills/revise/internal/logging"
	"github.com/dshills/revise/internal/replace"
	"github.com/dshills/revise/internal/session"
	"github.com/dshills/revise/internal/transform"
	"github.com/dshills/revise/internal/transform/anthropic"
	"github.com/dshills/revise/internal/transform/cli"
	"github.com/dshills/revise/internal/transform/gemini"
	"github.com/dshills/revise/internal/transform/openai"
)

// Options configures application startup.
type Options struct {
	// ConfigPath overrides the default config file location.
	ConfigPath string

	// Provider overrides the configured provider name.
	Provider string

	// LogLevel overrides the configured log level.
	LogLevel string
}

// App holds the wired components for one run.
type App struct {
	cfg     config.Config
	log     *logging.Logger
	hooks   *hook.Runner
	hist    *history.History
	session *session.Session
}

// New loads configuration and builds the session pipeline.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Provider != "" {
		cfg.Provider = opts.Provider
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Output: os.Stderr,
		Prefix: "revise",
	})
	logging.SetDefault(log)

	a := &App{cfg: cfg, log: log}

	if cfg.HookPath != "" {
		a.hooks, err = hook.Load(cfg.HookPath)
		if err != nil {
			return nil, err
		}
	}

	provider, err := newProvider(cfg)
	if err != nil {
		a.Shutdown()
		return nil, err
	}

	engineOpts := []replace.Option{replace.WithLogger(log)}
	if cfg.PreserveUndo {
		a.hist = history.New(0)
		engineOpts = append(engineOpts, replace.WithHistory(a.hist))
	}
	if cfg.FormatAfter && cfg.FormatCommand != "" {
		engineOpts = append(engineOpts, replace.WithFormatter(&replace.CommandFormatter{Command: cfg.FormatCommand}))
	}
	if cfg.SaveAfter {
		engineOpts = append(engineOpts, replace.WithSaver(&replace.FileSaver{}))
	}

	sessionOpts := []session.Option{
		session.WithTimeout(cfg.Timeout()),
		session.WithLogger(log),
	}
	if a.hooks != nil {
		sessionOpts = append(sessionOpts, session.WithHooks(a.hooks))
	}
	if cfg.Reindent {
		sessionOpts = append(sessionOpts, session.WithReindent())
	}

	a.session = session.New(provider, replace.New(engineOpts...), sessionOpts...)
	return a, nil
}

// newProvider builds the configured transformation backend.
func newProvider(cfg config.Config) (transform.Provider, error) {
	switch cfg.Provider {
	case "cli":
		p := cli.New(cfg.Providers.CLI.Command, cfg.Providers.CLI.Args)
		p.JSON = cfg.Providers.CLI.JSON
		return p, nil

	case "anthropic":
		key, err := apiKey(cfg.Providers.Anthropic.APIKeyEnv)
		if err != nil {
			return nil, err
		}
		return anthropic.New(key, cfg.Providers.Anthropic.Model), nil

	case "openai":
		key, err := apiKey(cfg.Providers.OpenAI.APIKeyEnv)
		if err != nil {
			return nil, err
		}
		return openai.New(key, cfg.Providers.OpenAI.Model), nil

	case "gemini":
		key, err := apiKey(cfg.Providers.Gemini.APIKeyEnv)
		if err != nil {
			return nil, err
		}
		return gemini.New(key, cfg.Providers.Gemini.Model), nil

	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownProvider, cfg.Provider)
	}
}

func apiKey(env string) (string, error) {
	if env == "" {
		return "", fmt.Errorf("provider has no api_key_env configured")
	}
	key := os.Getenv(env)
	if key == "" {
		return "", fmt.Errorf("environment variable %s is not set", env)
	}
	return key, nil
}

// Session returns the wired session.
func (a *App) Session() *session.Session {
	return a.session
}

// Config returns the resolved configuration.
func (a *App) Config() config.Config {
	return a.cfg
}

// History returns the undo history, or nil when preserve_undo is off.
func (a *App) History() *history.History {
	return a.hist
}

// Logger returns the application logger.
func (a *App) Logger() *logging.Logger {
	return a.log
}

// Shutdown releases held resources. Safe on a partially built App.
func (a *App) Shutdown() {
	if a.hooks != nil {
		a.hooks.Close()
	}
}
