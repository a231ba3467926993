package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/charmbracelet/x/term"
	"github.com/germanamz/scorer/pkg/engine"
	"github.com/germanamz/scorer/pkg/scoring"
	"github.com/germanamz/scorer/pkg/settings"
)

const settingsFileName = "settings.json"

type app struct {
	cfg   engine.Config
	store *settings.Store
	eng   *engine.Engine
	log   *slog.Logger
}

// setup loads the environment, configuration and settings and builds the
// engine shared by the subcommands.
func setup(g globalFlags) (*app, error) {
	if err := loadDotEnv(g.envFile); err != nil {
		return nil, err
	}

	cfg, err := engine.LoadConfig(g.configPath)
	if err != nil {
		return nil, err
	}

	path, err := resolveSettingsPath(g.settingsPath, cfg.SettingsPath)
	if err != nil {
		return nil, err
	}

	store, err := settings.Shared(path)
	if err != nil {
		return nil, err
	}

	log := newLogger(cfg.LogLevel, g.verbose, os.Stderr)

	eng, err := engine.New(cfg, store, engine.WithLogger(log))
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, store: store, eng: eng, log: log}, nil
}

// resolveSettingsPath returns the settings file to use. Priority:
// 1. Explicit -settings flag
// 2. settings_path from the configuration
// 3. scorer/settings.json under the user config directory
func resolveSettingsPath(flagPath, cfgPath string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	if cfgPath != "" {
		return cfgPath, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate settings: %w", err)
	}

	return filepath.Join(dir, "scorer", settingsFileName), nil
}

// newLogger builds the text logger used by the CLI. Verbose forces debug.
func newLogger(level string, verbose bool, w io.Writer) *slog.Logger {
	lvl := parseLevel(level)
	if verbose {
		lvl = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// describeScoreError adds a hint for the failure kinds a user can act on.
func describeScoreError(err error) error {
	switch {
	case errors.Is(err, engine.ErrNotConfigured):
		return fmt.Errorf("%w (run \"scorer config\" first)", err)
	case errors.Is(err, scoring.ErrEmptyResponse):
		return fmt.Errorf("%w (the model returned nothing, try another model)", err)
	case errors.Is(err, scoring.ErrMalformedJSON), errors.Is(err, scoring.ErrSchemaViolation):
		return fmt.Errorf("%w (the model did not follow the output format, try again)", err)
	}

	if status := scoring.StatusCode(err); status == http.StatusUnauthorized || status == http.StatusForbidden {
		return fmt.Errorf("%w (check the API key)", err)
	}

	return err
}

// terminalWidth returns the width of stdout, or 100 when it is not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return 100
	}

	return w
}
