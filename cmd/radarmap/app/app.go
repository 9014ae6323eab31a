// Package app wires configuration, logging and commands for the radarmap CLI.
package app

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/radarmap/internal/cmd/application"
	"github.com/agentstation/radarmap/pkg/errors"
	"github.com/agentstation/radarmap/pkg/sync"
)

// App represents the radarmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
}

var _ application.Application = (*App)(nil)

// Option configures an App.
type Option func(*App) error

// WithConfig replaces the loaded configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewConfigError("app", "config is nil", nil)
		}
		a.config = config
		return nil
	}
}

// WithLogger replaces the configured logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string { return a.config.Format }

// SyncOptions translates the configuration into update options.
func (a *App) SyncOptions() []sync.Option {
	c := a.config
	return []sync.Option{
		sync.WithStationsURL(c.StationsURL),
		sync.WithAvailabilityURL(c.AvailabilityURL),
		sync.WithLocationsPath(c.LocationsPath),
		sync.WithOutputPath(c.OutputPath),
		sync.WithGenerator(c.Generator),
		sync.WithTimeout(c.Timeout),
		sync.WithRetries(c.Retries),
	}
}
