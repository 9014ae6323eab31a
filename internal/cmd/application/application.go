// Package application defines what commands need from the running CLI.
// Commands depend on this interface instead of the concrete app so they
// can be tested with Mock.
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/radarmap/pkg/sync"
)

// Application is the set of dependencies shared by all commands.
type Application interface {
	// Logger returns the configured logger.
	Logger() *zerolog.Logger

	// OutputFormat returns the requested output format, or "" to auto-detect.
	OutputFormat() string

	// SyncOptions returns the update options derived from configuration.
	// Command flags are applied after them.
	SyncOptions() []sync.Option

	// Version information
	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
