package save

import (
	"os"
	"time"

	"github.com/agentstation/radarmap/pkg/constants"
)

// Options is the configuration for save.
type Options struct {
	date      time.Time
	generator string
	perm      os.FileMode
}

// Date returns the generation date written into the file header.
func (s *Options) Date() time.Time {
	return s.date
}

// Generator returns the tool name written into the file header.
func (s *Options) Generator() string {
	return s.generator
}

// Defaults returns the default save options.
func Defaults() *Options {
	return &Options{
		date:      time.Now(),
		generator: constants.DefaultGenerator,
		perm:      constants.FilePermissions,
	}
}

// Apply applies the given options to the save options.
func (s *Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(s)
	}
	return *s
}

// Option is a function that configures save options.
type Option func(*Options)

// WithDate sets the generation date. The zero time keeps the default.
func WithDate(t time.Time) Option {
	return func(s *Options) {
		if !t.IsZero() {
			s.date = t
		}
	}
}

// WithGenerator sets the tool name in the header comment.
func WithGenerator(name string) Option {
	return func(s *Options) {
		if name != "" {
			s.generator = name
		}
	}
}

// WithPermissions sets the mode of the written file.
func WithPermissions(perm os.FileMode) Option {
	return func(s *Options) {
		s.perm = perm
	}
}
