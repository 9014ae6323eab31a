// Package sync runs one roster update: it loads the station list, the
// previous location table and the availability listing, merges them and
// writes the new location table.
package sync

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/agentstation/radarmap/pkg/constants"
	"github.com/agentstation/radarmap/pkg/errors"
	"github.com/agentstation/radarmap/pkg/reconciler"
	"github.com/agentstation/radarmap/pkg/sources"
)

// Options controls one update run.
type Options struct {
	// Orchestration control
	DryRun  bool          // Merge and report without writing
	Timeout time.Duration // Timeout for the entire run, 0 for none

	// Inputs. A path takes precedence over the matching URL.
	StationsURL      string
	StationsPath     string
	AvailabilityURL  string
	AvailabilityPath string
	LocationsPath    string

	// Output control
	OutputPath string    // Where to write the table (empty means LocationsPath)
	Date       time.Time // Date recorded in the header (zero means today)
	Generator  string    // Tool name recorded in the header

	// Retrieval control
	HTTPClient *http.Client
	Retries    int
	Fetcher    sources.Fetcher // Overrides the HTTP client entirely

	// Merge control
	Reconciler []reconciler.Option
}

// Apply applies the given options to the sync options.
func (s *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defaults returns the default sync options.
func Defaults() *Options {
	return &Options{
		DryRun:          false,
		Timeout:         0,
		StationsURL:     constants.DefaultStationsURL,
		AvailabilityURL: constants.DefaultAvailabilityURL,
		LocationsPath:   constants.DefaultLocationsPath,
		Generator:       constants.DefaultGenerator,
		Retries:         constants.MaxRetries,
	}
}

// Option is a function that configures sync Options.
type Option func(*Options)

// Output returns the path the table is written to.
func (s *Options) Output() string {
	if s.OutputPath != "" {
		return s.OutputPath
	}
	return s.LocationsPath
}

// Sources returns the three inputs in load order.
func (s *Options) Sources() []sources.Source {
	return []sources.Source{
		sources.Stations(s.StationsURL, s.StationsPath),
		sources.Locations(s.LocationsPath),
		sources.Availability(s.AvailabilityURL, s.AvailabilityPath),
	}
}

// Validate checks if the sync options are valid.
func (s *Options) Validate() error {
	if s.Timeout < 0 {
		return &errors.ValidationError{
			Field:   "Timeout",
			Value:   s.Timeout,
			Message: "timeout must be non-negative",
		}
	}

	if s.Retries < 0 || s.Retries > constants.MaxRetriesLimit {
		return &errors.ValidationError{
			Field:   "Retries",
			Value:   s.Retries,
			Message: fmt.Sprintf("retries must be between 0 and %d", constants.MaxRetriesLimit),
		}
	}

	if s.LocationsPath == "" {
		return &errors.ValidationError{
			Field:   "LocationsPath",
			Message: "the previous location table is required",
		}
	}

	if s.StationsURL == "" && s.StationsPath == "" {
		return &errors.ValidationError{
			Field:   "StationsURL",
			Message: "a station list URL or file is required",
		}
	}

	if s.AvailabilityURL == "" && s.AvailabilityPath == "" {
		return &errors.ValidationError{
			Field:   "AvailabilityURL",
			Message: "an availability URL or file is required",
		}
	}

	// Validate output path unless nothing will be written
	if !s.DryRun {
		dir := filepath.Dir(s.Output())
		if dir != "." && dir != "/" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				return &errors.ValidationError{
					Field:   "OutputPath",
					Value:   s.Output(),
					Message: fmt.Sprintf("output directory '%s' does not exist", dir),
				}
			}
		}
	}

	return nil
}

// WithDryRun configures dry run mode.
func WithDryRun(dryRun bool) Option {
	return func(opts *Options) {
		opts.DryRun = dryRun
	}
}

// WithTimeout configures the run timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.Timeout = timeout
	}
}

// WithStationsURL configures where the station list is downloaded from.
func WithStationsURL(url string) Option {
	return func(opts *Options) {
		opts.StationsURL = url
	}
}

// WithStationsPath reads the station list from a local file.
func WithStationsPath(path string) Option {
	return func(opts *Options) {
		opts.StationsPath = path
	}
}

// WithAvailabilityURL configures where the availability listing is downloaded from.
func WithAvailabilityURL(url string) Option {
	return func(opts *Options) {
		opts.AvailabilityURL = url
	}
}

// WithAvailabilityPath reads the availability listing from a local file.
func WithAvailabilityPath(path string) Option {
	return func(opts *Options) {
		opts.AvailabilityPath = path
	}
}

// WithLocationsPath configures the previous location table.
func WithLocationsPath(path string) Option {
	return func(opts *Options) {
		opts.LocationsPath = path
	}
}

// WithOutputPath configures the output path for saving.
func WithOutputPath(path string) Option {
	return func(opts *Options) {
		opts.OutputPath = path
	}
}

// WithDate configures the date recorded in the generated header.
func WithDate(date time.Time) Option {
	return func(opts *Options) {
		opts.Date = date
	}
}

// WithGenerator configures the tool name recorded in the generated header.
func WithGenerator(name string) Option {
	return func(opts *Options) {
		opts.Generator = name
	}
}

// WithHTTPClient configures the HTTP client used for downloads.
func WithHTTPClient(client *http.Client) Option {
	return func(opts *Options) {
		opts.HTTPClient = client
	}
}

// WithRetries configures how often a failed download is retried.
func WithRetries(n int) Option {
	return func(opts *Options) {
		opts.Retries = n
	}
}

// WithFetcher replaces HTTP retrieval.
func WithFetcher(f sources.Fetcher) Option {
	return func(opts *Options) {
		opts.Fetcher = f
	}
}

// WithReconcilerOptions configures the merge.
func WithReconcilerOptions(opts ...reconciler.Option) Option {
	return func(o *Options) {
		o.Reconciler = append(o.Reconciler, opts...)
	}
}
