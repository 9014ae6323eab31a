// Package constants provides shared constants used throughout the radarmap codebase.
// This includes source locations, timeouts, retry limits, file permissions and the
// default display priorities applied to newly discovered stations.
package constants

import "time"

// Source locations reproduce the paths and URLs the roster has always been built from.
const (
	// DefaultStationsURL is the NCEI HOMR list of NEXRAD and TDWR stations
	DefaultStationsURL = "https://www.ncei.noaa.gov/access/homr/file/nexrad-stations.txt"

	// DefaultAvailabilityURL lists the sites with level 2 files on the NOMADS server
	DefaultAvailabilityURL = "https://nomads.ncep.noaa.gov/pub/data/nccf/radar/nexrad_level2/grlevel2.cfg"

	// DefaultLocationsPath is the generated station table, relative to the helpers directory
	DefaultLocationsPath = "../src/aweather-location.c"

	// DefaultGenerator is the name recorded in the generated file header
	DefaultGenerator = "radarmap"
)

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for a single source download
	DefaultHTTPTimeout = 30 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 5 * time.Minute

	// RetryBackoff is the base backoff duration for retries
	RetryBackoff = 1 * time.Second

	// MaxRetryBackoff is the maximum backoff duration for retries
	MaxRetryBackoff = 30 * time.Second
)

// Limit constants define various limits and capacities
const (
	// MaxRetries is the maximum number of retry attempts for failed downloads
	MaxRetries = 3

	// MaxRetriesLimit caps user supplied retry counts
	MaxRetriesLimit = 10

	// MaxResponseSize bounds the size of a downloaded source file (16 MiB)
	MaxResponseSize = 16 << 20
)

// Display priority constants. Lower values are visible at coarser zoom.
const (
	// PrimaryLOD is the display priority of a new long-range (NEXRAD) station
	PrimaryLOD = 0.5

	// SecondaryLOD is the display priority of any other new station, shown only when zoomed in
	SecondaryLOD = 0.1
)

// File permission constants define standard Unix file permissions
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
