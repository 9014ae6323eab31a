package update

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/radarmap/pkg/sync"
)

// Flags holds the update command flags.
type Flags struct {
	DryRun           bool
	StationsURL      string
	StationsFile     string
	AvailabilityURL  string
	AvailabilityFile string
	Locations        string
	Output           string
	Retries          int
	Timeout          time.Duration
}

func addUpdateFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{Retries: -1}

	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "show changes without writing the table")
	cmd.Flags().StringVar(&flags.StationsURL, "stations-url", "", "download the station list from this URL")
	cmd.Flags().StringVar(&flags.StationsFile, "stations-file", "", "read the station list from a local file")
	cmd.Flags().StringVar(&flags.AvailabilityURL, "availability-url", "", "download the availability listing from this URL")
	cmd.Flags().StringVar(&flags.AvailabilityFile, "availability-file", "", "read the availability listing from a local file")
	cmd.Flags().StringVar(&flags.Locations, "locations", "", "previous location table")
	cmd.Flags().StringVar(&flags.Output, "output", "", "write the table here instead of over --locations")
	cmd.Flags().IntVar(&flags.Retries, "retries", -1, "download retries (default from config)")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "overall timeout (default from config)")

	cmd.MarkFlagsMutuallyExclusive("stations-url", "stations-file")
	cmd.MarkFlagsMutuallyExclusive("availability-url", "availability-file")

	return flags
}

// Options converts the flags to sync options. Unset flags add nothing,
// so configuration values passed earlier stay in effect.
func (f *Flags) Options() []sync.Option {
	var opts []sync.Option

	if f.DryRun {
		opts = append(opts, sync.WithDryRun(true))
	}
	if f.StationsURL != "" {
		opts = append(opts, sync.WithStationsURL(f.StationsURL))
	}
	if f.StationsFile != "" {
		opts = append(opts, sync.WithStationsPath(f.StationsFile))
	}
	if f.AvailabilityURL != "" {
		opts = append(opts, sync.WithAvailabilityURL(f.AvailabilityURL))
	}
	if f.AvailabilityFile != "" {
		opts = append(opts, sync.WithAvailabilityPath(f.AvailabilityFile))
	}
	if f.Locations != "" {
		opts = append(opts, sync.WithLocationsPath(f.Locations))
	}
	if f.Output != "" {
		opts = append(opts, sync.WithOutputPath(f.Output))
	}
	if f.Retries >= 0 {
		opts = append(opts, sync.WithRetries(f.Retries))
	}
	if f.Timeout > 0 {
		opts = append(opts, sync.WithTimeout(f.Timeout))
	}

	return opts
}
