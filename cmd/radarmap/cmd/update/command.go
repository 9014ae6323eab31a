// Package update provides the update command implementation.
package update

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/radarmap/internal/cmd/application"
)

// NewCommand creates the update command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "update",
		GroupID: "core",
		Short:   "Regenerate the radar station location table",
		Args:    cobra.NoArgs,
		Long: `Update rebuilds the radar station location table from three inputs:

1. The NCEI list of NEXRAD and TDWR stations
2. The previous location table, whose curated names and display levels are kept
3. The NOMADS level 2 listing of stations that currently publish data

Stations missing from the NCEI list are kept but marked inactive
(LOCATION_NOP). New stations are added with a default display level.
Stations without live data are marked inactive as well. Colliding names
of new stations are suffixed with their id.

The table is replaced atomically, and only after every input was read.`,
		Example: `  radarmap update                                  # Download and rewrite the table
  radarmap update --dry-run                        # Preview changes
  radarmap update --stations-file nexrad.txt       # Use a local station list
  radarmap update --output /tmp/locations.c        # Write somewhere else
  radarmap update --format json                    # Machine readable report`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ExecuteUpdate(cmd.Context(), app, flags, cmd.OutOrStdout())
		},
	}

	// Add update-specific flags
	flags = addUpdateFlags(cmd)

	return cmd
}
