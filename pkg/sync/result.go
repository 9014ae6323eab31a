package sync

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/radarmap/pkg/differ"
	"github.com/agentstation/radarmap/pkg/reconciler"
)

// Result represents the complete result of an update run.
type Result struct {
	// Input sizes
	Stations  int // Rows of the station list
	Prior     int // Stations of the previous table
	Available int // Stations with live data

	Merge   *reconciler.Result
	Changes *differ.Changeset

	// Operation metadata
	OutputPath string
	Written    bool
	DryRun     bool
	RunID      string
	Duration   time.Duration
}

// HasChanges reports whether the merged roster differs from the previous one.
func (r *Result) HasChanges() bool {
	return r.Changes != nil && r.Changes.HasChanges()
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Inputs: %d listed, %d previous, %d with data\n", r.Stations, r.Prior, r.Available)
	if r.Merge != nil {
		fmt.Fprintf(&b, "Roster: %s\n", r.Merge)
	}
	if r.Changes != nil {
		fmt.Fprintf(&b, "%s\n", r.Changes)
	}

	switch {
	case r.DryRun:
		fmt.Fprintf(&b, "Dry run: %s not modified", r.OutputPath)
	case r.Written:
		fmt.Fprintf(&b, "Wrote %s", r.OutputPath)
	default:
		fmt.Fprintf(&b, "Nothing written")
	}

	return b.String()
}
