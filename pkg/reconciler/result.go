package reconciler

import (
	"fmt"

	"github.com/agentstation/radarmap/pkg/stations"
)

// Result represents the outcome of a merge.
type Result struct {
	// Entries holds listed stations in station list order followed by
	// retired stations in previous roster order. The writer imposes the
	// final region grouping.
	Entries []stations.Entry

	// Created lists stations that were not in the previous roster.
	Created []string
	// Disambiguated lists created stations whose name received an ID suffix.
	Disambiguated []string
	// Obsolete lists previous stations that left the station list.
	Obsolete []string
	// Unavailable lists listed stations downgraded for lack of live data.
	Unavailable []string

	// DuplicateSource lists station list identifiers seen more than once;
	// the first occurrence was kept.
	DuplicateSource []string
	// DuplicatePrior lists previous roster identifiers seen more than once;
	// the last occurrence was kept.
	DuplicatePrior []string
}

// Statistics summarises a merge.
type Statistics struct {
	Total         int `json:"total" yaml:"total"`
	Active        int `json:"active" yaml:"active"`
	Inactive      int `json:"inactive" yaml:"inactive"`
	Created       int `json:"created" yaml:"created"`
	Disambiguated int `json:"disambiguated" yaml:"disambiguated"`
	Obsolete      int `json:"obsolete" yaml:"obsolete"`
	Unavailable   int `json:"unavailable" yaml:"unavailable"`
}

// Stats counts the entries of the result.
func (r *Result) Stats() Statistics {
	stats := Statistics{
		Total:         len(r.Entries),
		Created:       len(r.Created),
		Disambiguated: len(r.Disambiguated),
		Obsolete:      len(r.Obsolete),
		Unavailable:   len(r.Unavailable),
	}
	for _, e := range r.Entries {
		if e.Active() {
			stats.Active++
		} else {
			stats.Inactive++
		}
	}
	return stats
}

// HasWarnings reports whether either input carried duplicate identifiers.
func (r *Result) HasWarnings() bool {
	return len(r.DuplicateSource) > 0 || len(r.DuplicatePrior) > 0
}

// Warnings describes the duplicate identifiers found in the inputs.
func (r *Result) Warnings() []string {
	var warnings []string
	if len(r.DuplicateSource) > 0 {
		warnings = append(warnings, fmt.Sprintf("station list repeats %v; first occurrence kept", r.DuplicateSource))
	}
	if len(r.DuplicatePrior) > 0 {
		warnings = append(warnings, fmt.Sprintf("previous roster repeats %v; last occurrence kept", r.DuplicatePrior))
	}
	return warnings
}

// Find returns the entry with the given identifier.
func (r *Result) Find(id string) (stations.Entry, bool) {
	for _, e := range r.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return stations.Entry{}, false
}

// String returns a one-line summary of the merge.
func (r *Result) String() string {
	s := r.Stats()
	return fmt.Sprintf("%d stations (%d active, %d inactive): %d new, %d disambiguated, %d obsolete, %d without data",
		s.Total, s.Active, s.Inactive, s.Created, s.Disambiguated, s.Obsolete, s.Unavailable)
}
