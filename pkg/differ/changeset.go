// Package differ provides functionality for comparing station rosters and detecting changes.
package differ

import (
	"fmt"
	"io"
	"strings"
)

// ChangeType represents the type of change.
type ChangeType string

const (
	// ChangeTypeAdd indicates a station was added.
	ChangeTypeAdd ChangeType = "add"
	// ChangeTypeRemove indicates a station was dropped from the roster.
	ChangeTypeRemove ChangeType = "remove"
	// ChangeTypeActivate indicates a station became active.
	ChangeTypeActivate ChangeType = "activate"
	// ChangeTypeDeactivate indicates a station became inactive.
	ChangeTypeDeactivate ChangeType = "deactivate"
	// ChangeTypeMove indicates a station's coordinates changed.
	ChangeTypeMove ChangeType = "move"
	// ChangeTypeRename indicates a station's display name changed.
	ChangeTypeRename ChangeType = "rename"
	// ChangeTypeRegroup indicates a station's region changed.
	ChangeTypeRegroup ChangeType = "regroup"
)

// Change describes one change to one station.
type Change struct {
	Type   ChangeType `json:"type" yaml:"type"`
	ID     string     `json:"id" yaml:"id"`
	Region string     `json:"region" yaml:"region"`
	Name   string     `json:"name" yaml:"name"`
	Old    string     `json:"old,omitempty" yaml:"old,omitempty"` // previous value (string representation)
	New    string     `json:"new,omitempty" yaml:"new,omitempty"` // new value (string representation)
}

// Changeset represents all changes between two rosters.
type Changeset struct {
	Added       []Change         `json:"added" yaml:"added"`
	Removed     []Change         `json:"removed" yaml:"removed"`
	Activated   []Change         `json:"activated" yaml:"activated"`
	Deactivated []Change         `json:"deactivated" yaml:"deactivated"`
	Moved       []Change         `json:"moved" yaml:"moved"`
	Renamed     []Change         `json:"renamed" yaml:"renamed"`
	Regrouped   []Change         `json:"regrouped" yaml:"regrouped"`
	Summary     ChangesetSummary `json:"summary" yaml:"summary"`
}

// ChangesetSummary provides summary statistics for a changeset.
type ChangesetSummary struct {
	Added        int `json:"added" yaml:"added"`
	Removed      int `json:"removed" yaml:"removed"`
	Activated    int `json:"activated" yaml:"activated"`
	Deactivated  int `json:"deactivated" yaml:"deactivated"`
	Moved        int `json:"moved" yaml:"moved"`
	Renamed      int `json:"renamed" yaml:"renamed"`
	Regrouped    int `json:"regrouped" yaml:"regrouped"`
	TotalChanges int `json:"total_changes" yaml:"total_changes"`
}

// calculateSummary computes the summary for a changeset.
func calculateSummary(c *Changeset) ChangesetSummary {
	s := ChangesetSummary{
		Added:       len(c.Added),
		Removed:     len(c.Removed),
		Activated:   len(c.Activated),
		Deactivated: len(c.Deactivated),
		Moved:       len(c.Moved),
		Renamed:     len(c.Renamed),
		Regrouped:   len(c.Regrouped),
	}
	s.TotalChanges = s.Added + s.Removed + s.Activated + s.Deactivated + s.Moved + s.Renamed + s.Regrouped
	return s
}

// HasChanges returns true if the changeset contains any changes.
func (c *Changeset) HasChanges() bool {
	return c.Summary.TotalChanges > 0
}

// IsEmpty returns true if the changeset contains no changes.
func (c *Changeset) IsEmpty() bool {
	return c.Summary.TotalChanges == 0
}

// All returns every change, grouped by type.
func (c *Changeset) All() []Change {
	all := make([]Change, 0, c.Summary.TotalChanges)
	for _, group := range c.groups() {
		all = append(all, group.changes...)
	}
	return all
}

type changeGroup struct {
	title   string
	icon    string
	changes []Change
}

func (c *Changeset) groups() []changeGroup {
	return []changeGroup{
		{title: "added", icon: "➕", changes: c.Added},
		{title: "removed", icon: "⚠️ ", changes: c.Removed},
		{title: "activated", icon: "🟢", changes: c.Activated},
		{title: "deactivated", icon: "⚪", changes: c.Deactivated},
		{title: "moved", icon: "📍", changes: c.Moved},
		{title: "renamed", icon: "🔄", changes: c.Renamed},
		{title: "regrouped", icon: "🗂️ ", changes: c.Regrouped},
	}
}

// String returns a human-readable summary of the changeset.
func (c *Changeset) String() string {
	if c.IsEmpty() {
		return "No changes detected"
	}

	var parts []string
	for _, group := range c.groups() {
		if len(group.changes) > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", len(group.changes), group.title))
		}
	}

	return fmt.Sprintf("Changeset: %s (Total: %d changes)", strings.Join(parts, ", "), c.Summary.TotalChanges)
}

// Print writes a detailed, human-readable view of the changeset to w.
func (c *Changeset) Print(w io.Writer) {
	fmt.Fprintln(w, c.String())
	if c.IsEmpty() {
		return
	}
	fmt.Fprintln(w, strings.Repeat("─", 80))

	for _, group := range c.groups() {
		if len(group.changes) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s %s (%d):\n", group.icon, strings.ToUpper(group.title[:1])+group.title[1:], len(group.changes))
		for _, change := range group.changes {
			fmt.Fprintf(w, "  • %s %s [%s]", change.ID, change.Name, change.Region)
			if change.Old != "" || change.New != "" {
				fmt.Fprintf(w, ": %s → %s", change.Old, change.New)
			}
			fmt.Fprintln(w)
		}
	}
}
