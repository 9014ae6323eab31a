package differ

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/agentstation/radarmap/pkg/stations"
)

// Differ handles change detection between rosters.
type Differ interface {
	// Compare compares the previous roster with a merged one.
	Compare(prior, merged []stations.Entry) *Changeset
}

// differ is the default implementation of Differ.
type differ struct {
	ignoreFields map[string]bool
	tolerance    float64
}

// New creates a Differ with default settings.
func New(opts ...Option) Differ {
	d := &differ{
		ignoreFields: make(map[string]bool),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Compare compares two rosters with default settings.
func Compare(prior, merged []stations.Entry) *Changeset {
	return New().Compare(prior, merged)
}

// Compare compares two rosters and returns changes. Duplicate identifiers
// resolve to their last occurrence, as in the merge.
func (d *differ) Compare(prior, merged []stations.Entry) *Changeset {
	changeset := &Changeset{}

	before := index(prior)
	after := index(merged)

	for id, e := range after {
		old, ok := before[id]
		if !ok {
			changeset.Added = append(changeset.Added, change(ChangeTypeAdd, e, "", string(e.Kind)))
			continue
		}
		d.compareEntry(changeset, old, e)
	}

	for id, e := range before {
		if _, ok := after[id]; !ok {
			changeset.Removed = append(changeset.Removed, change(ChangeTypeRemove, e, string(e.Kind), ""))
		}
	}

	for _, list := range []*[]Change{
		&changeset.Added, &changeset.Removed,
		&changeset.Activated, &changeset.Deactivated,
		&changeset.Moved, &changeset.Renamed, &changeset.Regrouped,
	} {
		slices.SortFunc(*list, func(a, b Change) int {
			return cmp.Compare(a.ID, b.ID)
		})
	}

	changeset.Summary = calculateSummary(changeset)
	return changeset
}

func (d *differ) compareEntry(changeset *Changeset, old, e stations.Entry) {
	switch {
	case !old.Active() && e.Active():
		changeset.Activated = append(changeset.Activated, change(ChangeTypeActivate, e, string(old.Kind), string(e.Kind)))
	case old.Active() && !e.Active():
		changeset.Deactivated = append(changeset.Deactivated, change(ChangeTypeDeactivate, e, string(old.Kind), string(e.Kind)))
	}

	if !d.ignoreFields[FieldCoordinates] && d.moved(old, e) {
		changeset.Moved = append(changeset.Moved, change(ChangeTypeMove, e, coordinates(old), coordinates(e)))
	}
	if !d.ignoreFields[FieldName] && old.Name != e.Name {
		changeset.Renamed = append(changeset.Renamed, change(ChangeTypeRename, e, old.Name, e.Name))
	}
	if !d.ignoreFields[FieldRegion] && old.Region != e.Region {
		changeset.Regrouped = append(changeset.Regrouped, change(ChangeTypeRegroup, e, old.Region, e.Region))
	}
}

func (d *differ) moved(old, e stations.Entry) bool {
	return math.Abs(old.Latitude-e.Latitude) > d.tolerance ||
		math.Abs(old.Longitude-e.Longitude) > d.tolerance
}

func index(entries []stations.Entry) map[string]stations.Entry {
	m := make(map[string]stations.Entry, len(entries))
	for _, e := range entries {
		m[e.ID] = e
	}
	return m
}

func change(t ChangeType, e stations.Entry, from, to string) Change {
	return Change{
		Type:   t,
		ID:     e.ID,
		Region: e.Region,
		Name:   e.Name,
		Old:    from,
		New:    to,
	}
}

func coordinates(e stations.Entry) string {
	return fmt.Sprintf("%g, %g", e.Latitude, e.Longitude)
}
