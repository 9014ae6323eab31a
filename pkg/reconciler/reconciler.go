// Package reconciler merges the authoritative station list, the previously
// generated location table and the live-data availability set into a new
// location table.
//
// The merge is a pure function of its three inputs. Curated names and display
// priorities survive from the previous table, coordinates always come from
// the station list, stations that left the list are kept as inactive, and the
// availability set has the final word on which stations are active.
package reconciler

import (
	"fmt"

	"github.com/agentstation/radarmap/pkg/stations"
)

// Reconciler merges station rosters.
type Reconciler interface {
	// Merge reconciles the station list with the previous roster and the
	// availability set. The inputs are never modified.
	Merge(source []stations.Record, prior []stations.Entry, available stations.Availability) *Result
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	primary    stations.Type
	primaryLOD float64
	otherLOD   float64
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return newReconciler(options), nil
}

func newReconciler(options *options) *reconciler {
	return &reconciler{
		primary:    options.primary,
		primaryLOD: options.primaryLOD,
		otherLOD:   options.otherLOD,
	}
}

// Merge reconciles the inputs with the default options.
func Merge(source []stations.Record, prior []stations.Entry, available stations.Availability) *Result {
	return newReconciler(defaultOptions()).Merge(source, prior, available)
}

// Merge performs reconciliation with clean step-by-step flow.
func (r *reconciler) Merge(source []stations.Record, prior []stations.Entry, available stations.Availability) *Result {
	result := &Result{Entries: make([]stations.Entry, 0, len(source)+len(prior))}

	// Step 1: Index the previous roster, last occurrence wins
	index := indexPrior(prior, result)

	// Step 2: Refresh known stations and create the new ones, in station list order
	listed, created := r.collect(source, index, result)

	// Step 3: Disambiguate new stations whose name is taken in their region
	disambiguate(result, created)

	// Step 4: Everything on the station list is authoritative
	for i := range result.Entries {
		result.Entries[i].Kind = stations.KindActive
	}

	// Step 5: Keep stations that left the list, marked inactive
	retire(prior, index, listed, result)

	// Step 6: Stations without live data are inactive whatever their origin
	applyAvailability(available, result)

	return result
}

// indexPrior maps identifiers to their previous entry and records duplicates.
func indexPrior(prior []stations.Entry, result *Result) map[string]stations.Entry {
	index := make(map[string]stations.Entry, len(prior))
	for _, e := range prior {
		if _, dup := index[e.ID]; dup {
			result.DuplicatePrior = append(result.DuplicatePrior, e.ID)
		}
		index[e.ID] = e
	}
	return index
}

// collect places one entry per listed station and returns the set of listed
// identifiers and the positions of newly created entries.
func (r *reconciler) collect(source []stations.Record, index map[string]stations.Entry, result *Result) (map[string]struct{}, []int) {
	listed := make(map[string]struct{}, len(source))
	var created []int

	for _, rec := range source {
		if _, dup := listed[rec.ID]; dup {
			result.DuplicateSource = append(result.DuplicateSource, rec.ID)
			continue
		}
		listed[rec.ID] = struct{}{}

		if existing, ok := index[rec.ID]; ok {
			existing.Latitude = rec.Latitude
			existing.Longitude = rec.Longitude
			result.Entries = append(result.Entries, existing)
			continue
		}

		created = append(created, len(result.Entries))
		result.Entries = append(result.Entries, r.newEntry(rec))
		result.Created = append(result.Created, rec.ID)
	}

	return listed, created
}

// newEntry builds the entry for a station the previous roster did not know.
func (r *reconciler) newEntry(rec stations.Record) stations.Entry {
	lod := r.otherLOD
	if rec.Type == r.primary {
		lod = r.primaryLOD
	}
	return stations.Entry{
		Kind:      stations.KindActive,
		ID:        rec.ID,
		Name:      rec.Name,
		Region:    rec.Region,
		Latitude:  rec.Latitude,
		Longitude: rec.Longitude,
		LOD:       lod,
	}
}

type regionName struct {
	region string
	name   string
}

// disambiguate appends " (ID)" to each new entry whose name is shared by
// another listed entry of the same region. Names are compared as they were
// before the pass, so every new entry of a colliding group is suffixed no
// matter the order, and curated entries are never renamed. The pass walks
// created in station list order.
func disambiguate(result *Result, created []int) {
	if len(created) == 0 {
		return
	}

	holders := make(map[regionName][]string, len(result.Entries))
	for _, e := range result.Entries {
		key := regionName{region: e.Region, name: e.Name}
		holders[key] = append(holders[key], e.ID)
	}

	for _, i := range created {
		e := &result.Entries[i]
		if !sharedWithOther(holders[regionName{region: e.Region, name: e.Name}], e.ID) {
			continue
		}
		e.Name = fmt.Sprintf("%s (%s)", e.Name, e.ID)
		result.Disambiguated = append(result.Disambiguated, e.ID)
	}
}

func sharedWithOther(ids []string, id string) bool {
	for _, other := range ids {
		if other != id {
			return true
		}
	}
	return false
}

// retire appends, once per identifier and in previous roster order, every
// previous entry that is no longer listed.
func retire(prior []stations.Entry, index map[string]stations.Entry, listed map[string]struct{}, result *Result) {
	retired := make(map[string]struct{})
	for _, e := range prior {
		if _, ok := listed[e.ID]; ok {
			continue
		}
		if _, done := retired[e.ID]; done {
			continue
		}
		retired[e.ID] = struct{}{}

		obsolete := index[e.ID]
		obsolete.Kind = stations.KindInactive
		result.Entries = append(result.Entries, obsolete)
		result.Obsolete = append(result.Obsolete, e.ID)
	}
}

// applyAvailability marks every entry without live data inactive.
func applyAvailability(available stations.Availability, result *Result) {
	for i := range result.Entries {
		e := &result.Entries[i]
		if available.Has(e.ID) {
			continue
		}
		if e.Kind == stations.KindActive {
			result.Unavailable = append(result.Unavailable, e.ID)
		}
		e.Kind = stations.KindInactive
	}
}
