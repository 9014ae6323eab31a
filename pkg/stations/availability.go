package stations

import "slices"

// Availability is the set of station identifiers with retrievable live data.
type Availability map[string]struct{}

// NewAvailability creates a set holding ids.
func NewAvailability(ids ...string) Availability {
	a := make(Availability, len(ids))
	for _, id := range ids {
		a.Add(id)
	}
	return a
}

// Add inserts id into the set.
func (a Availability) Add(id string) {
	a[id] = struct{}{}
}

// Has reports whether id has live data. A nil set has nothing.
func (a Availability) Has(id string) bool {
	_, ok := a[id]
	return ok
}

// Len returns the number of identifiers in the set.
func (a Availability) Len() int {
	return len(a)
}

// Sorted returns the identifiers in lexical order.
func (a Availability) Sorted() []string {
	ids := make([]string, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
