package stations

// Type is the kind of radar installation reported by the station list.
type Type string

const (
	// TypeNEXRAD is the long-range WSR-88D network, the primary station kind.
	TypeNEXRAD Type = "NEXRAD"
	// TypeTDWR is the short-range Terminal Doppler Weather Radar network.
	TypeTDWR Type = "TDWR"
)

// String returns the string representation of a station type.
func (t Type) String() string {
	return string(t)
}

// Record is a station as published by the authoritative station list.
type Record struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Region    string  `json:"region" yaml:"region"`
	Type      Type    `json:"type" yaml:"type"`
}

// Kind is the tag of a row in the generated location table.
type Kind string

const (
	// KindHeader marks a region header row.
	KindHeader Kind = "LOCATION_STATE"
	// KindActive marks a station with retrievable live data.
	KindActive Kind = "LOCATION_CITY"
	// KindInactive marks a station that is retired or has no live data.
	KindInactive Kind = "LOCATION_NOP"
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	return string(k)
}

// Entry is one station row of the generated location table.
type Entry struct {
	Kind      Kind    `json:"kind" yaml:"kind"`
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Region    string  `json:"region" yaml:"region"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Elevation float64 `json:"elevation" yaml:"elevation"`
	LOD       float64 `json:"lod" yaml:"lod"` // display priority, lower is visible at coarser zoom
}

// Active reports whether the entry is shown as a live station.
func (e Entry) Active() bool {
	return e.Kind == KindActive
}

// IDs returns the identifiers of entries in order.
func IDs(entries []Entry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}
