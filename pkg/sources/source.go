// Package sources reads the three inputs of a roster update: the NCEI
// station list, the previously generated location table and the level II
// availability listing.
//
// Each input can come from a local file or from a URL. The parsers are
// plain functions over io.Reader and never touch the network:
//
//	data, err := sources.Stations(url, "").Load(ctx, client)
//	if err != nil {
//	    return err
//	}
//	records, err := sources.ParseStations(bytes.NewReader(data))
package sources

import (
	"context"
	"os"
	"slices"

	"github.com/agentstation/radarmap/pkg/errors"
)

// ID represents the identifier of an input.
type ID string

// String returns the string representation of an input ID.
func (id ID) String() string {
	return string(id)
}

// Input identifiers.
const (
	StationsID     ID = "stations"
	LocationsID    ID = "locations"
	AvailabilityID ID = "availability"
)

// IDs returns all input identifiers.
func IDs() []ID {
	return []ID{
		StationsID,
		LocationsID,
		AvailabilityID,
	}
}

// IsValid returns true if the ID is one of the defined constants.
func (id ID) IsValid() bool {
	return slices.Contains(IDs(), id)
}

// Format returns the name used for the input's text format in parse errors.
func (id ID) Format() string {
	switch id {
	case StationsID:
		return "nexrad"
	case LocationsID:
		return "locations"
	case AvailabilityID:
		return "grlevel2"
	}
	return string(id)
}

// Fetcher retrieves the body of a URL.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Source locates one input. A non-empty Path takes precedence over URL.
type Source struct {
	ID   ID
	URL  string
	Path string
}

// Stations returns the station list source.
func Stations(url, path string) Source {
	return Source{ID: StationsID, URL: url, Path: path}
}

// Availability returns the availability listing source.
func Availability(url, path string) Source {
	return Source{ID: AvailabilityID, URL: url, Path: path}
}

// Locations returns the previous location table source. It is always local.
func Locations(path string) Source {
	return Source{ID: LocationsID, Path: path}
}

// Local reports whether the source is read from disk.
func (s Source) Local() bool {
	return s.Path != ""
}

// Location returns the path or URL the source is read from.
func (s Source) Location() string {
	if s.Local() {
		return s.Path
	}
	return s.URL
}

// Load reads the source from disk or fetches it with f.
func (s Source) Load(ctx context.Context, f Fetcher) ([]byte, error) {
	if s.Local() {
		data, err := os.ReadFile(s.Path)
		if err != nil {
			return nil, errors.WrapIO("read", s.Path, err)
		}
		return data, nil
	}

	if s.URL == "" {
		return nil, &errors.ConfigError{
			Component: s.ID.String(),
			Message:   "neither a path nor a URL is set",
		}
	}
	if f == nil {
		return nil, &errors.ConfigError{
			Component: s.ID.String(),
			Message:   "no fetcher for " + s.URL,
		}
	}

	data, err := f.Get(ctx, s.URL)
	if err != nil {
		return nil, errors.WrapResource("fetch", s.ID.String(), "", err)
	}
	return data, nil
}
