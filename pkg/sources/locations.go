package sources

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/agentstation/radarmap/pkg/errors"
	"github.com/agentstation/radarmap/pkg/stations"
)

// regionMarker is the identifier of region header rows.
const regionMarker = "NULL"

// rowStart finds the beginning of every row of the location table.
var rowStart = regexp.MustCompile(`\{\s*LOCATION_\w+`)

// tuplePattern matches one row of the location table at the start of the
// input. Numbers are captured loosely and checked by strconv:
//
//	{LOCATION_CITY, "KLOT", "Chicago", {41.6044, -88.0844, 0}, 0.5},
var tuplePattern = regexp.MustCompile(
	`^\{\s*(LOCATION_\w+)\s*,\s*"((?:[^"\\]|\\.)*)"\s*,\s*"((?:[^"\\]|\\.)*)"\s*,` +
		`\s*\{([^,{}]*),([^,{}]*),([^,{}]*)\}\s*,([^,{}]*)\}`)

// unquote reverses the C escaping of identifiers and names.
var unquote = strings.NewReplacer(`\"`, `"`, `\\`, `\`)

// ParseLocations reads a previously generated location table.
// Every entry carries the region of the header row above it. Header rows,
// the {0} terminator and any other text are not returned. A row that
// starts with a LOCATION_ kind but is not a complete tuple is an error.
func ParseLocations(r io.Reader, opts ...Option) ([]stations.Entry, error) {
	o := newOptions(opts...)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapParse(LocationsID.Format(), o.file, err)
	}
	text := string(data)

	var (
		entries []stations.Entry
		region  string
		end     int // end of the last matched row
		line    = 1
		counted int // offset up to which newlines are counted
	)
	for _, loc := range rowStart.FindAllStringIndex(text, -1) {
		start := loc[0]
		if start < end {
			continue
		}
		line += strings.Count(text[counted:start], "\n")
		counted = start

		fail := func(msg string) error {
			return &errors.ParseError{
				Format:  LocationsID.Format(),
				File:    o.file,
				Line:    line,
				Message: msg,
			}
		}

		m := tuplePattern.FindStringSubmatchIndex(text[start:])
		if m == nil {
			return nil, fail("malformed location row")
		}
		end = start + m[1]
		group := func(i int) string { return text[start+m[2*i] : start+m[2*i+1]] }

		id, name := unquote.Replace(group(2)), unquote.Replace(group(3))
		if id == regionMarker {
			region = name
			continue
		}
		if id == "" {
			return nil, fail("empty station identifier")
		}

		var nums [4]float64
		for i, g := range []int{4, 5, 6, 7} {
			field := strings.TrimSpace(group(g))
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fail(fmt.Sprintf("invalid number %q for %s", field, id))
			}
			nums[i] = v
		}

		entries = append(entries, stations.Entry{
			Kind:      stations.Kind(group(1)),
			ID:        id,
			Name:      name,
			Region:    region,
			Latitude:  nums[0],
			Longitude: nums[1],
			Elevation: nums[2],
			LOD:       nums[3],
		})
	}

	return entries, nil
}
