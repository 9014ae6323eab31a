package sources

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/agentstation/radarmap/pkg/errors"
	"github.com/agentstation/radarmap/pkg/stations"
)

// column is a byte range of a fixed-width station list line.
type column struct {
	start, end int
}

// Station list layout, see https://www.ncei.noaa.gov/access/homr/file/NexRad_Table.txt
var (
	colID        = column{9, 13}
	colName      = column{20, 50}
	colCountry   = column{51, 71}
	colState     = column{72, 74}
	colLatitude  = column{106, 115}
	colLongitude = column{116, 126}
	colType      = column{140, 190}
)

// field returns the trimmed text of c, or as much of it as line holds.
func (c column) field(line string) string {
	if c.start >= len(line) {
		return ""
	}
	end := min(c.end, len(line))
	return strings.TrimSpace(line[c.start:end])
}

// ParseStations reads the fixed-column NCEI station list.
// The header rows and blank lines are skipped. A row without an identifier
// or with unreadable coordinates fails the whole parse.
func ParseStations(r io.Reader, opts ...Option) ([]stations.Record, error) {
	o := newOptions(opts...)

	var records []stations.Record
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo <= o.headerRows {
			continue
		}
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		rec, err := o.parseStation(line)
		if err != nil {
			return nil, &errors.ParseError{
				Format:  StationsID.Format(),
				File:    o.file,
				Line:    lineNo,
				Message: err.Error(),
				Err:     err,
			}
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapParse(StationsID.Format(), o.file, err)
	}

	return records, nil
}

func (o *options) parseStation(line string) (stations.Record, error) {
	id := colID.field(line)
	if id == "" {
		return stations.Record{}, fmt.Errorf("missing station identifier")
	}

	lat, err := parseCoordinate(colLatitude.field(line), "latitude")
	if err != nil {
		return stations.Record{}, err
	}
	lon, err := parseCoordinate(colLongitude.field(line), "longitude")
	if err != nil {
		return stations.Record{}, err
	}

	return stations.Record{
		ID:        id,
		Name:      o.title(colName.field(line)),
		Latitude:  lat,
		Longitude: lon,
		Region:    stations.RegionName(colState.field(line), colCountry.field(line)),
		Type:      stations.Type(colType.field(line)),
	}, nil
}

func parseCoordinate(text, name string) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, text)
	}
	return v, nil
}
