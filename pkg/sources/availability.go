package sources

import (
	"bufio"
	"io"
	"strings"

	"github.com/agentstation/radarmap/pkg/errors"
	"github.com/agentstation/radarmap/pkg/stations"
)

// ParseAvailability reads a GRLevelX site listing. Lines of exactly three
// space separated fields with "Site:" in the middle name a station with
// live data. The listing indents them with a single space:
//
//	 Site: KABR
//
// All other lines are ignored.
func ParseAvailability(r io.Reader, opts ...Option) (stations.Availability, error) {
	o := newOptions(opts...)

	available := stations.NewAvailability()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), " ")
		if len(fields) != 3 || fields[1] != "Site:" {
			continue
		}
		if id := strings.TrimSpace(fields[2]); id != "" {
			available.Add(id)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapParse(AvailabilityID.Format(), o.file, err)
	}

	return available, nil
}
