package sources_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/radarmap/pkg/errors"
	"github.com/agentstation/radarmap/pkg/sources"
	"github.com/agentstation/radarmap/pkg/stations"
)

// stationLine lays out one station list row at the NCEI column offsets.
func stationLine(id, name, country, state, lat, lon, elev, typ string) string {
	buf := []byte(strings.Repeat(" ", 190))
	put := func(at int, s string) { copy(buf[at:], s) }
	put(0, "30001234")
	put(9, id)
	put(20, name)
	put(51, country)
	put(72, state)
	put(106, lat)
	put(116, lon)
	put(127, elev)
	put(140, typ)
	return strings.TrimRight(string(buf), " ")
}

const stationHeader = "NCDCID   ICAO WBAN  NAME                           COUNTRY              ST COUNTY\n" +
	"-------- ---- ----- ------------------------------ -------------------- -- ------\n"

func TestParseStations(t *testing.T) {
	input := stationHeader +
		stationLine("KABR", "ABERDEEN", "UNITED STATES", "SD", "45.455833", "-98.413333", "1383", "NEXRAD") + "\n" +
		"\n" +
		stationLine("TADW", "ANDREWS AIR FORCE BASE", "UNITED STATES", "MD", "38.695", "-76.845", "346", "TDWR") + "\r\n" +
		stationLine("RKSG", "CAMP HUMPHREYS", "KOREA, REPUBLIC OF", "", "36.955", "127.021", "", "NEXRAD") + "\n"

	records, err := sources.ParseStations(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, stations.Record{
		ID:        "KABR",
		Name:      "Aberdeen",
		Latitude:  45.455833,
		Longitude: -98.413333,
		Region:    "South Dakota",
		Type:      stations.TypeNEXRAD,
	}, records[0])

	assert.Equal(t, "Andrews Air Force Base", records[1].Name)
	assert.Equal(t, "Maryland", records[1].Region)
	assert.Equal(t, stations.TypeTDWR, records[1].Type)

	assert.Equal(t, "KOREA, REPUBLIC OF", records[2].Region, "unknown state falls back to the row's country")
}

func TestParseStationsNameCase(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "CHICAGO O'HARE", want: "Chicago O'Hare"},
		{raw: "ST. LOUIS", want: "St. Louis"},
		{raw: "FT CAMPBELL", want: "Ft Campbell"},
		{raw: "WINSTON-SALEM", want: "Winston-Salem"},
		{raw: "O'", want: "O'"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			input := stationHeader + stationLine("TORD", tt.raw, "UNITED STATES", "IL", "41.79", "-87.85", "", "TDWR") + "\n"
			records, err := sources.ParseStations(strings.NewReader(input))
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, tt.want, records[0].Name)
		})
	}
}

func TestParseStationsTerritories(t *testing.T) {
	input := stationHeader +
		stationLine("TJUA", "SAN JUAN", "UNITED STATES", "PR", "18.1155", "-66.078", "2958", "NEXRAD") + "\n" +
		stationLine("PGUA", "ANDERSEN AFB", "UNITED STATES", "GU", "13.455965", "144.811083", "386", "NEXRAD") + "\n"

	records, err := sources.ParseStations(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Puerto Rico", records[0].Region)
	assert.Equal(t, "Guam", records[1].Region)
}

func TestParseStationsErrors(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		message string
	}{
		{
			name:    "missing identifier",
			line:    stationLine("", "NOWHERE", "UNITED STATES", "KS", "38.0", "-98.0", "", "NEXRAD"),
			message: "missing station identifier",
		},
		{
			name:    "bad latitude",
			line:    stationLine("KBAD", "NOWHERE", "UNITED STATES", "KS", "N/A", "-98.0", "", "NEXRAD"),
			message: `invalid latitude "N/A"`,
		},
		{
			name:    "truncated row",
			line:    stationLine("KCUT", "NOWHERE", "UNITED STATES", "KS", "38.0", "-98.0", "", "NEXRAD")[:110],
			message: `invalid longitude ""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := stationHeader +
				stationLine("KOK1", "FINE", "UNITED STATES", "KS", "38.0", "-98.0", "", "NEXRAD") + "\n" +
				tt.line + "\n"

			_, err := sources.ParseStations(strings.NewReader(input), sources.WithFile("nexrad-stations.txt"))
			require.Error(t, err)
			assert.True(t, errors.IsParseError(err))

			var perr *errors.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, 4, perr.Line)
			assert.Equal(t, "nexrad-stations.txt", perr.File)
			assert.Equal(t, tt.message, perr.Message)
		})
	}
}

func TestParseStationsHeaderRows(t *testing.T) {
	input := stationLine("KABR", "ABERDEEN", "UNITED STATES", "SD", "45.45", "-98.41", "", "NEXRAD") + "\n"

	records, err := sources.ParseStations(strings.NewReader(input), sources.WithHeaderRows(0))
	require.NoError(t, err)
	assert.Len(t, records, 1)

	records, err = sources.ParseStations(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, records, "the only line is a header row by default")
}

const locationTable = `/*
 * This file was automatically updated on 2024-01-01.
 */

#include "aweather-location.h"

city_t cities[] = {
	{LOCATION_STATE,	"NULL",	"Alabama",	{0,	0,	0},	0.0},
		{LOCATION_CITY,	"KBMX",	"Birmingham",	{33.172, -86.770, 0},	0.5},
		{LOCATION_NOP,	"KEOX",	"Fort Rucker",	{31.460,	-85.459,	0},	0.5},
	{LOCATION_STATE,	"NULL",	"Washington, D.C.",	{0,	0,	0},	0.0},
		{LOCATION_CITY,	"TDCA",	"Washington, National",	{38.759,	-76.962,	12},	1e-1},
		{LOCATION_OTHER,	"KXXX",	"Odd",	{1,	2,	3},	2},
	{0},
};
`

func TestParseLocations(t *testing.T) {
	entries, err := sources.ParseLocations(strings.NewReader(locationTable))
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, stations.Entry{
		Kind:      stations.KindActive,
		ID:        "KBMX",
		Name:      "Birmingham",
		Region:    "Alabama",
		Latitude:  33.172,
		Longitude: -86.770,
		LOD:       0.5,
	}, entries[0])

	assert.Equal(t, stations.KindInactive, entries[1].Kind)
	assert.Equal(t, "Alabama", entries[1].Region)

	assert.Equal(t, "Washington, National", entries[2].Name, "commas inside names are kept")
	assert.Equal(t, "Washington, D.C.", entries[2].Region)
	assert.Equal(t, 12.0, entries[2].Elevation)
	assert.Equal(t, 0.1, entries[2].LOD)

	assert.Equal(t, stations.Kind("LOCATION_OTHER"), entries[3].Kind, "unknown kinds are kept verbatim")
}

func TestParseLocationsEntryBeforeRegion(t *testing.T) {
	entries, err := sources.ParseLocations(strings.NewReader(`{LOCATION_CITY, "KABC", "Orphan", {1, 2, 0}, 0.5},`))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Region)
}

func TestParseLocationsErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{
			name:  "malformed number",
			input: "city_t cities[] = {\n\t{LOCATION_STATE, \"NULL\", \"Iowa\", {0, 0, 0}, 0.0},\n\t\t{LOCATION_CITY, \"KDMX\", \"Des Moines\", {41.7.3, -93.7, 0}, 0.5},\n};\n",
			line:  3,
		},
		{
			name:  "non-numeric coordinate",
			input: "\t{LOCATION_STATE, \"NULL\", \"Illinois\", {0, 0, 0}, 0.0},\n\t\t{LOCATION_CITY, \"KLOT\", \"Chicago Curated\", {41.6, N/A, 0}, 0.3},\n",
			line:  2,
		},
		{
			name:  "missing elevation",
			input: "\t{LOCATION_STATE, \"NULL\", \"Illinois\", {0, 0, 0}, 0.0},\n\t\t{LOCATION_CITY, \"KLOT\", \"Chicago\", {41.6, -88.08, 0}, 0.3},\n\t\t{LOCATION_CITY, \"KILX\", \"Lincoln\", {40.15, -89.33}, 0.5},\n",
			line:  3,
		},
		{
			name:  "missing priority",
			input: "{LOCATION_CITY, \"KILX\", \"Lincoln\", {40.15, -89.33, 0}},",
			line:  1,
		},
		{
			name:  "unterminated name",
			input: "\n\n{LOCATION_CITY, \"KILX\", \"Lincoln, {40.15, -89.33, 0}, 0.5},",
			line:  3,
		},
		{
			name:  "empty identifier",
			input: "{LOCATION_CITY, \"\", \"Nameless\", {41.7, -93.7, 0}, 0.5},",
			line:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sources.ParseLocations(strings.NewReader(tt.input), sources.WithFile("aweather-location.c"))
			require.Error(t, err)

			var perr *errors.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.line, perr.Line)
			assert.Equal(t, "locations", perr.Format)
		})
	}
}

func TestParseLocationsEmpty(t *testing.T) {
	entries, err := sources.ParseLocations(strings.NewReader("city_t cities[] = {\n\t{0},\n};\n"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParseAvailability(t *testing.T) {
	input := "Title: NOMADS Level II\n" +
		"Refresh: 1\n" +
		"\n" +
		" Site: KABR\n" +
		" Site: KAKQ\r\n" +
		"Site: KBAD\n" +
		"  Site: KTWO\n" +
		" Site: KEXT extra\n" +
		" site: KLOW\n" +
		" Site: \n"

	available, err := sources.ParseAvailability(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"KABR", "KAKQ"}, available.Sorted())
}

type fakeFetcher struct {
	body []byte
	err  error
	urls []string
}

func (f *fakeFetcher) Get(_ context.Context, url string) ([]byte, error) {
	f.urls = append(f.urls, url)
	return f.body, f.err
}

func TestSourceLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("path wins over url", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "grlevel2.cfg")
		require.NoError(t, os.WriteFile(path, []byte(" Site: KABR\n"), 0o644))
		fetcher := &fakeFetcher{}

		src := sources.Availability("https://example.com/grlevel2.cfg", path)
		data, err := src.Load(ctx, fetcher)
		require.NoError(t, err)
		assert.Equal(t, " Site: KABR\n", string(data))
		assert.Empty(t, fetcher.urls)
		assert.True(t, src.Local())
		assert.Equal(t, path, src.Location())
	})

	t.Run("fetches url", func(t *testing.T) {
		fetcher := &fakeFetcher{body: []byte("data")}
		src := sources.Stations("https://example.com/nexrad-stations.txt", "")

		data, err := src.Load(ctx, fetcher)
		require.NoError(t, err)
		assert.Equal(t, "data", string(data))
		assert.Equal(t, []string{"https://example.com/nexrad-stations.txt"}, fetcher.urls)
	})

	t.Run("fetch failure", func(t *testing.T) {
		cause := errors.NewAPIError("stations", "https://example.com", 404, "Not Found")
		src := sources.Stations("https://example.com", "")

		_, err := src.Load(ctx, &fakeFetcher{err: cause})
		require.Error(t, err)
		assert.True(t, errors.IsRetrievalError(err))
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := sources.Locations(filepath.Join(t.TempDir(), "missing.c")).Load(ctx, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("nothing configured", func(t *testing.T) {
		_, err := sources.Stations("", "").Load(ctx, &fakeFetcher{})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestIDs(t *testing.T) {
	for _, id := range sources.IDs() {
		assert.True(t, id.IsValid())
	}
	assert.False(t, sources.ID("other").IsValid())
	assert.Equal(t, "nexrad", sources.StationsID.Format())
	assert.Equal(t, "grlevel2", sources.AvailabilityID.Format())
}
