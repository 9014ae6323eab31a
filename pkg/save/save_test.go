package save_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/radarmap/pkg/errors"
	"github.com/agentstation/radarmap/pkg/save"
	"github.com/agentstation/radarmap/pkg/sources"
	"github.com/agentstation/radarmap/pkg/stations"
)

var testDate = time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)

func testEntries() []stations.Entry {
	return []stations.Entry{
		{Kind: stations.KindActive, ID: "KLOT", Name: "Chicago", Region: "Illinois", Latitude: 41.6044, Longitude: -88.0844, LOD: 0.5},
		{Kind: stations.KindInactive, ID: "KBMX", Name: "Birmingham", Region: "Alabama", Latitude: 33, Longitude: -86.77, LOD: 0.5},
		{Kind: stations.KindActive, ID: "KILX", Name: "Lincoln", Region: "Illinois", Latitude: 40.15, Longitude: -89.33, Elevation: 582, LOD: 1},
		{Kind: stations.KindActive, ID: "TDCA", Name: `The "Capital" \ DC`, Region: "Washington, D.C.", Latitude: 38.759, Longitude: -76.962, LOD: 0.1},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	err := save.Render(&buf, testEntries(), save.WithDate(testDate))
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, " * This file was automatically updated with radarmap on 2024-03-09.\n")
	assert.Contains(t, out, "#include \"aweather-location.h\"\n")

	body := out[strings.Index(out, "city_t cities[] = {\n"):]
	want := "city_t cities[] = {\n" +
		"\t{LOCATION_STATE,\t\"NULL\",\t\"Alabama\",\t{0,\t0,\t0},\t0.0},\n" +
		"\t\t{LOCATION_NOP,\t\"KBMX\",\t\"Birmingham\",\t{33.0,\t-86.77,\t0},\t0.5},\n" +
		"\t{LOCATION_STATE,\t\"NULL\",\t\"Illinois\",\t{0,\t0,\t0},\t0.0},\n" +
		"\t\t{LOCATION_CITY,\t\"KLOT\",\t\"Chicago\",\t{41.6044,\t-88.0844,\t0},\t0.5},\n" +
		"\t\t{LOCATION_CITY,\t\"KILX\",\t\"Lincoln\",\t{40.15,\t-89.33,\t582},\t1.0},\n" +
		"\t{LOCATION_STATE,\t\"NULL\",\t\"Washington, D.C.\",\t{0,\t0,\t0},\t0.0},\n" +
		"\t\t{LOCATION_CITY,\t\"TDCA\",\t\"The \\\"Capital\\\" \\\\ DC\",\t{38.759,\t-76.962,\t0},\t0.1},\n" +
		"\t{0},\n" +
		"};\n"
	assert.Equal(t, want, body)
}

func TestRenderGenerator(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, save.Render(&buf, nil, save.WithDate(testDate), save.WithGenerator("helpers/update.py")))

	out := buf.String()
	assert.Contains(t, out, "updated with helpers/update.py on 2024-03-09.")
	assert.True(t, strings.HasSuffix(out, "city_t cities[] = {\n\t{0},\n};\n"), "empty roster still terminates the table")
}

func TestRenderDoesNotReorderInput(t *testing.T) {
	entries := testEntries()
	before := stations.IDs(entries)

	require.NoError(t, save.Render(&bytes.Buffer{}, entries))
	assert.Equal(t, before, stations.IDs(entries))
}

func TestRenderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, save.Render(&buf, testEntries(), save.WithDate(testDate)))

	parsed, err := sources.ParseLocations(&buf)
	require.NoError(t, err)

	byID := make(map[string]stations.Entry)
	for _, e := range testEntries() {
		byID[e.ID] = e
	}
	require.Len(t, parsed, len(byID))
	for _, e := range parsed {
		assert.Equal(t, byID[e.ID], e)
	}
	assert.Equal(t, []string{"KBMX", "KLOT", "KILX", "TDCA"}, stations.IDs(parsed))
}

func TestLocations(t *testing.T) {
	t.Run("writes and replaces", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "aweather-location.c")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

		require.NoError(t, save.Locations(path, testEntries(), save.WithDate(testDate)))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "\"KLOT\"")

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

		leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
		require.NoError(t, err)
		assert.Empty(t, leftovers)
	})

	t.Run("missing directory leaves nothing behind", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "aweather-location.c")

		err := save.Locations(path, testEntries())
		require.Error(t, err)

		var ioErr *errors.IOError
		require.ErrorAs(t, err, &ioErr)
		assert.Equal(t, "create", ioErr.Operation)
		assert.NoFileExists(t, path)
	})

	t.Run("failed rename keeps the previous table", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "aweather-location.c")
		require.NoError(t, os.Mkdir(target, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), []byte("x"), 0o644))

		err := save.Locations(target, testEntries())
		require.Error(t, err)

		assert.DirExists(t, target)
		leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
		require.NoError(t, err)
		assert.Empty(t, leftovers)
	})
}
