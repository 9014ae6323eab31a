package differ_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/radarmap/pkg/differ"
	"github.com/agentstation/radarmap/pkg/stations"
)

func station(kind stations.Kind, id, name, region string, lat, lon float64) stations.Entry {
	return stations.Entry{Kind: kind, ID: id, Name: name, Region: region, Latitude: lat, Longitude: lon, LOD: 0.5}
}

func TestCompare(t *testing.T) {
	prior := []stations.Entry{
		station(stations.KindActive, "KLOT", "Chicago", "Illinois", 41.6, -88.08),
		station(stations.KindInactive, "KILX", "Lincoln", "Illinois", 40.15, -89.33),
		station(stations.KindActive, "KDMX", "Des Moines", "Iowa", 41.73, -93.72),
		station(stations.KindActive, "KGONE", "Gone", "Ohio", 1, 2),
		station(stations.KindActive, "KSAME", "Same", "Ohio", 3, 4),
	}
	merged := []stations.Entry{
		station(stations.KindActive, "KLOT", "Chicago/Romeoville", "Illinois", 41.6044, -88.0844),
		station(stations.KindActive, "KILX", "Lincoln", "Illinois", 40.15, -89.33),
		station(stations.KindInactive, "KDMX", "Des Moines", "Iowa Area", 41.73, -93.72),
		station(stations.KindActive, "KSAME", "Same", "Ohio", 3, 4),
		station(stations.KindActive, "KNEW", "New (KNEW)", "Ohio", 5, 6),
	}

	cs := differ.Compare(prior, merged)

	require.Len(t, cs.Added, 1)
	assert.Equal(t, differ.Change{Type: differ.ChangeTypeAdd, ID: "KNEW", Region: "Ohio", Name: "New (KNEW)", New: "LOCATION_CITY"}, cs.Added[0])

	require.Len(t, cs.Removed, 1)
	assert.Equal(t, "KGONE", cs.Removed[0].ID)

	require.Len(t, cs.Activated, 1)
	assert.Equal(t, "KILX", cs.Activated[0].ID)
	assert.Equal(t, "LOCATION_NOP", cs.Activated[0].Old)

	require.Len(t, cs.Deactivated, 1)
	assert.Equal(t, "KDMX", cs.Deactivated[0].ID)

	require.Len(t, cs.Moved, 1)
	assert.Equal(t, "41.6, -88.08", cs.Moved[0].Old)
	assert.Equal(t, "41.6044, -88.0844", cs.Moved[0].New)

	require.Len(t, cs.Renamed, 1)
	assert.Equal(t, "Chicago", cs.Renamed[0].Old)
	assert.Equal(t, "Chicago/Romeoville", cs.Renamed[0].New)

	require.Len(t, cs.Regrouped, 1)
	assert.Equal(t, "Iowa", cs.Regrouped[0].Old)

	assert.Equal(t, 7, cs.Summary.TotalChanges)
	assert.True(t, cs.HasChanges())
	assert.Len(t, cs.All(), 7)
	assert.Equal(t, "Changeset: 1 added, 1 removed, 1 activated, 1 deactivated, 1 moved, 1 renamed, 1 regrouped (Total: 7 changes)", cs.String())
}

func TestCompareOrdersByID(t *testing.T) {
	merged := []stations.Entry{
		station(stations.KindActive, "KZZZ", "Z", "Ohio", 0, 0),
		station(stations.KindActive, "KAAA", "A", "Ohio", 0, 0),
		station(stations.KindActive, "KMMM", "M", "Ohio", 0, 0),
	}

	cs := differ.Compare(nil, merged)

	var ids []string
	for _, c := range cs.Added {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"KAAA", "KMMM", "KZZZ"}, ids)
}

func TestCompareNoChanges(t *testing.T) {
	roster := []stations.Entry{station(stations.KindActive, "KLOT", "Chicago", "Illinois", 41.6, -88.08)}

	cs := differ.Compare(roster, roster)

	assert.False(t, cs.HasChanges())
	assert.True(t, cs.IsEmpty())
	assert.Equal(t, "No changes detected", cs.String())

	var buf bytes.Buffer
	cs.Print(&buf)
	assert.Equal(t, "No changes detected\n", buf.String())
}

func TestOptions(t *testing.T) {
	prior := []stations.Entry{station(stations.KindActive, "KLOT", "Chicago", "Illinois", 41.6, -88.08)}
	merged := []stations.Entry{station(stations.KindActive, "KLOT", "Romeoville", "Illinois Area", 41.6001, -88.0801)}

	t.Run("tolerance", func(t *testing.T) {
		cs := differ.New(differ.WithTolerance(0.001)).Compare(prior, merged)
		assert.Empty(t, cs.Moved)

		cs = differ.New(differ.WithTolerance(0.00001)).Compare(prior, merged)
		assert.Len(t, cs.Moved, 1)
	})

	t.Run("ignored fields", func(t *testing.T) {
		cs := differ.New(differ.WithIgnoredFields(differ.FieldName, differ.FieldRegion, differ.FieldCoordinates)).Compare(prior, merged)
		assert.False(t, cs.HasChanges())
	})
}

func TestPrint(t *testing.T) {
	cs := differ.Compare(nil, []stations.Entry{station(stations.KindActive, "KNEW", "Newtown", "Ohio", 1, 2)})

	var buf bytes.Buffer
	cs.Print(&buf)

	out := buf.String()
	assert.Contains(t, out, "Changeset: 1 added (Total: 1 changes)")
	assert.Contains(t, out, "Added (1):")
	assert.Contains(t, out, "  • KNEW Newtown [Ohio]:  → LOCATION_CITY")
}
