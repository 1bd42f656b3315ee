package bikeshare

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stationsJSON = `{
  "last_updated": 1710000000,
  "data": {
    "stations": [
      {"short_name": "A32000", "name": "Fan Pier", "lat": 42.353391, "lon": -71.044571, "capacity": 15, "legacy_id": "3"},
      {"short_name": "M32006", "name": "MIT at Mass Ave / Amherst St", "lat": "42.3581", "lon": "-71.093198"},
      {"name": "No short name", "lat": 42.0, "lon": -71.0},
      {"short_name": "A32000", "name": "Duplicate", "lat": 0, "lon": 0}
    ]
  }
}`

const tripsCSV = `ride_id,bike_type,started_at,ended_at,start_station_id,end_station_id,is_member
R1,electric,2024-03-01 08:30:12.345,2024-03-01 08:47:59.001,A32000,M32006,1
R2,classic,2024-03-01 23:55:00,2024-03-02 00:10:00,M32006,A32000,0
R3,classic,not-a-time,2024-03-01 09:00,A32000,A32000,1
R4,classic,2024-03-01 10:00
`

func TestParseStations(t *testing.T) {
	stations, err := ParseStations(strings.NewReader(stationsJSON))
	require.NoError(t, err)
	require.Len(t, stations, 2)

	assert.Equal(t, "A32000", stations[0].ShortName)
	assert.Equal(t, "Fan Pier", stations[0].Name)
	assert.Equal(t, 15, stations[0].Capacity)
	assert.Equal(t, "3", stations[0].LegacyID)
	assert.InDelta(t, 42.353391, stations[0].Lat, 1e-9)

	// string coordinates are accepted
	assert.Equal(t, "M32006", stations[1].ShortName)
	assert.InDelta(t, -71.093198, stations[1].Lon, 1e-9)
}

func TestParseStations_Shapes(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    int
		wantErr bool
	}{
		{"bare array", `[{"short_name":"A"},{"short_name":"B"}]`, 2, false},
		{"stations key", `{"stations":[{"short_name":"A"}]}`, 1, false},
		{"empty list", `{"data":{"stations":[]}}`, 0, false},
		{"no list", `{"data":{}}`, 0, true},
		{"not json", `<xml/>`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStations(strings.NewReader(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestParseTrips(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	trips, stats, err := ParseTrips(strings.NewReader(tripsCSV), loc)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Rows)
	assert.Equal(t, 1, stats.ShortRows)
	assert.Equal(t, 1, stats.BadStartedAt)
	assert.Equal(t, 0, stats.BadEndedAt)
	require.Len(t, trips, 3)

	r1 := trips[0]
	assert.Equal(t, "R1", r1.RideID)
	assert.Equal(t, "electric", r1.BikeType)
	assert.Equal(t, "A32000", r1.StartStationID)
	assert.Equal(t, "M32006", r1.EndStationID)
	assert.True(t, r1.IsMember)
	assert.Equal(t, 8, r1.StartedAt.Hour())
	assert.Equal(t, 30, r1.StartedAt.Minute())
	assert.Equal(t, loc, r1.StartedAt.Location())

	assert.False(t, trips[1].IsMember)
	assert.Equal(t, 0, trips[1].EndedAt.Hour())

	// the malformed start is kept as zero; the end is still usable
	assert.False(t, trips[2].HasStart())
	assert.True(t, trips[2].HasEnd())
}

func TestParseTrips_Columns(t *testing.T) {
	t.Run("reordered with member_casual", func(t *testing.T) {
		doc := "end_station_id,start_station_id,ended_at,started_at,member_casual,rideable_type\n" +
			"B,A,2024-03-01T10:05:00Z,2024-03-01T10:00:00Z,member,classic_bike\n"
		trips, _, err := ParseTrips(strings.NewReader(doc), nil)
		require.NoError(t, err)
		require.Len(t, trips, 1)
		assert.Equal(t, "A", trips[0].StartStationID)
		assert.Equal(t, "B", trips[0].EndStationID)
		assert.Equal(t, "classic_bike", trips[0].BikeType)
		assert.True(t, trips[0].IsMember)
		assert.Equal(t, 10, trips[0].StartedAt.Hour())
	})

	t.Run("missing required column", func(t *testing.T) {
		doc := "ride_id,started_at,start_station_id\nR1,2024-03-01 10:00,A\n"
		_, _, err := ParseTrips(strings.NewReader(doc), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ended_at")
		assert.Contains(t, err.Error(), "end_station_id")
	})

	t.Run("empty document", func(t *testing.T) {
		trips, stats, err := ParseTrips(strings.NewReader(""), nil)
		require.NoError(t, err)
		assert.Empty(t, trips)
		assert.Equal(t, 0, stats.Rows)
	})
}

func TestNewDatasetFromReaders(t *testing.T) {
	ds, err := NewDatasetFromReaders(strings.NewReader(stationsJSON), strings.NewReader(tripsCSV), time.UTC)
	require.NoError(t, err)
	assert.Len(t, ds.Stations, 2)
	assert.Len(t, ds.Trips, 3)
	assert.Equal(t, "UTC", ds.Timezone)
	assert.NotEqual(t, [16]byte{}, [16]byte(ds.ID))

	s, ok := ds.StationByShortName("M32006")
	assert.True(t, ok)
	assert.Equal(t, "MIT at Mass Ave / Amherst St", s.Name)
	_, ok = ds.StationByShortName("nope")
	assert.False(t, ok)
}

func TestDatasetCache_RoundTrip(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	ds, err := NewDatasetFromReaders(strings.NewReader(stationsJSON), strings.NewReader(tripsCSV), loc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "dataset.msgpack")
	require.NoError(t, SerializeDatasetToFile(ds, path))

	got, err := DeserializeDatasetFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, ds.ID, got.ID)
	assert.Equal(t, ds.Stations, got.Stations)
	assert.Equal(t, ds.Stats, got.Stats)
	require.Len(t, got.Trips, len(ds.Trips))
	for i := range ds.Trips {
		want, have := ds.Trips[i], got.Trips[i]
		assert.Equal(t, want.RideID, have.RideID)
		assert.True(t, want.StartedAt.Equal(have.StartedAt), "trip %s start", want.RideID)
		assert.True(t, want.EndedAt.Equal(have.EndedAt), "trip %s end", want.RideID)
		// wall clock must survive the round trip
		assert.Equal(t, want.StartedAt.Hour(), have.StartedAt.Hour())
		assert.Equal(t, want.HasStart(), have.HasStart())
	}
}

func TestDeserializeDataset_Corrupt(t *testing.T) {
	_, err := DeserializeDataset([]byte{0xc1, 0x00, 0x01})
	assert.Error(t, err)
}
