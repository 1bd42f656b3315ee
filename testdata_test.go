package bikeflow

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/bikeflow/bikeshare"
)

const testZone = "America/New_York"

// loadTestDataset parses testdata/stations.json and testdata/trips.csv.
//
// Trips (wall clock, minute of day):
//
//	R1 A1->B2 08:10 (490) -> 08:25 (505)
//	R2 A1->C3 08:40 (520) -> 09:05 (545)
//	R3 B2->A1 23:50 (1430) -> 00:10 (10)
//	R4 C3->B2 17:00 (1020) -> 17:20 (1040)
//	R5 B2->C3 malformed start -> 12:00 (720)
func loadTestDataset(t *testing.T) *bikeshare.Dataset {
	t.Helper()
	loc, err := time.LoadLocation(testZone)
	require.NoError(t, err)

	st, err := os.Open(filepath.Join("testdata", "stations.json"))
	require.NoError(t, err)
	defer st.Close()
	tr, err := os.Open(filepath.Join("testdata", "trips.csv"))
	require.NoError(t, err)
	defer tr.Close()

	ds, err := bikeshare.NewDatasetFromReaders(st, tr, loc)
	require.NoError(t, err)
	ds.Name = "test"
	return ds
}
