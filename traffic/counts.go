package traffic

import (
	"github.com/theoremus-urban-solutions/bikeflow/bikeshare"
)

// StationCounts maps a station short name to a trip count
type StationCounts map[string]int

// Get returns the count for id, zero when the station saw no trips
func (c StationCounts) Get(id string) int {
	if n, ok := c[id]; ok {
		return n
	}
	return 0
}

// CountDepartures groups trips by start station
func CountDepartures(trips []bikeshare.Trip) StationCounts {
	c := make(StationCounts)
	for _, t := range trips {
		c[t.StartStationID]++
	}
	return c
}

// CountArrivals groups trips by end station
func CountArrivals(trips []bikeshare.Trip) StationCounts {
	c := make(StationCounts)
	for _, t := range trips {
		c[t.EndStationID]++
	}
	return c
}
