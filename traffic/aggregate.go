package traffic

import (
	"github.com/theoremus-urban-solutions/bikeflow/bikeshare"
)

// StationTraffic is one station annotated with the traffic of a single pass.
// A new record is produced on every pass; records are never updated.
type StationTraffic struct {
	bikeshare.Station
	Arrivals     int       `json:"arrivals"`
	Departures   int       `json:"departures"`
	TotalTraffic int       `json:"total_traffic"`
	Flow         FlowClass `json:"flow"`
}

// Result is the output of one aggregation pass
type Result struct {
	Filter   TimeFilter
	Stations []StationTraffic
	Scale    RadiusScale
	Summary  Summary
}

// Aggregator answers traffic queries over a fixed station list and bucket index
type Aggregator struct {
	stations    []bikeshare.Station
	buckets     *Buckets
	originalMax int
}

// NewAggregator runs the unfiltered pass once to learn the busiest station of
// the day, which filtered passes scale against.
func NewAggregator(stations []bikeshare.Station, buckets *Buckets) *Aggregator {
	if buckets == nil {
		buckets = &Buckets{}
	}
	a := &Aggregator{
		stations: append([]bikeshare.Station(nil), stations...),
		buckets:  buckets,
	}
	a.originalMax = maxTraffic(a.merge(NoFilter))
	return a
}

// OriginalMax is the largest unfiltered total traffic of any station
func (a *Aggregator) OriginalMax() int { return a.originalMax }

// Buckets returns the index the aggregator reads
func (a *Aggregator) Buckets() *Buckets { return a.buckets }

// StationCount is the length of every Result.Stations
func (a *Aggregator) StationCount() int { return len(a.stations) }

// Counts returns departure and arrival counts for the trips inside the filter window
func (a *Aggregator) Counts(f TimeFilter) (departures, arrivals StationCounts) {
	departures = CountDepartures(a.buckets.Departures.Select(f))
	arrivals = CountArrivals(a.buckets.Arrivals.Select(f))
	return departures, arrivals
}

// Compute runs one aggregation pass for f
func (a *Aggregator) Compute(f TimeFilter) Result {
	stations := a.merge(f)
	return Result{
		Filter:   f,
		Stations: stations,
		Scale:    NewRadiusScale(maxTraffic(stations), a.originalMax, f.IsActive()),
		Summary:  Summarize(stations),
	}
}

// Station returns the traffic of a single station for f
func (a *Aggregator) Station(shortName string, f TimeFilter) (StationTraffic, bool) {
	for _, s := range a.stations {
		if s.ShortName != shortName {
			continue
		}
		departures, arrivals := a.Counts(f)
		return annotate(s, departures, arrivals), true
	}
	return StationTraffic{}, false
}

func (a *Aggregator) merge(f TimeFilter) []StationTraffic {
	departures, arrivals := a.Counts(f)
	out := make([]StationTraffic, len(a.stations))
	for i, s := range a.stations {
		out[i] = annotate(s, departures, arrivals)
	}
	return out
}

func annotate(s bikeshare.Station, departures, arrivals StationCounts) StationTraffic {
	st := StationTraffic{
		Station:    s,
		Arrivals:   arrivals.Get(s.ShortName),
		Departures: departures.Get(s.ShortName),
	}
	st.TotalTraffic = st.Arrivals + st.Departures
	st.Flow = Flow(st.Departures, st.TotalTraffic)
	return st
}

func maxTraffic(stations []StationTraffic) int {
	m := 0
	for _, s := range stations {
		if s.TotalTraffic > m {
			m = s.TotalTraffic
		}
	}
	return m
}
