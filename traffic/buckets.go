package traffic

import (
	"time"

	"github.com/theoremus-urban-solutions/bikeflow/bikeshare"
)

// MinuteBuckets holds trips by minute of the day
type MinuteBuckets [MinutesPerDay][]bikeshare.Trip

// Buckets is the per-dataset index built by BuildBuckets.
// It is read-only once built and lives as long as the dataset it came from.
type Buckets struct {
	Departures        MinuteBuckets // keyed by minute of StartedAt
	Arrivals          MinuteBuckets // keyed by minute of EndedAt
	SkippedDepartures int           // trips without a usable StartedAt
	SkippedArrivals   int           // trips without a usable EndedAt
	trips             int
}

// MinutesSinceMidnight returns hour*60+minute of t, seconds discarded
func MinutesSinceMidnight(t time.Time) int {
	return (t.Hour()*60 + t.Minute()) % MinutesPerDay
}

// BuildBuckets indexes every trip by departure minute and by arrival minute.
// A trip whose timestamp was not parsed is left out of that one array only.
func BuildBuckets(trips []bikeshare.Trip) *Buckets {
	b := &Buckets{trips: len(trips)}
	for _, t := range trips {
		if t.HasStart() {
			m := MinutesSinceMidnight(t.StartedAt)
			b.Departures[m] = append(b.Departures[m], t)
		} else {
			b.SkippedDepartures++
		}
		if t.HasEnd() {
			m := MinutesSinceMidnight(t.EndedAt)
			b.Arrivals[m] = append(b.Arrivals[m], t)
		} else {
			b.SkippedArrivals++
		}
	}
	return b
}

// TripCount is the number of trips the buckets were built from
func (b *Buckets) TripCount() int { return b.trips }

// Select returns the trips of every bucket inside the filter window, in bucket order
func (mb *MinuteBuckets) Select(f TimeFilter) []bikeshare.Trip {
	var out []bikeshare.Trip
	mb.each(f, func(trips []bikeshare.Trip) {
		out = append(out, trips...)
	})
	return out
}

// Len returns how many trips fall inside the filter window
func (mb *MinuteBuckets) Len(f TimeFilter) int {
	n := 0
	mb.each(f, func(trips []bikeshare.Trip) { n += len(trips) })
	return n
}

// each visits the selected buckets: [lo, hi) or, across midnight, [lo, 1440) then [0, hi)
func (mb *MinuteBuckets) each(f TimeFilter, fn func([]bikeshare.Trip)) {
	lo, hi := f.Window()
	visit := func(from, to int) {
		for m := from; m < to; m++ {
			if len(mb[m]) > 0 {
				fn(mb[m])
			}
		}
	}
	if lo <= hi {
		visit(lo, hi)
		return
	}
	visit(lo, MinutesPerDay)
	visit(0, hi)
}
