package traffic

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes one aggregation pass across all stations
type Summary struct {
	Departures     int     `json:"departures"`
	Arrivals       int     `json:"arrivals"`
	Stations       int     `json:"stations"`
	ActiveStations int     `json:"active_stations"`
	MaxTraffic     int     `json:"max_traffic"`
	MeanTraffic    float64 `json:"mean_traffic"`
	StdDevTraffic  float64 `json:"stddev_traffic"`
	P90Traffic     float64 `json:"p90_traffic"`
}

// Summarize computes totals and the traffic distribution of a pass
func Summarize(stations []StationTraffic) Summary {
	s := Summary{Stations: len(stations)}
	if len(stations) == 0 {
		return s
	}
	totals := make([]float64, len(stations))
	for i, st := range stations {
		s.Departures += st.Departures
		s.Arrivals += st.Arrivals
		if st.TotalTraffic > 0 {
			s.ActiveStations++
		}
		totals[i] = float64(st.TotalTraffic)
	}
	s.MaxTraffic = int(floats.Max(totals))
	if len(totals) > 1 {
		s.MeanTraffic, s.StdDevTraffic = stat.MeanStdDev(totals, nil)
	} else {
		s.MeanTraffic = totals[0]
	}
	sort.Float64s(totals)
	s.P90Traffic = stat.Quantile(0.9, stat.Empirical, totals, nil)
	return s
}
