package formatter

import (
	"github.com/google/uuid"

	"github.com/theoremus-urban-solutions/bikeflow/traffic"
	"github.com/theoremus-urban-solutions/bikeflow/utils"
)

// BuildTrafficResponse wraps an aggregation result, sizing every station with the result's scale
func BuildTrafficResponse(res traffic.Result, datasetID uuid.UUID) *TrafficResponse {
	out := &TrafficResponse{
		ResponseTimestamp: utils.Iso8601Now(),
		DatasetID:         datasetID.String(),
		Filter:            BuildFilterInfo(res.Filter),
		Scale:             res.Scale,
		Summary:           res.Summary,
		Stations:          make([]StationEntry, len(res.Stations)),
	}
	for i, st := range res.Stations {
		out.Stations[i] = buildStationEntry(st)
		out.Stations[i].Radius = res.Scale.Radius(st.TotalTraffic)
	}
	return out
}

// BuildStationResponse wraps a single station's traffic
func BuildStationResponse(st traffic.StationTraffic, f traffic.TimeFilter, datasetID uuid.UUID) *StationResponse {
	return &StationResponse{
		ResponseTimestamp: utils.Iso8601Now(),
		DatasetID:         datasetID.String(),
		Filter:            BuildFilterInfo(f),
		Station:           buildStationEntry(st),
	}
}

// BuildFilterInfo describes f, including its bucket window when active
func BuildFilterInfo(f traffic.TimeFilter) FilterInfo {
	info := FilterInfo{Active: f.IsActive(), Label: f.String()}
	if m, ok := f.Minute(); ok {
		lo, hi := f.Window()
		info.Minute = &m
		info.WindowStart = &lo
		info.WindowEnd = &hi
	}
	return info
}

// BuildErrorResponse wraps a rejection message
func BuildErrorResponse(msg string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorCondition{Description: msg}}
}

func buildStationEntry(st traffic.StationTraffic) StationEntry {
	return StationEntry{
		ShortName:    st.ShortName,
		Name:         st.Name,
		Lat:          st.Lat,
		Lon:          st.Lon,
		Arrivals:     st.Arrivals,
		Departures:   st.Departures,
		TotalTraffic: st.TotalTraffic,
		Flow:         float64(st.Flow),
	}
}
