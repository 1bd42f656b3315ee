package formatter

import "github.com/theoremus-urban-solutions/bikeflow/traffic"

// TrafficResponse is the payload of one aggregation pass
type TrafficResponse struct {
	ResponseTimestamp string              `json:"response_timestamp"`
	DatasetID         string              `json:"dataset_id"`
	Filter            FilterInfo          `json:"filter"`
	Scale             traffic.RadiusScale `json:"scale"`
	Summary           traffic.Summary     `json:"summary"`
	Stations          []StationEntry      `json:"stations"`
}

// StationResponse is the payload of a single-station query
type StationResponse struct {
	ResponseTimestamp string       `json:"response_timestamp"`
	DatasetID         string       `json:"dataset_id"`
	Filter            FilterInfo   `json:"filter"`
	Station           StationEntry `json:"station"`
}

// FilterInfo describes the time filter a response was computed for.
// Minute and the window bounds are nil when no filter is active.
type FilterInfo struct {
	Active      bool   `json:"active"`
	Label       string `json:"label"`
	Minute      *int   `json:"minute,omitempty"`
	WindowStart *int   `json:"window_start,omitempty"`
	WindowEnd   *int   `json:"window_end,omitempty"`
}

// StationEntry is one station with its traffic and marker radius
type StationEntry struct {
	ShortName    string  `json:"short_name"`
	Name         string  `json:"name"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	Arrivals     int     `json:"arrivals"`
	Departures   int     `json:"departures"`
	TotalTraffic int     `json:"total_traffic"`
	Flow         float64 `json:"flow"`
	Radius       float64 `json:"radius"`
}

// ErrorResponse is returned for rejected requests
type ErrorResponse struct {
	Error ErrorCondition `json:"error"`
}

// ErrorCondition describes why a request was rejected
type ErrorCondition struct {
	Description string `json:"description"`
}
