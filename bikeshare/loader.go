package bikeshare

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are tried in order for started_at / ended_at
var timestampLayouts = []string{
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339Nano,
	time.RFC3339,
}

// NewDatasetFromReaders parses a station document and a trip log into a Dataset
func NewDatasetFromReaders(stations, trips io.Reader, loc *time.Location) (*Dataset, error) {
	st, err := ParseStations(stations)
	if err != nil {
		return nil, fmt.Errorf("stations: %w", err)
	}
	tr, stats, err := ParseTrips(trips, loc)
	if err != nil {
		return nil, fmt.Errorf("trips: %w", err)
	}
	ds := NewDataset("", loc, st, tr)
	ds.Stats = stats
	return ds, nil
}

// ParseStations reads the station information document.
// Stations without a short name are skipped; duplicates keep the first entry.
func ParseStations(r io.Reader) ([]Station, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode station document: %w", err)
	}
	raw, err := stationList(doc)
	if err != nil {
		return nil, err
	}
	out := make([]Station, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		s := Station{
			ShortName: toStringFallback(m["short_name"], ""),
			Name:      toStringFallback(m["name"], ""),
			LegacyID:  toStringFallback(m["legacy_id"], ""),
		}
		if s.ShortName == "" {
			continue
		}
		if _, dup := seen[s.ShortName]; dup {
			continue
		}
		if lat, err := toFloat(m["lat"]); err == nil {
			s.Lat = lat
		}
		if lon, err := toFloat(m["lon"]); err == nil {
			s.Lon = lon
		}
		if c, err := toInt(m["capacity"]); err == nil {
			s.Capacity = c
		}
		seen[s.ShortName] = struct{}{}
		out = append(out, s)
	}
	return out, nil
}

// stationList accepts {"data":{"stations":[...]}}, {"stations":[...]} or a bare array
func stationList(doc any) ([]any, error) {
	switch t := doc.(type) {
	case []any:
		return t, nil
	case map[string]any:
		if data, ok := t["data"].(map[string]any); ok {
			if list, ok := data["stations"].([]any); ok {
				return list, nil
			}
		}
		if list, ok := t["stations"].([]any); ok {
			return list, nil
		}
	}
	return nil, errors.New("station document has no station list")
}

// ParseTrips reads a CSV trip log with a header row. Timestamps are read as
// wall-clock times in loc (UTC when nil). A malformed timestamp leaves the
// field zero and is counted in the returned ParseStats.
func ParseTrips(r io.Reader, loc *time.Location) ([]Trip, ParseStats, error) {
	var stats ParseStats
	if loc == nil {
		loc = time.UTC
	}
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	head, err := csvr.Read()
	if err == io.EOF {
		return []Trip{}, stats, nil
	}
	if err != nil {
		return nil, stats, fmt.Errorf("failed to read header: %w", err)
	}
	if len(head) > 0 {
		head[0] = strings.TrimPrefix(head[0], "\ufeff")
	}
	idx := func(cols ...string) int {
		for _, col := range cols {
			for i, h := range head {
				if strings.EqualFold(strings.TrimSpace(h), col) {
					return i
				}
			}
		}
		return -1
	}
	rideID := idx("ride_id")
	bikeType := idx("rideable_type", "bike_type")
	startedAt := idx("started_at")
	endedAt := idx("ended_at")
	startID := idx("start_station_id")
	endID := idx("end_station_id")
	member := idx("member_casual", "is_member")

	var missing []string
	for _, c := range []struct {
		name string
		i    int
	}{
		{"started_at", startedAt},
		{"ended_at", endedAt},
		{"start_station_id", startID},
		{"end_station_id", endID},
	} {
		if c.i < 0 {
			missing = append(missing, c.name)
		}
	}
	if len(missing) > 0 {
		return nil, stats, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	need := max(startedAt, endedAt, startID, endID) + 1

	field := func(row []string, i int) string {
		if i >= 0 && i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	trips := []Trip{}
	for {
		row, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("failed to read row %d: %w", stats.Rows+2, err)
		}
		stats.Rows++
		if len(row) < need {
			stats.ShortRows++
			continue
		}
		t := Trip{
			RideID:         field(row, rideID),
			BikeType:       field(row, bikeType),
			StartStationID: field(row, startID),
			EndStationID:   field(row, endID),
			IsMember:       parseMember(field(row, member)),
		}
		if ts, ok := parseTimestamp(field(row, startedAt), loc); ok {
			t.StartedAt = ts
		} else {
			stats.BadStartedAt++
		}
		if ts, ok := parseTimestamp(field(row, endedAt), loc); ok {
			t.EndedAt = ts
		} else {
			stats.BadEndedAt++
		}
		trips = append(trips, t)
	}
	return trips, stats, nil
}

// parseTimestamp tries each known layout; RFC 3339 values are converted to loc
func parseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

func parseMember(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "member":
		return true
	}
	return false
}

// Utility converters for flexible JSON values
func toStringFallback(v any, fallback string) string {
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
	case float64:
		return strconv.Itoa(int(t))
	case json.Number:
		if i, err := strconv.Atoi(t.String()); err == nil {
			return strconv.Itoa(i)
		}
		return t.String()
	}
	return fallback
}

func toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case string:
		return strconv.ParseFloat(t, 64)
	case json.Number:
		return t.Float64()
	default:
		return 0, errors.New("not a float")
	}
}

func toInt(v any) (int, error) {
	switch t := v.(type) {
	case float64:
		return int(t), nil
	case string:
		return strconv.Atoi(t)
	case json.Number:
		i64, err := t.Int64()
		return int(i64), err
	default:
		return 0, errors.New("not an int")
	}
}
