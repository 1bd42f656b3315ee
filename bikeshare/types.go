package bikeshare

import (
	"time"

	"github.com/google/uuid"
)

// Station is a dock location identified by its short name
type Station struct {
	ShortName string  `json:"short_name" msgpack:"short_name"`
	Name      string  `json:"name" msgpack:"name"`
	Lat       float64 `json:"lat" msgpack:"lat"`
	Lon       float64 `json:"lon" msgpack:"lon"`
	Capacity  int     `json:"capacity,omitempty" msgpack:"capacity,omitempty"`
	LegacyID  string  `json:"legacy_id,omitempty" msgpack:"legacy_id,omitempty"`
}

// Trip is a single ride from one station to another
type Trip struct {
	RideID         string    `json:"ride_id" msgpack:"ride_id"`
	BikeType       string    `json:"bike_type" msgpack:"bike_type"`
	StartStationID string    `json:"start_station_id" msgpack:"start_station_id"`
	EndStationID   string    `json:"end_station_id" msgpack:"end_station_id"`
	StartedAt      time.Time `json:"started_at" msgpack:"started_at"`
	EndedAt        time.Time `json:"ended_at" msgpack:"ended_at"`
	IsMember       bool      `json:"is_member" msgpack:"is_member"`
}

// HasStart reports whether the departure timestamp was parsed
func (t Trip) HasStart() bool { return !t.StartedAt.IsZero() }

// HasEnd reports whether the arrival timestamp was parsed
func (t Trip) HasEnd() bool { return !t.EndedAt.IsZero() }

// ParseStats counts rows the trip parser could only partially read
type ParseStats struct {
	Rows         int `json:"rows" msgpack:"rows"`
	BadStartedAt int `json:"bad_started_at" msgpack:"bad_started_at"`
	BadEndedAt   int `json:"bad_ended_at" msgpack:"bad_ended_at"`
	ShortRows    int `json:"short_rows" msgpack:"short_rows"`
}

// Dataset is one loaded pair of station list and trip log
type Dataset struct {
	ID       uuid.UUID  `msgpack:"id"`
	Name     string     `msgpack:"name"`
	Timezone string     `msgpack:"timezone"`
	LoadedAt time.Time  `msgpack:"loaded_at"`
	Stations []Station  `msgpack:"stations"`
	Trips    []Trip     `msgpack:"trips"`
	Stats    ParseStats `msgpack:"stats"`
}

// NewDataset wraps already-parsed stations and trips with a fresh id.
// loc is the zone the trip timestamps were read in; nil means UTC.
func NewDataset(name string, loc *time.Location, stations []Station, trips []Trip) *Dataset {
	if loc == nil {
		loc = time.UTC
	}
	return &Dataset{
		ID:       uuid.New(),
		Name:     name,
		Timezone: loc.String(),
		LoadedAt: time.Now().UTC(),
		Stations: stations,
		Trips:    trips,
	}
}

// StationByShortName returns the station with the given id
func (d *Dataset) StationByShortName(shortName string) (Station, bool) {
	for _, s := range d.Stations {
		if s.ShortName == shortName {
			return s, true
		}
	}
	return Station{}, false
}

// Location returns the time zone trip timestamps are expressed in
func (d *Dataset) Location() *time.Location {
	if d.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// NormalizeZone puts every trip timestamp back into the dataset zone.
// Decoders hand times back in time.Local, which would shift the wall clock.
func (d *Dataset) NormalizeZone() {
	loc := d.Location()
	for i := range d.Trips {
		if d.Trips[i].HasStart() {
			d.Trips[i].StartedAt = d.Trips[i].StartedAt.In(loc)
		}
		if d.Trips[i].HasEnd() {
			d.Trips[i].EndedAt = d.Trips[i].EndedAt.In(loc)
		}
	}
}
