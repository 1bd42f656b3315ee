/*
Package bikeshare provides the bike-share data model and the parsers for
station and trip documents.

This package is data-source agnostic - it accepts io.Reader values and builds
an in-memory Dataset. It does NOT download source documents; see the root
package Fetcher for that.

# Basic Usage

	stationsFile, _ := os.Open("bluebikes-stations.json")
	tripsFile, _ := os.Open("bluebikes-traffic-2024-03.csv")

	loc, _ := time.LoadLocation("America/New_York")
	ds, err := bikeshare.NewDatasetFromReaders(stationsFile, tripsFile, loc)
	if err != nil {
	    log.Fatal(err)
	}

# Station Document

Stations are read from the GBFS-style station information document:

	{"data": {"stations": [{"short_name": "A32000", "name": "...", "lat": 42.36, "lon": -71.09}]}}

A bare JSON array of stations is accepted too.

# Trip Document

Trips are read from a CSV trip log with a header row. Columns are located by
name, so column order does not matter:

	ride_id,bike_type,started_at,ended_at,start_station_id,end_station_id,is_member

Timestamps are wall-clock times in the system time zone. A timestamp that
cannot be parsed leaves the field zero; the row is kept so the other
timestamp can still be used.

# Performance: Cache the Dataset

Parsing a month of trips takes seconds. Parse once, then keep the dataset in
memory or serialize it with SerializeDatasetToFile.
*/
package bikeshare
