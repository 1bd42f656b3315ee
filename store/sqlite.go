// Package store persists parsed datasets in SQLite so a trip log is parsed
// once and reloaded quickly afterwards.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/theoremus-urban-solutions/bikeflow/bikeshare"
)

// ErrNotFound is returned when no dataset matches the requested name
var ErrNotFound = errors.New("dataset not found")

const schema = `
CREATE TABLE IF NOT EXISTS datasets (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL UNIQUE,
	timezone       TEXT NOT NULL,
	loaded_at      INTEGER NOT NULL,
	row_count      INTEGER NOT NULL DEFAULT 0,
	bad_started_at INTEGER NOT NULL DEFAULT 0,
	bad_ended_at   INTEGER NOT NULL DEFAULT 0,
	short_rows     INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS stations (
	dataset_id TEXT NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
	position   INTEGER NOT NULL,
	short_name TEXT NOT NULL,
	name       TEXT NOT NULL,
	lat        REAL NOT NULL,
	lon        REAL NOT NULL,
	capacity   INTEGER NOT NULL DEFAULT 0,
	legacy_id  TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (dataset_id, short_name)
);
CREATE TABLE IF NOT EXISTS trips (
	dataset_id       TEXT NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
	ride_id          TEXT NOT NULL,
	bike_type        TEXT NOT NULL,
	start_station_id TEXT NOT NULL,
	end_station_id   TEXT NOT NULL,
	started_at       INTEGER,
	ended_at         INTEGER,
	is_member        INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS trips_dataset ON trips(dataset_id);
`

// DatasetInfo describes a stored dataset without its rows
type DatasetInfo struct {
	ID       uuid.UUID
	Name     string
	Timezone string
	LoadedAt time.Time
	Stations int
	Trips    int
}

// Store is a SQLite-backed dataset store
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// one connection keeps :memory: databases and pragmas consistent
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error { return s.db.Close() }

// SaveDataset stores ds under ds.Name, replacing any dataset of the same name
func (s *Store) SaveDataset(ctx context.Context, ds *bikeshare.Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{
		"DELETE FROM trips WHERE dataset_id IN (SELECT id FROM datasets WHERE name = ?)",
		"DELETE FROM stations WHERE dataset_id IN (SELECT id FROM datasets WHERE name = ?)",
		"DELETE FROM datasets WHERE name = ?",
	} {
		if _, err := tx.ExecContext(ctx, q, ds.Name); err != nil {
			return fmt.Errorf("failed to replace dataset %q: %w", ds.Name, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO datasets (id, name, timezone, loaded_at, row_count, bad_started_at, bad_ended_at, short_rows)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ds.ID.String(), ds.Name, ds.Timezone, ds.LoadedAt.UnixNano(),
		ds.Stats.Rows, ds.Stats.BadStartedAt, ds.Stats.BadEndedAt, ds.Stats.ShortRows,
	); err != nil {
		return fmt.Errorf("failed to insert dataset: %w", err)
	}

	stStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO stations (dataset_id, position, short_name, name, lat, lon, capacity, legacy_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare station insert: %w", err)
	}
	defer stStmt.Close()
	for i, st := range ds.Stations {
		if _, err := stStmt.ExecContext(ctx, ds.ID.String(), i, st.ShortName, st.Name, st.Lat, st.Lon, st.Capacity, st.LegacyID); err != nil {
			return fmt.Errorf("failed to insert station %s: %w", st.ShortName, err)
		}
	}

	trStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO trips (dataset_id, ride_id, bike_type, start_station_id, end_station_id, started_at, ended_at, is_member)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare trip insert: %w", err)
	}
	defer trStmt.Close()
	for _, t := range ds.Trips {
		if _, err := trStmt.ExecContext(ctx, ds.ID.String(), t.RideID, t.BikeType, t.StartStationID, t.EndStationID,
			nullableTime(t.StartedAt), nullableTime(t.EndedAt), t.IsMember); err != nil {
			return fmt.Errorf("failed to insert trip %s: %w", t.RideID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dataset: %w", err)
	}
	return nil
}

// LoadDataset loads the dataset with the given name; an empty name loads the
// most recently loaded dataset
func (s *Store) LoadDataset(ctx context.Context, name string) (*bikeshare.Dataset, error) {
	q := `SELECT id, name, timezone, loaded_at, row_count, bad_started_at, bad_ended_at, short_rows FROM datasets WHERE name = ?`
	args := []any{name}
	if name == "" {
		q = `SELECT id, name, timezone, loaded_at, row_count, bad_started_at, bad_ended_at, short_rows FROM datasets ORDER BY loaded_at DESC LIMIT 1`
		args = nil
	}
	var (
		ds       bikeshare.Dataset
		id       string
		loadedAt int64
	)
	err := s.db.QueryRowContext(ctx, q, args...).Scan(&id, &ds.Name, &ds.Timezone, &loadedAt,
		&ds.Stats.Rows, &ds.Stats.BadStartedAt, &ds.Stats.BadEndedAt, &ds.Stats.ShortRows)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query dataset: %w", err)
	}
	if ds.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("corrupt dataset id %q: %w", id, err)
	}
	ds.LoadedAt = time.Unix(0, loadedAt).UTC()

	if ds.Stations, err = s.loadStations(ctx, id); err != nil {
		return nil, err
	}
	if ds.Trips, err = s.loadTrips(ctx, id); err != nil {
		return nil, err
	}
	ds.NormalizeZone()
	return &ds, nil
}

func (s *Store) loadStations(ctx context.Context, datasetID string) ([]bikeshare.Station, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT short_name, name, lat, lon, capacity, legacy_id FROM stations WHERE dataset_id = ? ORDER BY position`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	stations := []bikeshare.Station{}
	for rows.Next() {
		var st bikeshare.Station
		if err := rows.Scan(&st.ShortName, &st.Name, &st.Lat, &st.Lon, &st.Capacity, &st.LegacyID); err != nil {
			return nil, fmt.Errorf("failed to scan station: %w", err)
		}
		stations = append(stations, st)
	}
	return stations, rows.Err()
}

func (s *Store) loadTrips(ctx context.Context, datasetID string) ([]bikeshare.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ride_id, bike_type, start_station_id, end_station_id, started_at, ended_at, is_member
		 FROM trips WHERE dataset_id = ? ORDER BY rowid`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	trips := []bikeshare.Trip{}
	for rows.Next() {
		var (
			t                  bikeshare.Trip
			startedAt, endedAt sql.NullInt64
		)
		if err := rows.Scan(&t.RideID, &t.BikeType, &t.StartStationID, &t.EndStationID, &startedAt, &endedAt, &t.IsMember); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		if startedAt.Valid {
			t.StartedAt = time.Unix(0, startedAt.Int64)
		}
		if endedAt.Valid {
			t.EndedAt = time.Unix(0, endedAt.Int64)
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

// ListDatasets returns every stored dataset, most recent first
func (s *Store) ListDatasets(ctx context.Context) ([]DatasetInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.id, d.name, d.timezone, d.loaded_at,
		       (SELECT COUNT(*) FROM stations s WHERE s.dataset_id = d.id),
		       (SELECT COUNT(*) FROM trips t WHERE t.dataset_id = d.id)
		FROM datasets d ORDER BY d.loaded_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query datasets: %w", err)
	}
	defer rows.Close()

	var out []DatasetInfo
	for rows.Next() {
		var (
			info     DatasetInfo
			id       string
			loadedAt int64
		)
		if err := rows.Scan(&id, &info.Name, &info.Timezone, &loadedAt, &info.Stations, &info.Trips); err != nil {
			return nil, fmt.Errorf("failed to scan dataset: %w", err)
		}
		info.ID, _ = uuid.Parse(id)
		info.LoadedAt = time.Unix(0, loadedAt).UTC()
		out = append(out, info)
	}
	return out, rows.Err()
}

func nullableTime(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixNano(), Valid: true}
}
