package bikeflow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/bikeflow/bikeshare"
	"github.com/theoremus-urban-solutions/bikeflow/config"
	"github.com/theoremus-urban-solutions/bikeflow/utils"
)

const defaultFetchTimeout = 60 * time.Second

// LoadDataset builds the named dataset from its configuration. A readable
// msgpack snapshot at cfg.CachePath recorded in the configured zone wins over
// the source documents; after a fresh parse the snapshot is (re)written.
func LoadDataset(ctx context.Context, name string, cfg config.DataConfig, logger *zap.SugaredLogger) (*bikeshare.Dataset, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	if cfg.CachePath != "" {
		ds, err := bikeshare.DeserializeDatasetFromFile(cfg.CachePath)
		switch {
		case err == nil && ds.Timezone != loc.String():
			logger.Warnw("ignoring dataset cache from another zone", "path", cfg.CachePath, "cached", ds.Timezone, "configured", loc.String())
		case err == nil:
			ds.Name = name
			logger.Infow("loaded dataset from cache", "path", cfg.CachePath, "dataset", ds.ID, "trips", len(ds.Trips))
			return ds, nil
		case !errors.Is(err, os.ErrNotExist):
			logger.Warnw("ignoring unreadable dataset cache", "path", cfg.CachePath, "error", err)
		}
	}
	if cfg.StationsURL == "" || cfg.TripsURL == "" {
		return nil, fmt.Errorf("dataset %q has no stationsURL/tripsURL", name)
	}

	fetcher := NewFetcher(utils.MillisToDuration(cfg.TimeoutMS, defaultFetchTimeout))
	stationsDoc, tripsDoc, err := fetcher.FetchAll(ctx, cfg.StationsURL, cfg.TripsURL)
	if err != nil {
		return nil, err
	}
	ds, err := bikeshare.NewDatasetFromReaders(bytes.NewReader(stationsDoc), bytes.NewReader(tripsDoc), loc)
	if err != nil {
		return nil, err
	}
	ds.Name = name
	logger.Infow("parsed dataset",
		"dataset", ds.ID,
		"name", name,
		"stations", len(ds.Stations),
		"trips", len(ds.Trips),
		"short_rows", ds.Stats.ShortRows,
		"bad_started_at", ds.Stats.BadStartedAt,
		"bad_ended_at", ds.Stats.BadEndedAt,
	)

	if cfg.CachePath != "" {
		if err := bikeshare.SerializeDatasetToFile(ds, cfg.CachePath); err != nil {
			logger.Warnw("failed to write dataset cache", "path", cfg.CachePath, "error", err)
		}
	}
	return ds, nil
}
