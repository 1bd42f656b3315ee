package bikeflow

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bluele/gcache"
	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/bikeflow/bikeshare"
	"github.com/theoremus-urban-solutions/bikeflow/formatter"
	"github.com/theoremus-urban-solutions/bikeflow/traffic"
)

// ErrStationNotFound is returned for short names absent from the dataset
var ErrStationNotFound = errors.New("station not found")

type snapshot struct {
	dataset    *bikeshare.Dataset
	aggregator *traffic.Aggregator
}

// Service answers traffic queries against the current dataset. Rendered
// responses are memoized per dataset, filter and format.
type Service struct {
	mu        sync.RWMutex
	reloadMu  sync.Mutex
	current   *snapshot
	responses gcache.Cache
	logger    *zap.SugaredLogger
}

// NewService buckets ds and prepares a response cache holding up to
// cacheSize entries; a size of 0 disables caching.
func NewService(ds *bikeshare.Dataset, cacheSize int, logger *zap.SugaredLogger) *Service {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	s := &Service{logger: logger}
	if cacheSize > 0 {
		s.responses = gcache.New(cacheSize).LRU().Build()
	}
	s.Reload(ds)
	return s
}

// Reload swaps in a new dataset. Requests already running finish against
// the previous one. Concurrent reloads are applied one at a time in the
// order they acquire the reload lock.
func (s *Service) Reload(ds *bikeshare.Dataset) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	if ds == nil {
		ds = bikeshare.NewDataset("", time.UTC, nil, nil)
	}
	start := time.Now()
	buckets := traffic.BuildBuckets(ds.Trips)
	agg := traffic.NewAggregator(ds.Stations, buckets)

	s.mu.Lock()
	s.current = &snapshot{dataset: ds, aggregator: agg}
	s.mu.Unlock()

	if s.responses != nil {
		s.responses.Purge()
	}
	s.logger.Infow("dataset ready",
		"dataset", ds.ID,
		"name", ds.Name,
		"stations", agg.StationCount(),
		"trips", buckets.TripCount(),
		"skipped_departures", buckets.SkippedDepartures,
		"skipped_arrivals", buckets.SkippedArrivals,
		"original_max", agg.OriginalMax(),
		"elapsed", time.Since(start),
	)
}

func (s *Service) load() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Dataset returns the dataset currently served
func (s *Service) Dataset() *bikeshare.Dataset {
	return s.load().dataset
}

// Aggregator returns the aggregator of the current dataset
func (s *Service) Aggregator() *traffic.Aggregator {
	return s.load().aggregator
}

// Compute runs one aggregation pass without touching the response cache
func (s *Service) Compute(f traffic.TimeFilter) traffic.Result {
	return s.load().aggregator.Compute(f)
}

func (s *Service) memoKey(args ...string) string {
	var b bytes.Buffer
	for i, a := range args {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(a)
	}
	return b.String()
}

func (s *Service) cached(key string, build func() ([]byte, error)) ([]byte, error) {
	if s.responses != nil {
		if v, err := s.responses.Get(key); err == nil {
			return v.([]byte), nil
		}
	}
	buf, err := build()
	if err != nil {
		return nil, err
	}
	if s.responses != nil {
		if err := s.responses.Set(key, buf); err != nil {
			s.logger.Warnw("failed to cache response", "key", key, "error", err)
		}
	}
	return buf, nil
}

// GetTrafficResponse renders traffic for every station in format ("json" or "pb")
func (s *Service) GetTrafficResponse(f traffic.TimeFilter, format string) ([]byte, error) {
	snap := s.load()
	key := s.memoKey("traffic", snap.dataset.ID.String(), f.Key(), format)
	return s.cached(key, func() ([]byte, error) {
		res := snap.aggregator.Compute(f)
		s.logger.Debugw("computed traffic", "filter", f.Key(), "stations", len(res.Stations), "max", res.Summary.MaxTraffic)
		return formatter.NewResponseBuilder().Build(formatter.BuildTrafficResponse(res, snap.dataset.ID), format)
	})
}

// GetStationResponse renders traffic for a single station
func (s *Service) GetStationResponse(shortName string, f traffic.TimeFilter, format string) ([]byte, error) {
	snap := s.load()
	key := s.memoKey("station", snap.dataset.ID.String(), shortName, f.Key(), format)
	return s.cached(key, func() ([]byte, error) {
		st, ok := snap.aggregator.Station(shortName, f)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrStationNotFound, shortName)
		}
		return formatter.NewResponseBuilder().Build(formatter.BuildStationResponse(st, f, snap.dataset.ID), format)
	})
}

// CacheStats reports response cache hits and misses
func (s *Service) CacheStats() (hits, misses uint64) {
	if s.responses == nil {
		return 0, 0
	}
	return s.responses.HitCount(), s.responses.MissCount()
}
