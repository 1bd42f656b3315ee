package bikeflow

import (
	"encoding/json"
	"net/http"

	"github.com/theoremus-urban-solutions/bikeflow/utils"
)

type healthResponse struct {
	Status            string `json:"status"`
	DatasetID         string `json:"dataset_id"`
	DatasetName       string `json:"dataset_name,omitempty"`
	LoadedAt          string `json:"loaded_at"`
	Stations          int    `json:"stations"`
	Trips             int    `json:"trips"`
	SkippedDepartures int    `json:"skipped_departures"`
	SkippedArrivals   int    `json:"skipped_arrivals"`
	OriginalMax       int    `json:"original_max_traffic"`
	CacheHits         uint64 `json:"cache_hits"`
	CacheMisses       uint64 `json:"cache_misses"`
}

func (s *Service) health() healthResponse {
	snap := s.load()
	buckets := snap.aggregator.Buckets()
	hits, misses := s.CacheStats()
	return healthResponse{
		Status:            "ok",
		DatasetID:         snap.dataset.ID.String(),
		DatasetName:       snap.dataset.Name,
		LoadedAt:          utils.Iso8601(snap.dataset.LoadedAt),
		Stations:          snap.aggregator.StationCount(),
		Trips:             buckets.TripCount(),
		SkippedDepartures: buckets.SkippedDepartures,
		SkippedArrivals:   buckets.SkippedArrivals,
		OriginalMax:       snap.aggregator.OriginalMax(),
		CacheHits:         hits,
		CacheMisses:       misses,
	}
}

func (srv *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(srv.svc.health())
}
