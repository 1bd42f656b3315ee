package bikeflow

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/bikeflow/config"
	"github.com/theoremus-urban-solutions/bikeflow/formatter"
)

func newTestServer(t *testing.T) (*Service, *httptest.Server) {
	t.Helper()
	svc := NewService(loadTestDataset(t), 16, nil)
	srv := NewServer(svc, config.ServerConfig{Port: config.DefaultPort}, nil)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return svc, ts
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestServer_Health(t *testing.T) {
	svc, ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/api/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var h healthResponse
	require.NoError(t, json.Unmarshal(body, &h))
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, svc.Dataset().ID.String(), h.DatasetID)
	assert.Equal(t, "test", h.DatasetName)
	assert.Equal(t, 3, h.Stations)
	assert.Equal(t, 5, h.Trips)
	assert.Equal(t, 1, h.SkippedDepartures)
	assert.Equal(t, 0, h.SkippedArrivals)
	assert.Equal(t, 3, h.OriginalMax)
}

func TestServer_TrafficJSON(t *testing.T) {
	_, ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/api/traffic.json?time=08:30")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	tr := decodeTraffic(t, body)
	assert.True(t, tr.Filter.Active)
	assert.Equal(t, 510, *tr.Filter.Minute)
	assert.Equal(t, 2, entriesByID(tr)["A1"].Departures)
}

func TestServer_TrafficMinuteParam(t *testing.T) {
	_, ts := newTestServer(t)
	_, body := get(t, ts.URL+"/api/traffic.json?Minute=510")
	tr := decodeTraffic(t, body)
	require.NotNil(t, tr.Filter.Minute)
	assert.Equal(t, 510, *tr.Filter.Minute)
}

func TestServer_TrafficNoFilter(t *testing.T) {
	_, ts := newTestServer(t)
	for _, q := range []string{"", "?time=", "?time=all", "?time=-1"} {
		resp, body := get(t, ts.URL+"/api/traffic.json"+q)
		require.Equal(t, http.StatusOK, resp.StatusCode, q)
		tr := decodeTraffic(t, body)
		assert.False(t, tr.Filter.Active, q)
		assert.Equal(t, "any time", tr.Filter.Label, q)
		assert.Equal(t, 3, tr.Summary.MaxTraffic, q)
	}
}

func TestServer_TrafficProto(t *testing.T) {
	_, ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/api/traffic.pb?time=0")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/x-protobuf", resp.Header.Get("Content-Type"))

	st, err := formatter.DecodeProto(body)
	require.NoError(t, err)
	m := st.AsMap()
	filter := m["filter"].(map[string]any)
	assert.Equal(t, "12:00 AM", filter["label"])
	assert.Equal(t, 1380.0, filter["window_start"])
	assert.Equal(t, 60.0, filter["window_end"])
}

func TestServer_BadFilter(t *testing.T) {
	_, ts := newTestServer(t)
	for _, q := range []string{"time=1440", "time=25:00", "time=noon"} {
		resp, body := get(t, ts.URL+"/api/traffic.json?"+q)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)

		var e formatter.ErrorResponse
		require.NoError(t, json.Unmarshal(body, &e), q)
		assert.Contains(t, e.Error.Description, "Invalid time filter", q)
	}
}

func TestServer_Station(t *testing.T) {
	_, ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/api/stations/B2/traffic.json?time=23:30")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sr formatter.StationResponse
	require.NoError(t, json.Unmarshal(body, &sr))
	assert.Equal(t, "B2", sr.Station.ShortName)
	assert.Equal(t, 1, sr.Station.Departures)
	assert.Equal(t, 0, sr.Station.Arrivals)

	resp, _ = get(t, ts.URL+"/api/stations/B2/traffic.json?time=nope")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_UnknownStation(t *testing.T) {
	_, ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/api/stations/ZZZ/traffic.json")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var e formatter.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Contains(t, e.Error.Description, "ZZZ")
}

func TestServer_UnknownRoutes(t *testing.T) {
	_, ts := newTestServer(t)
	resp, _ := get(t, ts.URL+"/api/traffic.xml")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	for _, path := range []string{"/api/traffic.json", "/api/traffic.pb", "/api/stations/A1/traffic.json", "/api/health"} {
		resp, err := http.Post(ts.URL+path, "application/json", nil)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, path)
	}
}
