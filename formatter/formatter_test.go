package formatter

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/bikeflow/bikeshare"
	"github.com/theoremus-urban-solutions/bikeflow/traffic"
)

func sampleResult() traffic.Result {
	stations := []traffic.StationTraffic{
		{Station: bikeshare.Station{ShortName: "A", Name: "Alpha", Lat: 42.1, Lon: -71.1}, Departures: 4, TotalTraffic: 4, Flow: traffic.DepartureHeavy},
		{Station: bikeshare.Station{ShortName: "B", Name: "Beta"}, Arrivals: 1, TotalTraffic: 1, Flow: traffic.ArrivalHeavy},
		{Station: bikeshare.Station{ShortName: "C", Name: "Gamma"}, Flow: traffic.Balanced},
	}
	return traffic.Result{
		Filter:   traffic.MustAtMinute(30),
		Stations: stations,
		Scale:    traffic.NewRadiusScale(4, 8, true),
		Summary:  traffic.Summarize(stations),
	}
}

func TestBuildTrafficResponse(t *testing.T) {
	id := uuid.New()
	resp := BuildTrafficResponse(sampleResult(), id)

	assert.Equal(t, id.String(), resp.DatasetID)
	assert.NotEmpty(t, resp.ResponseTimestamp)
	assert.True(t, resp.Filter.Active)
	assert.Equal(t, "12:30 AM", resp.Filter.Label)
	require.NotNil(t, resp.Filter.Minute)
	assert.Equal(t, 30, *resp.Filter.Minute)
	assert.Equal(t, 1410, *resp.Filter.WindowStart)
	assert.Equal(t, 90, *resp.Filter.WindowEnd)

	require.Len(t, resp.Stations, 3)
	assert.Equal(t, "A", resp.Stations[0].ShortName)
	assert.Equal(t, 1.0, resp.Stations[0].Flow)
	assert.InDelta(t, resp.Scale.RangeMax, resp.Stations[0].Radius, 1e-9)
	assert.InDelta(t, resp.Scale.RangeMin, resp.Stations[2].Radius, 1e-9)
	assert.Equal(t, 0.5, resp.Stations[2].Flow)
}

func TestBuildFilterInfo_NoFilter(t *testing.T) {
	info := BuildFilterInfo(traffic.NoFilter)
	assert.False(t, info.Active)
	assert.Equal(t, "any time", info.Label)
	assert.Nil(t, info.Minute)

	b, err := NewResponseBuilder().BuildJSON(info)
	require.NoError(t, err)
	assert.JSONEq(t, `{"active":false,"label":"any time"}`, string(b))
}

func TestBuildJSON(t *testing.T) {
	resp := BuildTrafficResponse(sampleResult(), uuid.New())
	b, err := NewResponseBuilder().Build(resp, "json")
	require.NoError(t, err)

	var decoded TrafficResponse
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, resp.Stations, decoded.Stations)
	assert.Equal(t, 4, decoded.Summary.MaxTraffic)
}

func TestBuildProto(t *testing.T) {
	resp := BuildTrafficResponse(sampleResult(), uuid.New())
	b, err := NewResponseBuilder().Build(resp, "pb")
	require.NoError(t, err)

	st, err := DecodeProto(b)
	require.NoError(t, err)
	m := st.AsMap()
	assert.Equal(t, resp.DatasetID, m["dataset_id"])
	stations, ok := m["stations"].([]any)
	require.True(t, ok)
	require.Len(t, stations, 3)
	first := stations[0].(map[string]any)
	assert.Equal(t, "A", first["short_name"])
	assert.Equal(t, 4.0, first["total_traffic"])
}

func TestBuild_UnsupportedFormat(t *testing.T) {
	_, err := NewResponseBuilder().Build(BuildErrorResponse("x"), "xml")
	assert.Error(t, err)
}

func TestBuildErrorResponse(t *testing.T) {
	b, err := NewResponseBuilder().BuildJSON(BuildErrorResponse("bad time"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":{"description":"bad time"}}`, string(b))
}
