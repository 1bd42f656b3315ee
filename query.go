package bikeflow

import (
	"net/http"
	"strings"

	"github.com/theoremus-urban-solutions/bikeflow/formatter"
	"github.com/theoremus-urban-solutions/bikeflow/traffic"
)

// QueryError is a rejected request parameter; handlers answer it with 400
type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

func queryParams(r *http.Request) map[string]string {
	params := map[string]string{}
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			params[strings.ToLower(k)] = strings.TrimSpace(v[0])
		}
	}
	return params
}

// parseTrafficQuery reads the time-of-day filter from "time", falling back
// to "minute"
func parseTrafficQuery(params map[string]string) (traffic.TimeFilter, error) {
	raw, ok := params["time"]
	if !ok {
		raw = params["minute"]
	}
	f, err := traffic.ParseTimeFilter(raw)
	if err != nil {
		return traffic.NoFilter, &QueryError{Msg: "Invalid time filter: " + err.Error()}
	}
	return f, nil
}

func contentType(format string) string {
	if format == "pb" {
		return "application/x-protobuf"
	}
	return "application/json"
}

func buildErrorPayload(msg string) []byte {
	b, err := formatter.NewResponseBuilder().BuildJSON(formatter.BuildErrorResponse(msg))
	if err != nil {
		return []byte(`{"error":{"description":"internal error"}}`)
	}
	return b
}
