package bikeflow

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
)

func (srv *Server) handleTraffic(w http.ResponseWriter, r *http.Request) {
	format := mux.Vars(r)["format"]
	f, err := parseTrafficQuery(queryParams(r))
	if err != nil {
		srv.writeError(w, http.StatusBadRequest, err)
		return
	}
	buf, err := srv.svc.GetTrafficResponse(f, format)
	if err != nil {
		srv.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", contentType(format))
	_, _ = w.Write(buf)
}

func (srv *Server) handleStationTraffic(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	format := vars["format"]
	f, err := parseTrafficQuery(queryParams(r))
	if err != nil {
		srv.writeError(w, http.StatusBadRequest, err)
		return
	}
	buf, err := srv.svc.GetStationResponse(vars["shortName"], f, format)
	if errors.Is(err, ErrStationNotFound) {
		srv.writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		srv.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", contentType(format))
	_, _ = w.Write(buf)
}

func (srv *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		srv.logger.Errorw("request failed", "error", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buildErrorPayload(err.Error()))
}
