package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	if s.store == nil {
		respondError(w, reqID, http.StatusServiceUnavailable, ErrUnavailable, "no benchmark store attached")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := s.store.ListRuns(r.Context(), limit)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError, ErrInternal, err.Error())
		return
	}
	respondOK(w, reqID, runs)
}

func (s *Server) handleRunResults(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	if s.store == nil {
		respondError(w, reqID, http.StatusServiceUnavailable, ErrUnavailable, "no benchmark store attached")
		return
	}

	runID := chi.URLParam(r, "id")
	results, err := s.store.Results(r.Context(), runID)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError, ErrInternal, err.Error())
		return
	}
	if len(results) == 0 {
		respondError(w, reqID, http.StatusNotFound, ErrNotFound, "run '"+runID+"' not found")
		return
	}
	respondOK(w, reqID, results)
}
