package server

import (
	"net/http"
	"strconv"
)

const (
	defaultHitsLimit = 10
	maxHitsLimit     = 100
)

// HitsRequest is the query accepted by GET /api/hits.
type HitsRequest struct {
	Limit int `query:"limit" minimum:"1" maximum:"100" default:"10" description:"Number of top paths to return."`
}

func handleHits(store HitStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultHitsLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > maxHitsLimit {
				writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
				return
			}
			limit = n
		}

		sum, err := store.Summary(r.Context(), limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, sum)
	}
}
