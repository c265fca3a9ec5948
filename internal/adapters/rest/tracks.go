package rest

import (
	"net/http"
	"strconv"
)

// GetTrackView handles GET /tracks/{trackId}
//
// The response bundles track metadata, the owner's jumps and (when the
// analyser cooperated) the merged segment timeline, fetched in parallel by
// the service.
func (h *Handler) GetTrackView(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	trackID := r.PathValue("trackId")

	view, err := h.svc.GetTrackView(r.Context(), owner, trackID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// SearchTracks handles GET /search?q=...
func (h *Handler) SearchTracks(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	tracks, err := h.svc.SearchTracks(r.Context(), owner, query, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tracks)
}
