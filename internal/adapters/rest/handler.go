package rest

import (
	"encoding/json"
	"net/http"

	"github.com/olifog/musejump/backend/internal/core/services"
)

// Handler manages the HTTP interface for our application.
type Handler struct {
	svc    *services.TrackService // Dependency on the Core Service
	router *http.ServeMux         // Standard library router
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(svc *services.TrackService) *Handler {
	h := &Handler{
		svc:    svc,
		router: http.NewServeMux(),
	}

	// Register Routes
	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
// It acts as a proxy, passing the request to our internal router.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	// Health Check
	h.router.HandleFunc("GET /health", h.HealthCheck)
	// Catalog
	h.router.HandleFunc("GET /search", h.SearchTracks)
	h.router.HandleFunc("GET /tracks/{trackId}", h.GetTrackView)
	// Jump Management
	h.router.HandleFunc("GET /tracks/{trackId}/jumps", h.ListJumps)
	h.router.HandleFunc("POST /tracks/{trackId}/jumps", h.AddJump)
	h.router.HandleFunc("PATCH /jumps/{id}", h.UpdateJump)
	h.router.HandleFunc("DELETE /jumps/{id}", h.DeleteJump)
	// Segment-derived jumps
	h.router.HandleFunc("POST /tracks/{trackId}/segments/skip", h.SkipSegment)
	h.router.HandleFunc("POST /tracks/{trackId}/segments/repeat", h.RepeatSegment)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok", "message": "musejump is live 🎶"})
}
