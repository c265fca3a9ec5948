package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/olifog/musejump/backend/internal/core/domain"
)

// jumpRequest defines what the client sends us. Trigger and target arrive as
// human-editable time codes ("2:05.4"), not raw milliseconds.
type jumpRequest struct {
	Trigger     string `json:"trigger"`
	Target      string `json:"target"`
	Description string `json:"description,omitempty"`
}

// updateJumpRequest additionally names the track so the new offsets can be
// validated against its duration.
type updateJumpRequest struct {
	SongID      string `json:"songId"`
	Trigger     string `json:"trigger"`
	Target      string `json:"target"`
	Description string `json:"description,omitempty"`
}

type jumpResponse struct {
	ID          string    `json:"id"`
	TrackID     string    `json:"songId"`
	TriggerMs   int       `json:"trigger"`
	TargetMs    int       `json:"target"`
	TriggerCode string    `json:"triggerCode"`
	TargetCode  string    `json:"targetCode"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toJumpResponse(j domain.Jump) jumpResponse {
	return jumpResponse{
		ID:          j.ID,
		TrackID:     j.TrackID,
		TriggerMs:   j.TriggerMs,
		TargetMs:    j.TargetMs,
		TriggerCode: domain.FormatTimeCode(j.TriggerMs),
		TargetCode:  domain.FormatTimeCode(j.TargetMs),
		Description: j.Description,
		CreatedAt:   j.CreatedAt,
	}
}

// ownerID extracts the authenticated user identity injected by the upstream
// auth layer. The core never sees requests without one.
func ownerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner := r.Header.Get("X-User-Id")
	if owner == "" {
		writeErrorWithCode(w, http.StatusUnauthorized, "missing user identity", errCodeUnauthorized)
		return "", false
	}
	return owner, true
}

// parseTimeCodeField converts one time-code input, writing a 422 naming the
// field on failure.
func parseTimeCodeField(w http.ResponseWriter, field, value string) (int, bool) {
	ms, err := domain.ParseTimeCode(value)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: err.Error(),
			Code:  errCodeInvalidTimeCode,
			Field: field,
		})
		return 0, false
	}
	return ms, true
}

// ListJumps handles GET /tracks/{trackId}/jumps
func (h *Handler) ListJumps(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	trackID := r.PathValue("trackId")

	jumps, err := h.svc.ListJumps(r.Context(), owner, trackID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]jumpResponse, 0, len(jumps))
	for _, j := range jumps {
		out = append(out, toJumpResponse(j))
	}
	writeJSON(w, http.StatusOK, out)
}

// AddJump handles POST /tracks/{trackId}/jumps
func (h *Handler) AddJump(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	trackID := r.PathValue("trackId")

	var req jumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	trigger, ok := parseTimeCodeField(w, "trigger", req.Trigger)
	if !ok {
		return
	}
	target, ok := parseTimeCodeField(w, "target", req.Target)
	if !ok {
		return
	}

	created, err := h.svc.AddJump(r.Context(), owner, trackID, trigger, target, req.Description)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toJumpResponse(created))
}

// UpdateJump handles PATCH /jumps/{id}
func (h *Handler) UpdateJump(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	var req updateJumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SongID == "" {
		writeError(w, http.StatusBadRequest, "songId is required")
		return
	}

	trigger, ok := parseTimeCodeField(w, "trigger", req.Trigger)
	if !ok {
		return
	}
	target, ok := parseTimeCodeField(w, "target", req.Target)
	if !ok {
		return
	}

	if err := h.svc.UpdateJump(r.Context(), owner, req.SongID, id, trigger, target, req.Description); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteJump handles DELETE /jumps/{id}
func (h *Handler) DeleteJump(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	if err := h.svc.DeleteJump(r.Context(), owner, id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
