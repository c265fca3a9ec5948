package rest

import (
	"encoding/json"
	"net/http"

	"github.com/olifog/musejump/backend/internal/core/domain"
)

// segmentRequest carries the hovered segment back from an already rendered
// timeline, so deriving a jump needs no second analysis fetch.
type segmentRequest struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Label string  `json:"label"`
}

// SkipSegment handles POST /tracks/{trackId}/segments/skip
func (h *Handler) SkipSegment(w http.ResponseWriter, r *http.Request) {
	h.segmentJump(w, r, false)
}

// RepeatSegment handles POST /tracks/{trackId}/segments/repeat
func (h *Handler) RepeatSegment(w http.ResponseWriter, r *http.Request) {
	h.segmentJump(w, r, true)
}

func (h *Handler) segmentJump(w http.ResponseWriter, r *http.Request, repeat bool) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	trackID := r.PathValue("trackId")

	var req segmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Label == "" {
		writeError(w, http.StatusBadRequest, "label is required")
		return
	}
	if req.End <= req.Start {
		writeError(w, http.StatusBadRequest, "segment end must be after start")
		return
	}

	seg := domain.RawSegment{Start: req.Start, End: req.End, Label: req.Label}

	var created domain.Jump
	var err error
	if repeat {
		created, err = h.svc.RepeatSegment(r.Context(), owner, trackID, seg)
	} else {
		created, err = h.svc.SkipSegment(r.Context(), owner, trackID, seg)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toJumpResponse(created))
}
