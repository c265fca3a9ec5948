package rest

import (
	"encoding/json"
	"errors"
	"log"
	"mime"
	"net/http"

	"github.com/olifog/musejump/backend/internal/core/domain"
	"github.com/olifog/musejump/backend/internal/core/ports"
)

const (
	errCodeInvalidTimeCode = "INVALID_TIME_CODE"
	errCodeOutOfRange      = "OUT_OF_RANGE"
	errCodeNotFound        = "NOT_FOUND"
	errCodeUnauthorized    = "UNAUTHORIZED"
	errCodeUpstream        = "UPSTREAM_FAILURE"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeErrorWithCode(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

func isJSONContentType(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	return err == nil && mediaType == "application/json"
}

// writeServiceError maps core errors onto HTTP statuses. Validation errors
// name the failing field so the UI can highlight the right input.
func writeServiceError(w http.ResponseWriter, err error) {
	var formatErr *domain.FormatError
	if errors.As(err, &formatErr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: formatErr.Error(),
			Code:  errCodeInvalidTimeCode,
		})
		return
	}

	var rangeErr *domain.RangeError
	if errors.As(err, &rangeErr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: rangeErr.Error(),
			Code:  errCodeOutOfRange,
			Field: rangeErr.Field,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeErrorWithCode(w, http.StatusNotFound, "jump not found", errCodeNotFound)
	case errors.Is(err, ports.ErrAuth):
		writeErrorWithCode(w, http.StatusUnauthorized, err.Error(), errCodeUnauthorized)
	case errors.Is(err, ports.ErrUpstream):
		writeErrorWithCode(w, http.StatusBadGateway, err.Error(), errCodeUpstream)
	default:
		// Wrap chains can carry driver and SQL detail; clients get a
		// generic message, the log gets the cause.
		log.Printf("WARN rest: unhandled service error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
