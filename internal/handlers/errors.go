package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dpearce/inkwell/internal/apperr"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "internal server error"

// JSONError sends a JSON error response with a single "error" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// JSONValidationError sends a JSON error response with "error" and optional "fields" for field-level details.
// status is typically http.StatusBadRequest (400).
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	out := map[string]interface{}{"error": message}
	if len(fields) > 0 {
		out["fields"] = fields
	}
	json.NewEncoder(w).Encode(out)
}

// WriteError maps a service error to its HTTP status. Each sentinel from
// apperr has exactly one status; anything else is a 500 that gets logged
// but not echoed to the client.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		JSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, apperr.ErrConflict):
		JSONError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, apperr.ErrInvalidCredentials):
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, apperr.ErrUnauthenticated):
		JSONError(w, "unauthenticated", http.StatusUnauthorized)
	case errors.Is(err, apperr.ErrForbidden):
		JSONError(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, apperr.ErrNotFound):
		JSONError(w, "not found", http.StatusNotFound)
	default:
		slog.Error("internal error", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
	}
}
