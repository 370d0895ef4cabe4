package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ahmedaisar/aco-audit-portal/internal/service"
	"github.com/ahmedaisar/aco-audit-portal/internal/validate"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Warning: encode response: %v", err)
	}
}

func readJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps a service error to a response. Storage failures
// are logged and reported with the generic message fallback.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	if ve, ok := validate.AsError(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":      "validation failed",
			"violations": ve.Violations,
		})
		return
	}
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrUnknownView):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("Warning: %s: %v", fallback, err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
