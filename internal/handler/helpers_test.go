package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ahmedaisar/aco-audit-portal/internal/service"
	"github.com/ahmedaisar/aco-audit-portal/internal/validate"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", &validate.Error{Violations: []validate.Violation{{Reason: validate.MissingField, Field: "url"}}}, http.StatusUnprocessableEntity, `"reason":"MissingField"`},
		{"not found", fmt.Errorf("lookup: %w", service.ErrNotFound), http.StatusNotFound, `"not found"`},
		{"unknown view", fmt.Errorf("%w: %q", service.ErrUnknownView, "x"), http.StatusBadRequest, "unknown view"},
		{"storage", &service.StorageError{Op: "save request", Err: errors.New("database is locked")}, http.StatusInternalServerError, `"Failed to save request"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, tt.err, "Failed to save request")
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if !strings.Contains(rec.Body.String(), tt.body) {
				t.Fatalf("body %q does not contain %q", rec.Body.String(), tt.body)
			}
			if strings.Contains(rec.Body.String(), "locked") {
				t.Fatal("storage detail leaked to client")
			}
		})
	}
}
