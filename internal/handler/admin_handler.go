package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ahmedaisar/aco-audit-portal/internal/export"
	"github.com/ahmedaisar/aco-audit-portal/internal/service"
)

type AdminHandler struct {
	subSvc *service.SubmissionService
	enc    *export.Encoder
	now    func() time.Time
}

func NewAdminHandler(subSvc *service.SubmissionService, enc *export.Encoder) *AdminHandler {
	return &AdminHandler{subSvc: subSvc, enc: enc, now: time.Now}
}

// Clear deletes every submission.
func (h *AdminHandler) Clear(w http.ResponseWriter, r *http.Request) {
	n, err := h.subSvc.Clear(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to clear requests")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": n})
}

// Export downloads the collection as CSV, or 204 when there is nothing to export.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.subSvc.Export(r.Context(), h.enc)
	if err != nil {
		writeServiceError(w, err, "Failed to export requests")
		return
	}
	if len(data) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "text/csv;charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+h.enc.Filename(h.now())+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
