package handler

import (
	"net/http"

	"github.com/ahmedaisar/aco-audit-portal/internal/models"
	"github.com/ahmedaisar/aco-audit-portal/internal/validate"
)

type DocumentHandler struct{}

func NewDocumentHandler() *DocumentHandler {
	return &DocumentHandler{}
}

// Check stages a batch of attachments against the ones already staged on the
// client. The whole batch is accepted or none of it is.
func (h *DocumentHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Staged []models.FileAttachment `json:"staged"`
		Batch  []models.FileAttachment `json:"batch"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	staged, err := validate.Stage(req.Staged, req.Batch)
	if err != nil {
		writeServiceError(w, err, "Failed to check attachments")
		return
	}
	if staged == nil {
		staged = []models.FileAttachment{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": staged})
}
