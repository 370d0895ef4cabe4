package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ahmedaisar/aco-audit-portal/internal/models"
	"github.com/ahmedaisar/aco-audit-portal/internal/service"
)

type FormHandler struct {
	svc *service.FormService
}

func NewFormHandler(svc *service.FormService) *FormHandler {
	return &FormHandler{svc: svc}
}

func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"forms": h.svc.List()})
}

func (h *FormHandler) Get(w http.ResponseWriter, r *http.Request) {
	form, err := h.svc.Get(models.Kind(chi.URLParam(r, "kind")))
	if err != nil {
		writeServiceError(w, err, "Failed to fetch form")
		return
	}
	writeJSON(w, http.StatusOK, form)
}
