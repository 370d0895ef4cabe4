package handler

import (
	"net/http"

	"github.com/ahmedaisar/aco-audit-portal/internal/models"
	"github.com/ahmedaisar/aco-audit-portal/internal/service"
)

type SearchHandler struct {
	svc *service.SearchService
}

func NewSearchHandler(svc *service.SearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// Search lists submissions newest first, narrowed by ?q= and ?kind=.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	req := service.SearchRequest{
		TextQuery: r.URL.Query().Get("q"),
		Kind:      models.Kind(r.URL.Query().Get("kind")),
	}
	if req.Kind != "" && !req.Kind.Valid() {
		writeError(w, http.StatusBadRequest, "unknown kind")
		return
	}
	result, err := h.svc.Search(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to fetch requests")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
