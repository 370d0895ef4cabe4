package handler

import (
	"net/http"

	"github.com/ahmedaisar/aco-audit-portal/internal/models"
	"github.com/ahmedaisar/aco-audit-portal/internal/service"
)

type DashboardHandler struct {
	dashSvc      *service.DashboardService
	analyticsSvc *service.AnalyticsService
}

func NewDashboardHandler(dashSvc *service.DashboardService, analyticsSvc *service.AnalyticsService) *DashboardHandler {
	return &DashboardHandler{dashSvc: dashSvc, analyticsSvc: analyticsSvc}
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.dashSvc.Summary(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to fetch requests")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *DashboardHandler) Views(w http.ResponseWriter, r *http.Request) {
	counts, err := h.analyticsSvc.Counts(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to fetch analytics")
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// Track counts a page view. The body is {"view": "form"|"list"|"dashboard"};
// older clients send the same value as "pageName".
func (h *DashboardHandler) Track(w http.ResponseWriter, r *http.Request) {
	var req struct {
		View     models.View `json:"view"`
		PageName models.View `json:"pageName"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.View == "" {
		req.View = req.PageName
	}
	if err := h.analyticsSvc.Track(r.Context(), req.View); err != nil {
		writeServiceError(w, err, "Failed to track view")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
