package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ahmedaisar/aco-audit-portal/internal/blob"
	"github.com/ahmedaisar/aco-audit-portal/internal/handler"
	mw "github.com/ahmedaisar/aco-audit-portal/internal/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Form       *handler.FormHandler
	Submission *handler.SubmissionHandler
	Search     *handler.SearchHandler
	Admin      *handler.AdminHandler
	Dashboard  *handler.DashboardHandler
	Document   *handler.DocumentHandler
	// Files serves the local blob backend; nil for cloud backends.
	Files http.Handler
}

func New(h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(chimw.RealIP)
	r.Use(mw.Logger)
	r.Use(mw.CORS)

	r.Route("/api/v1", func(r chi.Router) {
		// Forms
		r.Get("/forms", h.Form.List)
		r.Get("/forms/{kind}", h.Form.Get)

		// Submissions
		r.Get("/submissions", h.Search.Search)
		r.Post("/submissions", h.Submission.Create)
		r.Delete("/submissions", h.Admin.Clear)
		r.Get("/submissions/export", h.Admin.Export)
		r.Get("/submissions/{id}", h.Submission.Get)
		r.Post("/audits/{kind}", h.Submission.CreateAudit)

		// Attachments
		r.Post("/attachments/check", h.Document.Check)

		// Dashboard
		r.Get("/dashboard", h.Dashboard.Dashboard)
		r.Get("/analytics", h.Dashboard.Views)
		r.Post("/analytics", h.Dashboard.Track)
	})

	if h.Files != nil {
		r.Handle(blob.RoutePrefix+"/*", http.StripPrefix(blob.RoutePrefix, h.Files))
	}
	return r
}
