package handler

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ahmedaisar/aco-audit-portal/internal/models"
	"github.com/ahmedaisar/aco-audit-portal/internal/service"
)

type SubmissionHandler struct {
	subSvc    *service.SubmissionService
	maxUpload int64
}

func NewSubmissionHandler(subSvc *service.SubmissionService, maxUpload int64) *SubmissionHandler {
	return &SubmissionHandler{subSvc: subSvc, maxUpload: maxUpload}
}

// Create accepts a change request either as JSON with inline base64
// attachments or as multipart with a JSON "data" field and "files" parts.
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	var in models.ChangeRequestInput
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "multipart/form-data" {
		if err := h.readMultipart(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	} else if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sub, err := h.subSvc.SubmitChangeRequest(r.Context(), in)
	if err != nil {
		writeServiceError(w, err, "Failed to save request")
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (h *SubmissionHandler) readMultipart(r *http.Request, in *models.ChangeRequestInput) error {
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		return errors.New("invalid multipart body")
	}
	if data := r.FormValue("data"); data != "" {
		if err := json.Unmarshal([]byte(data), in); err != nil {
			return errors.New("invalid data JSON")
		}
	}
	for _, fh := range r.MultipartForm.File["files"] {
		f, err := fh.Open()
		if err != nil {
			return errors.New("unreadable file " + fh.Filename)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return errors.New("unreadable file " + fh.Filename)
		}
		in.Files = append(in.Files, models.FileAttachment{
			Name: fh.Filename,
			Size: int64(len(data)),
			Type: fh.Header.Get("Content-Type"),
		}.Inline(base64.StdEncoding.EncodeToString(data)))
	}
	return nil
}

func (h *SubmissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sub, err := h.subSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "Failed to fetch request")
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// CreateAudit stores a COB or AHR checklist submission.
func (h *SubmissionHandler) CreateAudit(w http.ResponseWriter, r *http.Request) {
	kind := models.Kind(chi.URLParam(r, "kind"))
	var in models.AuditInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sub, err := h.subSvc.SubmitAudit(r.Context(), kind, in)
	if err != nil {
		writeServiceError(w, err, "Failed to save audit")
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}
