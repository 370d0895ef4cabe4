package router

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ahmedaisar/aco-audit-portal/internal/blob"
	"github.com/ahmedaisar/aco-audit-portal/internal/db"
	"github.com/ahmedaisar/aco-audit-portal/internal/export"
	"github.com/ahmedaisar/aco-audit-portal/internal/handler"
	"github.com/ahmedaisar/aco-audit-portal/internal/models"
	"github.com/ahmedaisar/aco-audit-portal/internal/repository"
	"github.com/ahmedaisar/aco-audit-portal/internal/service"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	conn, err := db.Open(filepath.Join(dir, "portal.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	files := filepath.Join(dir, "files")
	local, err := blob.NewLocal(files, "")
	if err != nil {
		t.Fatal(err)
	}

	subs := service.NewSubmissionService(repository.NewSubmissionRepo(conn), service.NewDocumentService(local))
	analytics := service.NewAnalyticsService(repository.NewAnalyticsRepo(conn))
	srv := httptest.NewServer(New(Handlers{
		Form:       handler.NewFormHandler(service.NewFormService()),
		Submission: handler.NewSubmissionHandler(subs, 8<<20),
		Search:     handler.NewSearchHandler(service.NewSearchService(subs)),
		Admin:      handler.NewAdminHandler(subs, export.NewEncoder(time.UTC)),
		Dashboard:  handler.NewDashboardHandler(service.NewDashboardService(subs, analytics), analytics),
		Document:   handler.NewDocumentHandler(),
		Files:      http.FileServer(http.Dir(files)),
	}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, contentType string, body []byte) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func postJSON(t *testing.T, url string, v any) *http.Response {
	t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return do(t, http.MethodPost, url, "application/json", body)
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func changeRequest() map[string]any {
	return map[string]any{
		"requestorName":     "Aisha",
		"department":        "Spa",
		"emailId":           "aisha@example.com",
		"todayDate":         "2025-03-07",
		"priority":          "High",
		"url":               "https://example.com/spa",
		"pageName":          "Spa menu",
		"changeDescription": `Replace "old" prices`,
		"desiredGoLiveDate": "2025-03-20",
	}
}

func TestSubmitJSONAndFetch(t *testing.T) {
	srv := newServer(t)
	in := changeRequest()
	in["files"] = []map[string]any{{
		"name": "notes.txt", "size": 5, "type": "text/plain",
		"base64": base64.StdEncoding.EncodeToString([]byte("hello")),
	}}

	resp := postJSON(t, srv.URL+"/api/v1/submissions", in)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	created := decode[models.Submission](t, resp)
	if created.ID == "" || created.Kind != models.KindStandard || len(created.Files) != 1 {
		t.Fatalf("unexpected record %+v", created)
	}
	if !strings.HasPrefix(created.Files[0].URL, "/files/attachments/") || created.Files[0].Content != nil {
		t.Fatalf("attachment not stored: %+v", created.Files[0])
	}

	file := do(t, http.MethodGet, srv.URL+created.Files[0].URL, "", nil)
	var buf bytes.Buffer
	buf.ReadFrom(file.Body)
	if file.StatusCode != http.StatusOK || buf.String() != "hello" {
		t.Fatalf("download: %d %q", file.StatusCode, buf.String())
	}

	got := decode[models.Submission](t, do(t, http.MethodGet, srv.URL+"/api/v1/submissions/"+created.ID, "", nil))
	if got.ID != created.ID || got.ChangeDescription != `Replace "old" prices` {
		t.Fatalf("unexpected fetch %+v", got)
	}
	if resp := do(t, http.MethodGet, srv.URL+"/api/v1/submissions/nope", "", nil); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing id status = %d", resp.StatusCode)
	}
}

func TestSubmitMultipart(t *testing.T) {
	srv := newServer(t)
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	data, _ := json.Marshal(changeRequest())
	mw.WriteField("data", string(data))
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="files"; filename="scan.pdf"`)
	h.Set("Content-Type", "application/pdf")
	part, _ := mw.CreatePart(h)
	part.Write([]byte("%PDF-1.4"))
	mw.Close()

	resp := do(t, http.MethodPost, srv.URL+"/api/v1/submissions", mw.FormDataContentType(), body.Bytes())
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	sub := decode[models.Submission](t, resp)
	if len(sub.Files) != 1 || sub.Files[0].Name != "scan.pdf" || sub.Files[0].Size != 8 || sub.Files[0].Type != "application/pdf" {
		t.Fatalf("unexpected files %+v", sub.Files)
	}
}

func TestSubmitMultipart_ZeroByteFile(t *testing.T) {
	srv := newServer(t)
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	data, _ := json.Marshal(changeRequest())
	mw.WriteField("data", string(data))
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="files"; filename="empty.txt"`)
	h.Set("Content-Type", "text/plain")
	mw.CreatePart(h)
	mw.Close()

	resp := do(t, http.MethodPost, srv.URL+"/api/v1/submissions", mw.FormDataContentType(), body.Bytes())
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	sub := decode[models.Submission](t, resp)
	if len(sub.Files) != 1 || sub.Files[0].Name != "empty.txt" || sub.Files[0].Size != 0 || sub.Files[0].URL == "" {
		t.Fatalf("unexpected files %+v", sub.Files)
	}
	file := do(t, http.MethodGet, srv.URL+sub.Files[0].URL, "", nil)
	if file.StatusCode != http.StatusOK || file.ContentLength > 0 {
		t.Fatalf("download: %d, length %d", file.StatusCode, file.ContentLength)
	}
}

func TestSubmitErrors(t *testing.T) {
	srv := newServer(t)

	bad := changeRequest()
	bad["emailId"] = "not-an-email"
	resp := postJSON(t, srv.URL+"/api/v1/submissions", bad)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decode[struct {
		Violations []struct {
			Reason string `json:"reason"`
			Field  string `json:"field"`
		} `json:"violations"`
	}](t, resp)
	if len(body.Violations) != 1 || body.Violations[0].Reason != "InvalidEmail" {
		t.Fatalf("unexpected violations %+v", body.Violations)
	}

	if resp := do(t, http.MethodPost, srv.URL+"/api/v1/submissions", "application/json", []byte("{")); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad json status = %d", resp.StatusCode)
	}
	if resp := postJSON(t, srv.URL+"/api/v1/audits/RAS", map[string]any{}); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("audit on RAS status = %d", resp.StatusCode)
	}
}

func TestAuditListExportClear(t *testing.T) {
	srv := newServer(t)

	if resp := do(t, http.MethodGet, srv.URL+"/api/v1/submissions/export", "", nil); resp.StatusCode != http.StatusNoContent {
		t.Fatalf("empty export status = %d", resp.StatusCode)
	}

	checklist := make(map[string]string)
	for _, cp := range models.COBChecklist.Checkpoints() {
		checklist[cp] = "Yes"
	}
	audit := map[string]any{
		"resort": "OBLU", "url": "https://oblu.example", "auditDate": "2025-03-07",
		"auditor": "Mariyam", "resortOpsContact": "Ops", "deadline": "2025-04-01",
		"checklist": checklist,
	}
	if resp := postJSON(t, srv.URL+"/api/v1/audits/COB", audit); resp.StatusCode != http.StatusCreated {
		t.Fatalf("audit status = %d", resp.StatusCode)
	}
	if resp := postJSON(t, srv.URL+"/api/v1/submissions", changeRequest()); resp.StatusCode != http.StatusCreated {
		t.Fatalf("request status = %d", resp.StatusCode)
	}

	list := decode[service.SearchResult](t, do(t, http.MethodGet, srv.URL+"/api/v1/submissions", "", nil))
	if list.Total != 2 || list.Docs[0].Kind != models.KindStandard {
		t.Fatalf("expected newest first, got %+v", list.Docs)
	}
	found := decode[service.SearchResult](t, do(t, http.MethodGet, srv.URL+"/api/v1/submissions?q=digital", "", nil))
	if found.Total != 1 || found.Docs[0].Kind != models.KindCOB {
		t.Fatalf("unexpected search result %+v", found)
	}

	resp := do(t, http.MethodGet, srv.URL+"/api/v1/submissions/export", "", nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(resp.Header.Get("Content-Disposition"), "atmosphere_requests_") {
		t.Fatalf("export: %d %v", resp.StatusCode, resp.Header)
	}
	var csv bytes.Buffer
	csv.ReadFrom(resp.Body)
	lines := strings.Split(csv.String(), "\n")
	if len(lines) != 3 || !strings.Contains(lines[1], `"Replace ""old"" prices"`) || !strings.HasSuffix(lines[2], `,"OBLU","Ops"`) {
		t.Fatalf("unexpected csv:\n%s", csv.String())
	}

	cleared := decode[map[string]int](t, do(t, http.MethodDelete, srv.URL+"/api/v1/submissions", "", nil))
	if cleared["deleted"] != 2 {
		t.Fatalf("cleared %v", cleared)
	}
}

func TestDashboardAndAnalytics(t *testing.T) {
	srv := newServer(t)

	empty := decode[service.Dashboard](t, do(t, http.MethodGet, srv.URL+"/api/v1/dashboard", "", nil))
	if !empty.Empty || empty.Message != "No analytics data available yet." {
		t.Fatalf("expected placeholder, got %+v", empty)
	}

	if resp := postJSON(t, srv.URL+"/api/v1/analytics", map[string]string{"view": "dashboard"}); resp.StatusCode != http.StatusNoContent {
		t.Fatalf("track status = %d", resp.StatusCode)
	}
	if resp := postJSON(t, srv.URL+"/api/v1/analytics", map[string]string{"pageName": "dashboard"}); resp.StatusCode != http.StatusNoContent {
		t.Fatalf("legacy track status = %d", resp.StatusCode)
	}
	if resp := postJSON(t, srv.URL+"/api/v1/analytics", map[string]string{"view": "admin"}); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown view status = %d", resp.StatusCode)
	}
	views := decode[map[string]int](t, do(t, http.MethodGet, srv.URL+"/api/v1/analytics", "", nil))
	if views["dashboard"] != 2 || views["form"] != 0 || len(views) != 3 {
		t.Fatalf("unexpected views %v", views)
	}

	postJSON(t, srv.URL+"/api/v1/submissions", changeRequest())
	d := decode[service.Dashboard](t, do(t, http.MethodGet, srv.URL+"/api/v1/dashboard", "", nil))
	if d.Empty || d.Summary == nil || d.Summary.Total != 1 || d.Summary.ByPriority[models.PriorityHigh] != 1 {
		t.Fatalf("unexpected dashboard %+v", d)
	}
}

func TestFormsAndAttachmentCheck(t *testing.T) {
	srv := newServer(t)

	forms := decode[struct {
		Forms []models.Form `json:"forms"`
	}](t, do(t, http.MethodGet, srv.URL+"/api/v1/forms", "", nil))
	if len(forms.Forms) != 3 {
		t.Fatalf("got %d forms", len(forms.Forms))
	}
	cob := decode[models.Form](t, do(t, http.MethodGet, srv.URL+"/api/v1/forms/COB", "", nil))
	if cob.Checklist == nil || len(cob.Checklist.Checkpoints()) != 24 || len(cob.Answers) != 3 || cob.Answers[2] != models.AnswerMinorIssue {
		t.Fatalf("unexpected COB form %+v", cob)
	}
	if resp := do(t, http.MethodGet, srv.URL+"/api/v1/forms/XYZ", "", nil); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown form status = %d", resp.StatusCode)
	}

	staged := make([]map[string]string, 5)
	for i := range staged {
		staged[i] = map[string]string{"name": "a.png", "type": "image/png"}
	}
	resp := postJSON(t, srv.URL+"/api/v1/attachments/check", map[string]any{
		"staged": staged,
		"batch":  []map[string]string{{"name": "b.pdf"}},
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("sixth file status = %d", resp.StatusCode)
	}
	ok := decode[struct {
		Files []models.FileAttachment `json:"files"`
	}](t, postJSON(t, srv.URL+"/api/v1/attachments/check", map[string]any{
		"staged": staged[:2],
		"batch":  []map[string]string{{"name": "b.pdf"}},
	}))
	if len(ok.Files) != 3 || ok.Files[2].Name != "b.pdf" {
		t.Fatalf("unexpected staged set %+v", ok.Files)
	}
}
