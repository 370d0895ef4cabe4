// Package validate checks form input, attachments and finished records
// before anything is written to storage.
package validate

import (
	"fmt"
	"mime"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/ahmedaisar/aco-audit-portal/internal/models"
)

var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// DateLayout is the format of every date field the forms post.
const DateLayout = "2006-01-02"

var acceptedTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
	"text/plain":      true,
}

var acceptedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
	".txt":  true,
}

// ChangeRequest validates the standard change request form.
func ChangeRequest(in models.ChangeRequestInput) error {
	var c collector
	required(&c, "requestorName", in.RequestorName)
	required(&c, "department", in.Department)
	required(&c, "emailId", in.EmailID)
	required(&c, "todayDate", in.TodayDate)
	required(&c, "priority", string(in.Priority))
	required(&c, "url", in.URL)
	required(&c, "pageName", in.PageName)
	required(&c, "changeDescription", in.ChangeDescription)
	required(&c, "desiredGoLiveDate", in.DesiredGoLiveDate)

	email(&c, "emailId", in.EmailID)
	date(&c, "todayDate", in.TodayDate)
	date(&c, "desiredGoLiveDate", in.DesiredGoLiveDate)
	if in.Priority != "" && !in.Priority.Valid() {
		c.add(InvalidPriority, "priority", fmt.Sprintf("priority must be High, Medium or Low, got %q", in.Priority))
	}

	files(&c, nil, in.Files)
	return c.err()
}

// Audit validates a COB or AHR checklist form and returns the parsed answers
// and the notes that belong to template checkpoints.
func Audit(kind models.Kind, in models.AuditInput) (map[string]models.Answer, map[string]string, error) {
	tmpl := models.ChecklistFor(kind)
	if tmpl == nil {
		return nil, nil, fmt.Errorf("validate: %q is not an audit kind", kind)
	}

	var c collector
	required(&c, "resort", in.Resort)
	required(&c, "url", in.URL)
	required(&c, "auditDate", in.AuditDate)
	required(&c, "auditor", in.Auditor)
	required(&c, "resortOpsContact", in.ResortOpsContact)
	required(&c, "deadline", in.Deadline)
	date(&c, "auditDate", in.AuditDate)
	date(&c, "deadline", in.Deadline)

	answers, notes := checklist(&c, tmpl, in.Checklist, in.Notes)
	if err := c.err(); err != nil {
		return nil, nil, err
	}
	return answers, notes, nil
}

// checklist checks that every checkpoint of tmpl has a valid answer.
// Entries for checkpoints outside the template are dropped.
func checklist(c *collector, tmpl *models.ChecklistTemplate, raw, rawNotes map[string]string) (map[string]models.Answer, map[string]string) {
	answers := make(map[string]models.Answer, len(raw))
	var missing []string
	for _, cp := range tmpl.Checkpoints() {
		a, ok := models.ParseAnswer(raw[cp])
		if !ok {
			missing = append(missing, cp)
			continue
		}
		answers[cp] = a
	}
	if len(missing) > 0 {
		c.add(IncompleteChecklist, strings.Join(missing, "; "),
			fmt.Sprintf("%d of %d checkpoints unanswered", len(missing), len(tmpl.Checkpoints())))
	}

	var notes map[string]string
	for cp, n := range rawNotes {
		n = strings.TrimSpace(n)
		if n == "" || !tmpl.Has(cp) {
			continue
		}
		if notes == nil {
			notes = make(map[string]string)
		}
		notes[cp] = n
	}
	return answers, notes
}

// FileType accepts an attachment when either its declared media type or its
// filename extension is one of the supported kinds.
func FileType(f models.FileAttachment) error {
	if typeAccepted(f.Type) || extAccepted(f.Name) {
		return nil
	}
	return &Error{Violations: []Violation{{
		Reason:  UnsupportedFileType,
		Field:   f.Name,
		Message: "only JPEG, PNG, PDF and plain text files are allowed",
	}}}
}

// Stage adds batch to the already staged attachments. The batch is taken
// whole or not at all; on error staged is returned unchanged.
func Stage(staged, batch []models.FileAttachment) ([]models.FileAttachment, error) {
	var c collector
	files(&c, staged, batch)
	if err := c.err(); err != nil {
		return staged, err
	}
	out := make([]models.FileAttachment, 0, len(staged)+len(batch))
	out = append(out, staged...)
	return append(out, batch...), nil
}

// Record re-checks the invariants of a fully built submission.
func Record(s *models.Submission) error {
	var c collector
	if s.ID == "" {
		c.add(InvalidRecord, "id", "id is required")
	}
	if s.Timestamp <= 0 {
		c.add(InvalidRecord, "timestamp", "timestamp is required")
	}
	if !s.Kind.Valid() {
		c.add(InvalidRecord, "tabType", fmt.Sprintf("unknown submission type %q", s.Kind))
	}
	if !s.Priority.Valid() {
		c.add(InvalidPriority, "priority", fmt.Sprintf("priority must be High, Medium or Low, got %q", s.Priority))
	}
	if len(s.Files) > models.MaxAttachments {
		c.add(TooManyFiles, "files", fmt.Sprintf("at most %d files allowed", models.MaxAttachments))
	}
	for _, f := range s.Files {
		if f.Name == "" {
			c.add(MissingField, "files.name", "attachment name is required")
		}
		if f.Size < 0 {
			c.add(InvalidRecord, f.Name, "attachment size is negative")
		}
	}

	switch {
	case s.Kind.IsAudit() && s.AuditDetails == nil:
		c.add(IncompleteChecklist, "checklistData", "audit submissions need a checklist")
	case s.Kind.IsAudit():
		tmpl := models.ChecklistFor(s.Kind)
		var missing []string
		for _, cp := range tmpl.Checkpoints() {
			if _, ok := s.ChecklistData[cp]; !ok {
				missing = append(missing, cp)
			}
		}
		if len(missing) > 0 {
			c.add(IncompleteChecklist, strings.Join(missing, "; "),
				fmt.Sprintf("%d of %d checkpoints unanswered", len(missing), len(tmpl.Checkpoints())))
		}
	case s.AuditDetails != nil:
		c.add(InvalidRecord, "checklistData", "change requests cannot carry audit fields")
	}
	return c.err()
}

func required(c *collector, field, value string) {
	if strings.TrimSpace(value) == "" {
		c.add(MissingField, field, field+" is required")
	}
}

func email(c *collector, field, value string) {
	value = strings.TrimSpace(value)
	if value != "" && !emailRx.MatchString(value) {
		c.add(InvalidEmail, field, "email address is not valid")
	}
}

func date(c *collector, field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		c.add(InvalidDate, field, field+" must be a YYYY-MM-DD date")
	}
}

func files(c *collector, staged, batch []models.FileAttachment) {
	if len(staged)+len(batch) > models.MaxAttachments {
		c.add(TooManyFiles, "files", fmt.Sprintf("Maximum %d files allowed.", models.MaxAttachments))
	}
	for _, f := range batch {
		if err := FileType(f); err != nil {
			ve, _ := AsError(err)
			c.violations = append(c.violations, ve.Violations...)
		}
	}
}

func typeAccepted(ct string) bool {
	ct = strings.TrimSpace(ct)
	if ct == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		mt = strings.ToLower(ct)
	}
	return acceptedTypes[mt]
}

func extAccepted(name string) bool {
	return acceptedExts[strings.ToLower(filepath.Ext(name))]
}
