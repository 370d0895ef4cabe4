package service

import (
	"github.com/ahmedaisar/aco-audit-portal/internal/models"
)

// FormService serves the definitions of the three submission forms.
type FormService struct {
	forms []models.Form
}

func NewFormService() *FormService {
	return &FormService{forms: []models.Form{
		changeRequestForm(),
		auditForm(models.KindCOB, "COB Website Audit", "Brand website audit checklist"),
		auditForm(models.KindAHR, "AHR Digital Audit", "Atmosphere Hotels & Resorts digital audit report"),
	}}
}

func (s *FormService) List() []models.Form {
	return s.forms
}

func (s *FormService) Get(kind models.Kind) (*models.Form, error) {
	for i := range s.forms {
		if s.forms[i].Kind == kind {
			return &s.forms[i], nil
		}
	}
	return nil, ErrNotFound
}

func changeRequestForm() models.Form {
	priorities := make([]string, len(models.Priorities))
	for i, p := range models.Priorities {
		priorities[i] = string(p)
	}
	return models.Form{
		Kind:        models.KindStandard,
		Name:        "Website Change Request",
		Description: "Request a change to a resort or brand website",
		MaxFiles:    models.MaxAttachments,
		Fields: []models.FieldDefinition{
			{Name: "requestorName", Label: "Requestor Name", Type: "text", Required: true},
			{Name: "department", Label: "Department", Type: "select", Required: true, Options: models.Departments},
			{Name: "emailId", Label: "Email", Type: "email", Required: true, Placeholder: "name@example.com"},
			{Name: "todayDate", Label: "Today's Date", Type: "date", Required: true},
			{Name: "priority", Label: "Priority", Type: "select", Required: true, Options: priorities},
			{Name: "url", Label: "Target URL", Type: "url", Required: true, Placeholder: "https://"},
			{Name: "pageName", Label: "Page Name", Type: "text", Required: true},
			{Name: "changeDescription", Label: "Change Description", Type: "textarea", Required: true},
			{Name: "desiredGoLiveDate", Label: "Desired Go-Live Date", Type: "date", Required: true},
			{Name: "files", Label: "Attachments", Type: "file"},
		},
	}
}

func auditForm(kind models.Kind, name, description string) models.Form {
	return models.Form{
		Kind:        kind,
		Name:        name,
		Description: description,
		Checklist:   models.ChecklistFor(kind),
		Answers:     models.Answers,
		Fields: []models.FieldDefinition{
			{Name: "resort", Label: "Resort Name", Type: "text", Required: true},
			{Name: "url", Label: "Website URL", Type: "url", Required: true, Placeholder: "https://"},
			{Name: "auditDate", Label: "Audit Date", Type: "date", Required: true},
			{Name: "auditor", Label: "Auditor", Type: "text", Required: true},
			{Name: "resortOpsContact", Label: "Resort Ops Contact", Type: "text", Required: true},
			{Name: "deadline", Label: "Deadline", Type: "date", Required: true},
		},
	}
}
