package models

// ChangeRequestInput is what the standard change request form posts.
type ChangeRequestInput struct {
	RequestorName     string           `json:"requestorName"`
	Department        string           `json:"department"`
	EmailID           string           `json:"emailId"`
	TodayDate         string           `json:"todayDate"`
	Priority          Priority         `json:"priority"`
	URL               string           `json:"url"`
	PageName          string           `json:"pageName"`
	ChangeDescription string           `json:"changeDescription"`
	DesiredGoLiveDate string           `json:"desiredGoLiveDate"`
	Files             []FileAttachment `json:"files,omitempty"`
}

// AuditInput is what the COB and AHR checklist forms post. Checklist values
// are kept as raw strings so unanswered or misspelled answers can be reported
// instead of silently dropped by JSON decoding.
type AuditInput struct {
	Resort           string            `json:"resort"`
	URL              string            `json:"url"`
	AuditDate        string            `json:"auditDate"`
	Auditor          string            `json:"auditor"`
	ResortOpsContact string            `json:"resortOpsContact"`
	Deadline         string            `json:"deadline"`
	Checklist        map[string]string `json:"checklist"`
	Notes            map[string]string `json:"notes,omitempty"`
}

// auditProfile holds the fixed values an audit kind stamps onto a record.
type auditProfile struct {
	Department  string
	Email       string
	PagePrefix  string
	Description string
}

var auditProfiles = map[Kind]auditProfile{
	KindCOB: {
		Department:  "Digital Audit",
		Email:       "digital@atmospherecore.com",
		PagePrefix:  "COB Audit - ",
		Description: "Website Audit Checklist Submission for ",
	},
	KindAHR: {
		Department:  "AHR Quality Assurance",
		Email:       "audit@atmospherehotelsandresorts.com",
		PagePrefix:  "AHR Audit - ",
		Description: "AHR Digital Audit Report for ",
	},
}

// ApplyAudit fills the common fields of s from an audit form. Answers must
// already be validated; the caller passes them in parsed form.
func (s *Submission) ApplyAudit(in AuditInput, answers map[string]Answer, notes map[string]string) {
	p := auditProfiles[s.Kind]
	s.RequestorName = in.Auditor
	s.Department = p.Department
	s.EmailID = p.Email
	s.TodayDate = in.AuditDate
	s.Priority = PriorityMedium
	s.URL = in.URL
	s.PageName = p.PagePrefix + in.Resort
	s.ChangeDescription = p.Description + in.Resort
	s.DesiredGoLiveDate = in.Deadline
	s.Files = []FileAttachment{}
	s.AuditDetails = &AuditDetails{
		ResortName:       in.Resort,
		ResortOpsContact: in.ResortOpsContact,
		ChecklistData:    answers,
		NotesData:        notes,
	}
}

// ApplyChangeRequest fills s from the standard form.
func (s *Submission) ApplyChangeRequest(in ChangeRequestInput) {
	s.RequestorName = in.RequestorName
	s.Department = in.Department
	s.EmailID = in.EmailID
	s.TodayDate = in.TodayDate
	s.Priority = in.Priority
	s.URL = in.URL
	s.PageName = in.PageName
	s.ChangeDescription = in.ChangeDescription
	s.DesiredGoLiveDate = in.DesiredGoLiveDate
	s.Files = in.Files
	if s.Files == nil {
		s.Files = []FileAttachment{}
	}
	s.AuditDetails = nil
}
