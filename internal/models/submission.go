package models

import "time"

// Kind selects which form produced a submission.
type Kind string

const (
	KindStandard Kind = "RAS"
	KindCOB      Kind = "COB"
	KindAHR      Kind = "AHR"
)

// Kinds lists every submission kind in form tab order.
var Kinds = []Kind{KindStandard, KindCOB, KindAHR}

func (k Kind) Valid() bool {
	switch k {
	case KindStandard, KindCOB, KindAHR:
		return true
	}
	return false
}

// IsAudit reports whether submissions of this kind carry a checklist.
func (k Kind) IsAudit() bool {
	return k == KindCOB || k == KindAHR
}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities is the display order used by the dashboard.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Submission is one change request or audit. Audit is nil for standard
// change requests and set for both audit kinds; its fields are flattened
// into the JSON object.
type Submission struct {
	ID                string           `json:"id"`
	Timestamp         int64            `json:"timestamp"`
	Kind              Kind             `json:"tabType"`
	RequestorName     string           `json:"requestorName"`
	Department        string           `json:"department"`
	EmailID           string           `json:"emailId"`
	TodayDate         string           `json:"todayDate"`
	Priority          Priority         `json:"priority"`
	URL               string           `json:"url"`
	PageName          string           `json:"pageName"`
	ChangeDescription string           `json:"changeDescription"`
	Files             []FileAttachment `json:"files"`
	DesiredGoLiveDate string           `json:"desiredGoLiveDate"`

	*AuditDetails
}

// AuditDetails holds the fields only COB and AHR audits have.
type AuditDetails struct {
	ResortName       string            `json:"resortName,omitempty"`
	ResortOpsContact string            `json:"resortOpsContact,omitempty"`
	ChecklistData    map[string]Answer `json:"checklistData,omitempty"`
	NotesData        map[string]string `json:"notesData,omitempty"`
}

// CreatedAt converts the millisecond timestamp back to a time.Time.
func (s *Submission) CreatedAt() time.Time {
	return time.UnixMilli(s.Timestamp)
}

// Resort returns the audited resort, or "" for standard requests.
func (s *Submission) Resort() string {
	if s.AuditDetails == nil {
		return ""
	}
	return s.AuditDetails.ResortName
}

// OpsContact returns the resort operations contact, or "" for standard requests.
func (s *Submission) OpsContact() string {
	if s.AuditDetails == nil {
		return ""
	}
	return s.AuditDetails.ResortOpsContact
}
