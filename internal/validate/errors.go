package validate

import (
	"errors"
	"fmt"
	"strings"
)

// Reason classifies a validation failure.
type Reason string

const (
	MissingField        Reason = "MissingField"
	InvalidEmail        Reason = "InvalidEmail"
	InvalidDate         Reason = "InvalidDate"
	InvalidPriority     Reason = "InvalidPriority"
	IncompleteChecklist Reason = "IncompleteChecklist"
	UnsupportedFileType Reason = "UnsupportedFileType"
	TooManyFiles        Reason = "TooManyFiles"
	InvalidRecord       Reason = "InvalidRecord"
)

// Violation is one rejected field, file or checklist. Field holds the JSON
// field name, the filename for file rules, or the missing checkpoints.
type Violation struct {
	Reason  Reason `json:"reason"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	if v.Field == "" {
		return string(v.Reason)
	}
	return fmt.Sprintf("%s(%s)", v.Reason, v.Field)
}

// Error carries every violation found in one validation run.
type Error struct {
	Violations []Violation `json:"violations"`
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Has reports whether any violation has reason r.
func (e *Error) Has(r Reason) bool {
	for _, v := range e.Violations {
		if v.Reason == r {
			return true
		}
	}
	return false
}

// AsError unwraps err to a *Error.
func AsError(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

type collector struct {
	violations []Violation
}

func (c *collector) add(r Reason, field, msg string) {
	c.violations = append(c.violations, Violation{Reason: r, Field: field, Message: msg})
}

func (c *collector) err() error {
	if len(c.violations) == 0 {
		return nil
	}
	return &Error{Violations: c.violations}
}
