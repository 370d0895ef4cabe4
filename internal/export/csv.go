// Package export renders a submission collection as a spreadsheet-friendly
// CSV download.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ahmedaisar/aco-audit-portal/internal/models"
)

// Header is the fixed first line of every export.
var Header = []string{
	"ID", "Submission Date", "Type", "Requestor Name", "Department", "Email", "Priority",
	"Target URL", "Page Name", "Description", "Files Count", "Desired Go-Live",
	"Resort Name", "Resort Contact",
}

// TimestampLayout renders submission times the way a US-English browser
// locale does, e.g. "3/7/2025, 2:05:09 PM".
const TimestampLayout = "1/2/2006, 3:04:05 PM"

// Encoder writes submissions as CSV. Timestamps are rendered in Location.
type Encoder struct {
	Location *time.Location
}

func NewEncoder(loc *time.Location) *Encoder {
	if loc == nil {
		loc = time.Local
	}
	return &Encoder{Location: loc}
}

// Encode writes the header and one row per submission in input order. An
// empty collection writes nothing.
func (e *Encoder) Encode(w io.Writer, subs []models.Submission) error {
	if len(subs) == 0 {
		return nil
	}
	lines := make([]string, 0, len(subs)+1)
	lines = append(lines, strings.Join(Header, ","))
	for i := range subs {
		lines = append(lines, strings.Join(e.row(&subs[i]), ","))
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	if err != nil {
		return fmt.Errorf("export: write csv: %w", err)
	}
	return nil
}

// Bytes is Encode into memory. An empty collection gives nil.
func (e *Encoder) Bytes(subs []models.Submission) ([]byte, error) {
	if len(subs) == 0 {
		return nil, nil
	}
	var b strings.Builder
	if err := e.Encode(&b, subs); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

// Filename is the download name for an export produced at t, dated in the
// encoder's location.
func (e *Encoder) Filename(t time.Time) string {
	return Filename(t.In(e.Location))
}

func (e *Encoder) row(s *models.Submission) []string {
	return []string{
		s.ID,
		s.CreatedAt().In(e.Location).Format(TimestampLayout),
		string(s.Kind),
		quote(s.RequestorName),
		quote(s.Department),
		quote(s.EmailID),
		string(s.Priority),
		quote(s.URL),
		quote(s.PageName),
		quote(s.ChangeDescription),
		strconv.Itoa(len(s.Files)),
		quote(s.DesiredGoLiveDate),
		optional(s.Resort()),
		optional(s.OpsContact()),
	}
}

// quote wraps v in double quotes, doubling any quote inside it.
func quote(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

func optional(v string) string {
	if v == "" {
		return ""
	}
	return quote(v)
}

// Filename is the download name for an export produced at t.
func Filename(t time.Time) string {
	return "atmosphere_requests_" + t.Format("2006-01-02") + ".csv"
}
