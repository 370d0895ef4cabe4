// Package query filters an in-memory snapshot of submissions for the list view.
package query

import (
	"sort"
	"strings"

	"github.com/ahmedaisar/aco-audit-portal/internal/models"
)

// Filter returns the submissions whose requestor name, page name or
// department contain q, ignoring case. q is matched as typed, spaces
// included; only the empty query matches everything. The result keeps the
// input order.
func Filter(subs []models.Submission, q string) []models.Submission {
	q = strings.ToLower(q)
	out := make([]models.Submission, 0, len(subs))
	for _, s := range subs {
		if q == "" || Matches(&s, q) {
			out = append(out, s)
		}
	}
	return out
}

// Matches reports whether s matches an already lower-cased query.
func Matches(s *models.Submission, q string) bool {
	return strings.Contains(strings.ToLower(s.RequestorName), q) ||
		strings.Contains(strings.ToLower(s.PageName), q) ||
		strings.Contains(strings.ToLower(s.Department), q)
}

// SortNewestFirst orders subs by descending timestamp in place. Equal
// timestamps keep their relative order.
func SortNewestFirst(subs []models.Submission) {
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].Timestamp > subs[j].Timestamp
	})
}
