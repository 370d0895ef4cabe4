// Package stats computes the dashboard summary of a submission snapshot.
package stats

import (
	"math"
	"sort"

	"github.com/ahmedaisar/aco-audit-portal/internal/models"
)

// DepartmentCount is one bar of the department chart.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

type PriorityShare struct {
	Priority models.Priority `json:"priority"`
	Count    int             `json:"count"`
	Percent  int             `json:"percent"`
}

// Summary is everything the dashboard renders for a non-empty collection.
type Summary struct {
	Total               int                     `json:"total"`
	ByPriority          map[models.Priority]int `json:"byPriority"`
	Priorities          []PriorityShare         `json:"priorities"`
	ByDepartment        []DepartmentCount       `json:"byDepartment"`
	ByKind              map[models.Kind]int     `json:"byKind"`
	AverageAttachments  float64                 `json:"averageAttachments"`
	DistinctDepartments int                     `json:"distinctDepartments"`
}

// Summarize computes the dashboard summary. For an empty collection it
// computes nothing and returns ok=false; callers show a placeholder instead.
func Summarize(subs []models.Submission) (Summary, bool) {
	if len(subs) == 0 {
		return Summary{}, false
	}
	byPriority := CountByPriority(subs)
	shares := make([]PriorityShare, 0, len(models.Priorities))
	for _, p := range models.Priorities {
		shares = append(shares, PriorityShare{
			Priority: p,
			Count:    byPriority[p],
			Percent:  percent(byPriority[p], len(subs)),
		})
	}
	byDept := CountByDepartment(subs)
	return Summary{
		Total:               len(subs),
		ByPriority:          byPriority,
		Priorities:          shares,
		ByDepartment:        byDept,
		ByKind:              CountByKind(subs),
		AverageAttachments:  AverageAttachments(subs),
		DistinctDepartments: len(byDept),
	}, true
}

// CountByPriority counts submissions per priority, zero-filled.
func CountByPriority(subs []models.Submission) map[models.Priority]int {
	counts := make(map[models.Priority]int, len(models.Priorities))
	for _, p := range models.Priorities {
		counts[p] = 0
	}
	for _, s := range subs {
		if s.Priority.Valid() {
			counts[s.Priority]++
		}
	}
	return counts
}

// CountByDepartment counts submissions per department, largest first. Ties
// keep the order in which departments first appear in subs.
func CountByDepartment(subs []models.Submission) []DepartmentCount {
	index := make(map[string]int)
	var out []DepartmentCount
	for _, s := range subs {
		i, ok := index[s.Department]
		if !ok {
			i = len(out)
			index[s.Department] = i
			out = append(out, DepartmentCount{Department: s.Department})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

func CountByKind(subs []models.Submission) map[models.Kind]int {
	counts := make(map[models.Kind]int, len(models.Kinds))
	for _, k := range models.Kinds {
		counts[k] = 0
	}
	for _, s := range subs {
		counts[s.Kind]++
	}
	return counts
}

// AverageAttachments is the mean number of files per submission rounded to
// one decimal place, 0 for an empty collection.
func AverageAttachments(subs []models.Submission) float64 {
	if len(subs) == 0 {
		return 0
	}
	total := 0
	for _, s := range subs {
		total += len(s.Files)
	}
	return math.Round(float64(total)/float64(len(subs))*10) / 10
}

func DistinctDepartments(subs []models.Submission) int {
	seen := make(map[string]struct{})
	for _, s := range subs {
		seen[s.Department] = struct{}{}
	}
	return len(seen)
}

// PriorityPercentage is the rounded share of submissions with priority p,
// 0 for an empty collection.
func PriorityPercentage(subs []models.Submission, p models.Priority) int {
	return percent(CountByPriority(subs)[p], len(subs))
}

func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}
