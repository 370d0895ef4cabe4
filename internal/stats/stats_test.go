package stats

import (
	"testing"

	"github.com/ahmedaisar/aco-audit-portal/internal/models"
)

func sub(dept string, p models.Priority, files int) models.Submission {
	return models.Submission{
		Kind:       models.KindStandard,
		Department: dept,
		Priority:   p,
		Files:      make([]models.FileAttachment, files),
	}
}

func TestCountByPriority(t *testing.T) {
	subs := []models.Submission{
		sub("Spa", models.PriorityHigh, 0),
		sub("Spa", models.PriorityHigh, 0),
		sub("IT", models.PriorityHigh, 0),
		sub("IT", models.PriorityMedium, 0),
		sub("HR", models.PriorityMedium, 0),
	}
	got := CountByPriority(subs)
	if got[models.PriorityHigh] != 3 || got[models.PriorityMedium] != 2 {
		t.Fatalf("unexpected counts: %v", got)
	}
	low, ok := got[models.PriorityLow]
	if !ok || low != 0 {
		t.Fatalf("Low should be zero-filled, got %v (present=%v)", low, ok)
	}
	sum := 0
	for _, n := range got {
		sum += n
	}
	if sum != len(subs) {
		t.Fatalf("counts sum to %d, want %d", sum, len(subs))
	}
}

func TestCountByDepartment_OrderAndTies(t *testing.T) {
	subs := []models.Submission{
		sub("Marketing", models.PriorityLow, 0),
		sub("Spa", models.PriorityLow, 0),
		sub("IT", models.PriorityLow, 0),
		sub("Spa", models.PriorityLow, 0),
		sub("IT", models.PriorityLow, 0),
		sub("HR", models.PriorityLow, 0),
	}
	got := CountByDepartment(subs)
	want := []DepartmentCount{
		{"Spa", 2}, {"IT", 2}, {"Marketing", 1}, {"HR", 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestAverageAttachments(t *testing.T) {
	tests := []struct {
		name  string
		files []int
		want  float64
	}{
		{"empty", nil, 0},
		{"whole", []int{2, 2}, 2},
		{"rounds to one decimal", []int{1, 0, 0}, 0.3},
		{"rounds half up", []int{5, 0, 0, 0}, 1.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var subs []models.Submission
			for _, n := range tt.files {
				subs = append(subs, sub("IT", models.PriorityLow, n))
			}
			if got := AverageAttachments(subs); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPriorityPercentage(t *testing.T) {
	subs := []models.Submission{
		sub("IT", models.PriorityHigh, 0),
		sub("IT", models.PriorityLow, 0),
		sub("IT", models.PriorityLow, 0),
	}
	if got := PriorityPercentage(subs, models.PriorityHigh); got != 33 {
		t.Errorf("High: got %d, want 33", got)
	}
	if got := PriorityPercentage(subs, models.PriorityLow); got != 67 {
		t.Errorf("Low: got %d, want 67", got)
	}
	if got := PriorityPercentage(nil, models.PriorityLow); got != 0 {
		t.Errorf("empty: got %d, want 0", got)
	}
}

func TestDistinctDepartments(t *testing.T) {
	subs := []models.Submission{
		sub("IT", models.PriorityHigh, 0),
		sub("Spa", models.PriorityLow, 0),
		sub("IT", models.PriorityLow, 0),
	}
	if got := DistinctDepartments(subs); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s, ok := Summarize(nil)
	if ok {
		t.Fatal("expected ok=false for empty collection")
	}
	if s.Total != 0 || s.ByPriority != nil || s.ByDepartment != nil {
		t.Fatalf("expected zero summary, got %+v", s)
	}
}

func TestSummarize(t *testing.T) {
	subs := []models.Submission{
		sub("Spa", models.PriorityHigh, 1),
		sub("Spa", models.PriorityMedium, 2),
		{Kind: models.KindCOB, Department: "Digital Audit", Priority: models.PriorityMedium, Files: []models.FileAttachment{}},
		sub("IT", models.PriorityLow, 0),
	}
	s, ok := Summarize(subs)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if s.Total != 4 {
		t.Errorf("total: got %d", s.Total)
	}
	if s.DistinctDepartments != 3 {
		t.Errorf("departments: got %d", s.DistinctDepartments)
	}
	if s.AverageAttachments != 0.8 {
		t.Errorf("average: got %v", s.AverageAttachments)
	}
	if s.ByKind[models.KindCOB] != 1 || s.ByKind[models.KindStandard] != 3 || s.ByKind[models.KindAHR] != 0 {
		t.Errorf("by kind: got %v", s.ByKind)
	}
	if len(s.Priorities) != 3 || s.Priorities[1].Priority != models.PriorityMedium || s.Priorities[1].Percent != 50 {
		t.Errorf("priorities: got %+v", s.Priorities)
	}
	if s.ByDepartment[0].Department != "Spa" {
		t.Errorf("top department: got %+v", s.ByDepartment)
	}
}
