package service

import (
	"context"
	"log"

	"github.com/ahmedaisar/aco-audit-portal/internal/models"
	"github.com/ahmedaisar/aco-audit-portal/internal/stats"
)

// EmptyDashboardMessage is shown instead of charts when nothing was submitted.
const EmptyDashboardMessage = "No analytics data available yet."

type Dashboard struct {
	Empty   bool                `json:"empty"`
	Message string              `json:"message,omitempty"`
	Summary *stats.Summary      `json:"summary,omitempty"`
	Views   map[models.View]int `json:"views,omitempty"`
}

type DashboardService struct {
	subs      *SubmissionService
	analytics *AnalyticsService
}

func NewDashboardService(subs *SubmissionService, analytics *AnalyticsService) *DashboardService {
	return &DashboardService{subs: subs, analytics: analytics}
}

func (s *DashboardService) Summary(ctx context.Context) (*Dashboard, error) {
	subs, err := s.subs.List(ctx)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{}
	if views, err := s.analytics.Counts(ctx); err != nil {
		log.Printf("Warning: dashboard without view counts: %v", err)
	} else {
		d.Views = views
	}

	sum, ok := stats.Summarize(subs)
	if !ok {
		d.Empty = true
		d.Message = EmptyDashboardMessage
		return d, nil
	}
	d.Summary = &sum
	return d, nil
}
