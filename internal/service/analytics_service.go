package service

import (
	"context"
	"fmt"

	"github.com/ahmedaisar/aco-audit-portal/internal/models"
)

type AnalyticsService struct {
	store AnalyticsStore
}

func NewAnalyticsService(store AnalyticsStore) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// Track counts one visit to v.
func (s *AnalyticsService) Track(ctx context.Context, v models.View) error {
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownView, v)
	}
	if err := s.store.Increment(ctx, v); err != nil {
		return &StorageError{Op: "track view", Err: err}
	}
	return nil
}

// Counts returns a counter for every view, zero for views never visited.
func (s *AnalyticsService) Counts(ctx context.Context) (map[models.View]int, error) {
	stored, err := s.store.Counts(ctx)
	if err != nil {
		return nil, &StorageError{Op: "fetch analytics", Err: err}
	}
	out := make(map[models.View]int, len(models.Views))
	for _, v := range models.Views {
		out[v] = stored[v]
	}
	return out, nil
}
