package service

import (
	"context"
	"errors"

	"github.com/ahmedaisar/aco-audit-portal/internal/models"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrUnknownView = errors.New("unknown view")
)

// StorageError wraps a persistence or blob storage failure. Op names the
// operation the user attempted, e.g. "save request".
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// SubmissionStore is the persistence the submission services need.
type SubmissionStore interface {
	Create(ctx context.Context, s *models.Submission) error
	List(ctx context.Context) ([]models.Submission, error)
	FindByID(ctx context.Context, id string) (*models.Submission, error)
	Clear(ctx context.Context) (int64, error)
}

// AnalyticsStore keeps page-view counters.
type AnalyticsStore interface {
	Increment(ctx context.Context, v models.View) error
	Counts(ctx context.Context) (map[models.View]int, error)
}
