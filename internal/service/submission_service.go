package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ahmedaisar/aco-audit-portal/internal/export"
	"github.com/ahmedaisar/aco-audit-portal/internal/models"
	"github.com/ahmedaisar/aco-audit-portal/internal/query"
	"github.com/ahmedaisar/aco-audit-portal/internal/validate"
)

type SubmissionService struct {
	subs SubmissionStore
	docs *DocumentService
	now  func() time.Time
}

func NewSubmissionService(subs SubmissionStore, docs *DocumentService) *SubmissionService {
	return &SubmissionService{subs: subs, docs: docs, now: time.Now}
}

// SubmitChangeRequest validates a standard request, uploads its attachments
// and stores the record.
func (s *SubmissionService) SubmitChangeRequest(ctx context.Context, in models.ChangeRequestInput) (*models.Submission, error) {
	if err := validate.ChangeRequest(in); err != nil {
		return nil, err
	}

	files, err := s.docs.UploadAll(ctx, in.Files)
	if err != nil {
		if _, ok := validate.AsError(err); ok {
			return nil, err
		}
		return nil, &StorageError{Op: "upload attachments", Err: err}
	}
	in.Files = files

	sub := s.newRecord(models.KindStandard)
	sub.ApplyChangeRequest(in)
	return sub, s.save(ctx, sub)
}

// SubmitAudit validates a COB or AHR checklist and stores it as a record.
func (s *SubmissionService) SubmitAudit(ctx context.Context, kind models.Kind, in models.AuditInput) (*models.Submission, error) {
	if !kind.IsAudit() {
		return nil, ErrNotFound
	}
	answers, notes, err := validate.Audit(kind, in)
	if err != nil {
		return nil, err
	}

	sub := s.newRecord(kind)
	sub.ApplyAudit(in, answers, notes)
	return sub, s.save(ctx, sub)
}

func (s *SubmissionService) newRecord(kind models.Kind) *models.Submission {
	return &models.Submission{
		ID:        uuid.NewString(),
		Timestamp: s.now().UnixMilli(),
		Kind:      kind,
	}
}

func (s *SubmissionService) save(ctx context.Context, sub *models.Submission) error {
	if err := validate.Record(sub); err != nil {
		warnOrphans(sub)
		return err
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		warnOrphans(sub)
		return &StorageError{Op: "save request", Err: err}
	}
	log.Printf("Stored %s submission %s (%d files)", sub.Kind, sub.ID, len(sub.Files))
	return nil
}

// warnOrphans logs the blobs of a record that will not be stored.
func warnOrphans(sub *models.Submission) {
	if urls := uploadedURLs(sub.Files); len(urls) > 0 {
		log.Printf("Warning: request %s not saved, orphaned blobs: %s", sub.ID, strings.Join(urls, ", "))
	}
}

// List returns every submission newest first, whatever order the store
// returns them in.
func (s *SubmissionService) List(ctx context.Context) ([]models.Submission, error) {
	subs, err := s.subs.List(ctx)
	if err != nil {
		return nil, &StorageError{Op: "fetch requests", Err: err}
	}
	query.SortNewestFirst(subs)
	return subs, nil
}

func (s *SubmissionService) Get(ctx context.Context, id string) (*models.Submission, error) {
	sub, err := s.subs.FindByID(ctx, id)
	if err != nil {
		return nil, &StorageError{Op: "fetch request", Err: err}
	}
	if sub == nil {
		return nil, ErrNotFound
	}
	return sub, nil
}

// Clear removes every submission and returns how many were deleted.
// Uploaded blobs are left in place.
func (s *SubmissionService) Clear(ctx context.Context) (int64, error) {
	n, err := s.subs.Clear(ctx)
	if err != nil {
		return 0, &StorageError{Op: "clear requests", Err: err}
	}
	log.Printf("Cleared %d submissions", n)
	return n, nil
}

// Export renders the current collection as CSV. It returns nil when there
// is nothing to export.
func (s *SubmissionService) Export(ctx context.Context, enc *export.Encoder) ([]byte, error) {
	subs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	data, err := enc.Bytes(subs)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return data, nil
}
