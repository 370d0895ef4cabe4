package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ahmedaisar/aco-audit-portal/internal/models"
)

type SubmissionRepo struct {
	db *sql.DB
}

func NewSubmissionRepo(db *sql.DB) *SubmissionRepo {
	return &SubmissionRepo{db: db}
}

const submissionColumns = `id, timestamp, tab_type, requestor_name, department, email_id, today_date,
	priority, url, page_name, change_description, desired_go_live_date,
	resort_name, resort_ops_contact, checklist_data, notes_data`

// Create inserts the submission and its attachment rows in one transaction.
func (r *SubmissionRepo) Create(ctx context.Context, s *models.Submission) error {
	var resort, contact, checklist, notes sql.NullString
	if s.AuditDetails != nil {
		var err error
		resort = nullString(s.ResortName)
		contact = nullString(s.ResortOpsContact)
		if checklist, err = encodeMap(s.ChecklistData); err != nil {
			return err
		}
		if notes, err = encodeMap(s.NotesData); err != nil {
			return err
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO change_requests (`+submissionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Timestamp, string(s.Kind), s.RequestorName, s.Department, s.EmailID, s.TodayDate,
		string(s.Priority), s.URL, s.PageName, s.ChangeDescription, s.DesiredGoLiveDate,
		resort, contact, checklist, notes,
	)
	if err != nil {
		return fmt.Errorf("insert change request %s: %w", s.ID, err)
	}

	for i, f := range s.Files {
		_, err := tx.ExecContext(ctx, `INSERT INTO request_files (id, request_id, position, name, size, type, url)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), s.ID, i, f.Name, f.Size, f.Type, f.URL,
		)
		if err != nil {
			return fmt.Errorf("insert file %q of %s: %w", f.Name, s.ID, err)
		}
	}
	return tx.Commit()
}

// List returns every submission newest first, attachments in upload order.
func (r *SubmissionRepo) List(ctx context.Context) ([]models.Submission, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+submissionColumns+` FROM change_requests ORDER BY timestamp DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]models.Submission, 0)
	index := make(map[string]int)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		index[s.ID] = len(subs)
		subs = append(subs, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return subs, nil
	}

	files, err := r.db.QueryContext(ctx, `SELECT request_id, name, size, type, url FROM request_files ORDER BY request_id, position`)
	if err != nil {
		return nil, err
	}
	defer files.Close()
	for files.Next() {
		var requestID string
		var f models.FileAttachment
		if err := files.Scan(&requestID, &f.Name, &f.Size, &f.Type, &f.URL); err != nil {
			return nil, err
		}
		if i, ok := index[requestID]; ok {
			subs[i].Files = append(subs[i].Files, f)
		}
	}
	return subs, files.Err()
}

// FindByID returns nil, nil when no submission has the id.
func (r *SubmissionRepo) FindByID(ctx context.Context, id string) (*models.Submission, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+submissionColumns+` FROM change_requests WHERE id = ?`, id)
	s, err := scanSubmission(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT name, size, type, url FROM request_files WHERE request_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var f models.FileAttachment
		if err := rows.Scan(&f.Name, &f.Size, &f.Type, &f.URL); err != nil {
			return nil, err
		}
		s.Files = append(s.Files, f)
	}
	return s, rows.Err()
}

// Clear deletes every submission; attachment rows go with them by cascade.
func (r *SubmissionRepo) Clear(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM change_requests`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanSubmission(sc rowScanner) (*models.Submission, error) {
	var (
		s                models.Submission
		kind, priority   string
		resort, contact  sql.NullString
		checklist, notes sql.NullString
	)
	err := sc.Scan(
		&s.ID, &s.Timestamp, &kind, &s.RequestorName, &s.Department, &s.EmailID, &s.TodayDate,
		&priority, &s.URL, &s.PageName, &s.ChangeDescription, &s.DesiredGoLiveDate,
		&resort, &contact, &checklist, &notes,
	)
	if err != nil {
		return nil, err
	}
	s.Kind = models.Kind(kind)
	s.Priority = models.Priority(priority)
	s.Files = []models.FileAttachment{}

	if s.Kind.IsAudit() {
		answers, err := decodeMap[models.Answer](checklist)
		if err != nil {
			return nil, fmt.Errorf("submission %s: %w", s.ID, err)
		}
		noteMap, err := decodeMap[string](notes)
		if err != nil {
			return nil, fmt.Errorf("submission %s: %w", s.ID, err)
		}
		s.AuditDetails = &models.AuditDetails{
			ResortName:       resort.String,
			ResortOpsContact: contact.String,
			ChecklistData:    answers,
			NotesData:        noteMap,
		}
	}
	return &s, nil
}
