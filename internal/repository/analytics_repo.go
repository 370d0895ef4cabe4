package repository

import (
	"context"
	"database/sql"

	"github.com/ahmedaisar/aco-audit-portal/internal/models"
)

// AnalyticsRepo keeps one view counter per screen.
type AnalyticsRepo struct {
	db *sql.DB
}

func NewAnalyticsRepo(db *sql.DB) *AnalyticsRepo {
	return &AnalyticsRepo{db: db}
}

// Increment adds one view to v, creating the counter on first use.
func (r *AnalyticsRepo) Increment(ctx context.Context, v models.View) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO analytics (page_name, views) VALUES (?, 1)
		ON CONFLICT (page_name) DO UPDATE SET views = views + 1`, string(v))
	return err
}

// Counts returns the views recorded so far; screens never visited are absent.
func (r *AnalyticsRepo) Counts(ctx context.Context) (map[models.View]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT page_name, views FROM analytics`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.View]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		counts[models.View(name)] = n
	}
	return counts, rows.Err()
}
