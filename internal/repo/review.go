package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/dashboard-api/internal/model"
)

const reviewColumns = `id, file_path, status, notes, category, subcategory, reviewed_at, created_at, updated_at`

type ReviewRepo struct {
	pool *pgxpool.Pool
}

func NewReviewRepo(pool *pgxpool.Pool) *ReviewRepo {
	return &ReviewRepo{
		pool: pool,
	}
}

func (r *ReviewRepo) GetByPath(ctx context.Context, filePath string) (model.ContentReview, error) {
	var rev model.ContentReview
	err := r.pool.QueryRow(ctx, `
		SELECT `+reviewColumns+`
		FROM content_reviews
		WHERE file_path = $1
	`, filePath).Scan(
		&rev.ID, &rev.FilePath, &rev.Status, &rev.Notes, &rev.Category, &rev.Subcategory,
		&rev.ReviewedAt, &rev.CreatedAt, &rev.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return rev, ErrorNotFound
	}
	return rev, err
}

func (r *ReviewRepo) List(ctx context.Context) ([]model.ContentReview, error) {
	return r.list(ctx, `
		SELECT `+reviewColumns+`
		FROM content_reviews
		ORDER BY updated_at DESC
	`)
}

func (r *ReviewRepo) ListByStatus(ctx context.Context, status string) ([]model.ContentReview, error) {
	return r.list(ctx, `
		SELECT `+reviewColumns+`
		FROM content_reviews
		WHERE status = $1
		ORDER BY updated_at DESC
	`, status)
}

func (r *ReviewRepo) list(ctx context.Context, query string, args ...any) ([]model.ContentReview, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]model.ContentReview, 0)
	for rows.Next() {
		var rev model.ContentReview
		if err := rows.Scan(
			&rev.ID, &rev.FilePath, &rev.Status, &rev.Notes, &rev.Category, &rev.Subcategory,
			&rev.ReviewedAt, &rev.CreatedAt, &rev.UpdatedAt,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

// Upsert вставляет или обновляет ревью по file_path.
// reviewed_at обновляется только при смене статуса
func (r *ReviewRepo) Upsert(ctx context.Context, rev model.ContentReview, refreshReviewedAt bool) (model.ContentReview, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO content_reviews (file_path, status, notes, category, subcategory, reviewed_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (file_path) DO UPDATE
		SET status = EXCLUDED.status,
		    notes = EXCLUDED.notes,
		    category = EXCLUDED.category,
		    subcategory = EXCLUDED.subcategory,
		    reviewed_at = CASE WHEN $6 THEN now() ELSE content_reviews.reviewed_at END,
		    updated_at = now()
		RETURNING `+reviewColumns+`
	`, rev.FilePath, rev.Status, rev.Notes, rev.Category, rev.Subcategory, refreshReviewedAt).Scan(
		&rev.ID, &rev.FilePath, &rev.Status, &rev.Notes, &rev.Category, &rev.Subcategory,
		&rev.ReviewedAt, &rev.CreatedAt, &rev.UpdatedAt,
	)
	return rev, err
}

func (r *ReviewRepo) AppendAudit(ctx context.Context, e model.AuditEntry) (model.AuditEntry, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO content_audit_logs (content_id, action, actor, from_status, to_status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, e.ContentID, e.Action, e.Actor, e.FromStatus, e.ToStatus, e.Notes).Scan(&e.ID, &e.CreatedAt)
	return e, err
}

func (r *ReviewRepo) ListAudit(ctx context.Context, contentID int64) ([]model.AuditEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, content_id, action, actor,
		       coalesce(from_status, ''), coalesce(to_status, ''), coalesce(notes, ''),
		       created_at
		FROM content_audit_logs
		WHERE content_id = $1
		ORDER BY created_at DESC, id DESC
	`, contentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]model.AuditEntry, 0)
	for rows.Next() {
		var e model.AuditEntry
		if err := rows.Scan(
			&e.ID, &e.ContentID, &e.Action, &e.Actor,
			&e.FromStatus, &e.ToStatus, &e.Notes, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *ReviewRepo) GetStats(ctx context.Context) (ReviewStats, error) {
	stats := ReviewStats{ByStatus: make(map[string]int)}

	rows, err := r.pool.Query(ctx, `
		SELECT status, count(*)
		FROM content_reviews
		GROUP BY status
	`)
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return stats, err
		}
		stats.ByStatus[status] = count
		stats.Total += count
	}
	return stats, rows.Err()
}
