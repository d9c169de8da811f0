package activity

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/aura-seminar/admin/internal/models"
)

// Recorder stores mutation attempts.
type Recorder interface {
	Record(ctx context.Context, a models.Activity) error
}

// Repository handles seminar_activity persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an activity repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Record inserts one activity row.
func (r *Repository) Record(ctx context.Context, a models.Activity) error {
	const q = `INSERT INTO seminar_activity (seminar_id, action, status, title, error_message)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))`
	_, err := r.pool.Exec(ctx, q, int(a.SeminarID), a.Action, a.Status, a.Title, a.ErrorMessage)
	return err
}

// ListRecent returns the newest activity rows first.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]models.Activity, error) {
	const q = `SELECT id, seminar_id, action, status, title, error_message, created_at
		FROM seminar_activity
		ORDER BY created_at DESC, id DESC
		LIMIT $1`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Activity
	for rows.Next() {
		var a models.Activity
		var seminarID int
		var title, errMsg *string
		if err := rows.Scan(&a.ID, &seminarID, &a.Action, &a.Status, &title, &errMsg, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.SeminarID = models.ID(seminarID)
		if title != nil {
			a.Title = *title
		}
		if errMsg != nil {
			a.ErrorMessage = *errMsg
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Nop discards activity; used when no database is configured.
type Nop struct{}

func (Nop) Record(context.Context, models.Activity) error { return nil }

// Track records the outcome of one mutation attempt. Failures to record are
// logged and otherwise ignored.
func Track(ctx context.Context, rec Recorder, logger *zap.Logger, id models.ID, title, action string, opErr error) {
	a := models.Activity{SeminarID: id, Action: action, Status: models.ActivitySucceeded, Title: title}
	if opErr != nil {
		a.Status = models.ActivityFailed
		a.ErrorMessage = opErr.Error()
	}
	if err := rec.Record(ctx, a); err != nil {
		logger.Warn("record seminar activity", zap.String("action", action), zap.Stringer("seminar_id", id), zap.Error(err))
	}
}
