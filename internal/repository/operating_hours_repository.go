package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/campuslabs/coworking-reservation/internal/model"
)

// OperatingHoursRepo provides data access to the operating_hours table.
// Rows describe when the coworking facility is open; the insert path
// enforces that no two rows overlap, since overlapping open spans would
// corrupt availability computation.
type OperatingHoursRepo struct {
	db *sql.DB
}

// NewOperatingHoursRepo returns a new OperatingHoursRepo bound to the given database.
func NewOperatingHoursRepo(db *sql.DB) *OperatingHoursRepo { return &OperatingHoursRepo{db: db} }

// Overlapping returns all operating hours rows whose span overlaps the
// given range, ordered by start time ascending.
func (r *OperatingHoursRepo) Overlapping(ctx context.Context, rng model.TimeRange) ([]model.OperatingHours, error) {
	const q = `SELECT id, starts_at, ends_at, created_at
	           FROM operating_hours
	           WHERE starts_at < ? AND ends_at > ?
	           ORDER BY starts_at`
	rows, err := r.db.QueryContext(ctx, q, rng.End.UTC(), rng.Start.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.OperatingHours, 0)
	for rows.Next() {
		var oh model.OperatingHours
		var start, end time.Time
		if err := rows.Scan(&oh.ID, &start, &end, &oh.CreatedAt); err != nil {
			return nil, err
		}
		oh.Range = model.TimeRange{Start: start.UTC(), End: end.UTC()}
		out = append(out, oh)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new operating hours row after verifying, inside one
// transaction, that it overlaps no existing row. It returns ErrConflict
// when an overlapping span already exists.
func (r *OperatingHoursRepo) Create(ctx context.Context, oh *model.OperatingHours) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	const checkQ = `SELECT COUNT(*) FROM operating_hours WHERE starts_at < ? AND ends_at > ?`
	var n int
	if err := tx.QueryRowContext(ctx, checkQ, oh.Range.End.UTC(), oh.Range.Start.UTC()).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	const insQ = `INSERT INTO operating_hours (starts_at, ends_at) VALUES (?, ?)`
	result, err := tx.ExecContext(ctx, insQ, oh.Range.Start.UTC(), oh.Range.End.UTC())
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	oh.ID = uint64(id)
	const sel = `SELECT created_at FROM operating_hours WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, oh.ID).Scan(&oh.CreatedAt); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Delete removes an operating hours row by ID. It returns ErrNotFound when
// no row with the given ID exists.
func (r *OperatingHoursRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM operating_hours WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID loads a single operating hours row, returning ErrNotFound when
// absent.
func (r *OperatingHoursRepo) GetByID(ctx context.Context, id uint64) (*model.OperatingHours, error) {
	const q = `SELECT id, starts_at, ends_at, created_at FROM operating_hours WHERE id = ?`
	var oh model.OperatingHours
	var start, end time.Time
	err := r.db.QueryRowContext(ctx, q, id).Scan(&oh.ID, &start, &end, &oh.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	oh.Range = model.TimeRange{Start: start.UTC(), End: end.UTC()}
	return &oh, nil
}
