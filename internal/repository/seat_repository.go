package repository

import (
	"context"
	"database/sql"

	"github.com/campuslabs/coworking-reservation/internal/model"
)

// SeatRepo provides read access to the seats table. The reservation engine
// never mutates seats; they are administered out of band and consumed here
// as read-only catalog data.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo returns a new SeatRepo bound to the given database.
func NewSeatRepo(db *sql.DB) *SeatRepo { return &SeatRepo{db: db} }

const seatColumns = `id, title, shorthand, reservable, has_monitor, sit_stand, x, y, room_id, created_at, updated_at`

// GetByIDs returns the seats matching the given IDs. Unknown IDs are
// silently absent from the result, so callers can detect them by comparing
// lengths. An empty input returns an empty slice without querying.
func (r *SeatRepo) GetByIDs(ctx context.Context, ids []uint64) ([]model.Seat, error) {
	if len(ids) == 0 {
		return []model.Seat{}, nil
	}
	query := `SELECT ` + seatColumns + ` FROM seats WHERE id IN (` + placeholders(len(ids)) + `) ORDER BY id`
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	return r.querySeats(ctx, query, args...)
}

// ListByRoom returns all seats in a room ordered by their map position.
func (r *SeatRepo) ListByRoom(ctx context.Context, roomID uint64) ([]model.Seat, error) {
	query := `SELECT ` + seatColumns + ` FROM seats WHERE room_id = ? ORDER BY y, x`
	return r.querySeats(ctx, query, roomID)
}

// List returns every seat in the facility ordered by ID.
func (r *SeatRepo) List(ctx context.Context) ([]model.Seat, error) {
	query := `SELECT ` + seatColumns + ` FROM seats ORDER BY id`
	return r.querySeats(ctx, query)
}

// ListReservable returns every seat marked reservable, across all rooms.
func (r *SeatRepo) ListReservable(ctx context.Context) ([]model.Seat, error) {
	query := `SELECT ` + seatColumns + ` FROM seats WHERE reservable = TRUE ORDER BY id`
	return r.querySeats(ctx, query)
}

func (r *SeatRepo) querySeats(ctx context.Context, query string, args ...interface{}) ([]model.Seat, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Seat, 0)
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.Title, &s.Shorthand, &s.Reservable, &s.HasMonitor,
			&s.SitStand, &s.X, &s.Y, &s.RoomID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
