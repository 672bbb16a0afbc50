package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/campuslabs/coworking-reservation/internal/model"
)

// RoomRepo provides read access to the rooms table.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = `id, nickname, building, room_no, capacity, reservable, created_at, updated_at`

// List returns every room ordered by building and room number.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms ORDER BY building, room_no`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Room, 0)
	for rows.Next() {
		var rm model.Room
		if err := rows.Scan(&rm.ID, &rm.Nickname, &rm.Building, &rm.RoomNo,
			&rm.Capacity, &rm.Reservable, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads a single room, returning ErrNotFound when absent.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
	var rm model.Room
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rm.ID, &rm.Nickname, &rm.Building,
		&rm.RoomNo, &rm.Capacity, &rm.Reservable, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rm, nil
}
