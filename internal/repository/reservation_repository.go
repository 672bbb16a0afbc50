package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/campuslabs/coworking-reservation/internal/model"
)

// ReservationRepo provides data access for reservations and their seat and
// user link rows. A reservation groups one or more seats for a party of
// users over a time interval. All timestamps are stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// CreateTx inserts a reservation together with its reservation_users and
// reservation_seats link rows within the scope of an existing transaction.
// It populates the generated ID and the database-assigned timestamps on the
// provided reservation. The caller must commit or roll back.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations (starts_at, ends_at, state, walkin, room_id) VALUES (?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		res.Range.Start.UTC(), res.Range.End.UTC(), string(res.State), res.Walkin, res.RoomID)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	if err := bulkInsertLinks(ctx, tx, "reservation_users", "user_id", res.ID, res.UserIDs); err != nil {
		return err
	}
	if err := bulkInsertLinks(ctx, tx, "reservation_seats", "seat_id", res.ID, res.SeatIDs); err != nil {
		return err
	}
	// Query back the row to pick up created_at/updated_at defaults.
	const sel = `SELECT created_at, updated_at FROM reservations WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt, &res.UpdatedAt)
}

// Create inserts a reservation and its link rows in a transaction of its
// own. It is the convenience form of CreateTx for callers that have no
// surrounding transaction.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
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
	if err := r.CreateTx(ctx, tx, res); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// bulkInsertLinks inserts (reservation_id, <col>) rows into the named link
// table in a single statement. An empty id list is a no-op.
func bulkInsertLinks(ctx context.Context, tx *sql.Tx, table, col string, reservationID uint64, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	query := `INSERT INTO ` + table + ` (reservation_id, ` + col + `) VALUES `
	args := make([]interface{}, 0, len(ids)*2)
	for i, id := range ids {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, reservationID, id)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// GetByID loads a single reservation with its seat and user IDs. It
// returns ErrNotFound when no row exists.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT id, starts_at, ends_at, state, walkin, room_id, created_at, updated_at
	           FROM reservations WHERE id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := r.populateLinks(ctx, []*model.Reservation{res}); err != nil {
		return nil, err
	}
	return res, nil
}

// ActiveForSeatsOverlapping returns reservations that hold any of the given
// seats, are not in a terminal state, and overlap the given range. The
// half-open overlap test (starts_at < range.end AND ends_at > range.start)
// matches the in-memory TimeRange semantics. Results are ordered by start.
func (r *ReservationRepo) ActiveForSeatsOverlapping(ctx context.Context, seatIDs []uint64, rng model.TimeRange) ([]*model.Reservation, error) {
	if len(seatIDs) == 0 {
		return []*model.Reservation{}, nil
	}
	query := `SELECT DISTINCT r.id, r.starts_at, r.ends_at, r.state, r.walkin, r.room_id, r.created_at, r.updated_at
	          FROM reservations r
	          JOIN reservation_seats rs ON rs.reservation_id = r.id
	          WHERE rs.seat_id IN (` + placeholders(len(seatIDs)) + `)
	            AND r.state NOT IN ('CANCELLED', 'CHECKED_OUT')
	            AND r.starts_at < ? AND r.ends_at > ?
	          ORDER BY r.starts_at`
	args := make([]interface{}, 0, len(seatIDs)+2)
	for _, id := range seatIDs {
		args = append(args, id)
	}
	args = append(args, rng.End.UTC(), rng.Start.UTC())
	return r.queryReservations(ctx, query, args...)
}

// ActiveForUsersOverlapping returns non-terminal reservations that include
// any of the given users in their party and overlap the given range. It is
// the conflict-detection query used when drafting a new reservation.
func (r *ReservationRepo) ActiveForUsersOverlapping(ctx context.Context, userIDs []uint64, rng model.TimeRange) ([]*model.Reservation, error) {
	if len(userIDs) == 0 {
		return []*model.Reservation{}, nil
	}
	query := `SELECT DISTINCT r.id, r.starts_at, r.ends_at, r.state, r.walkin, r.room_id, r.created_at, r.updated_at
	          FROM reservations r
	          JOIN reservation_users ru ON ru.reservation_id = r.id
	          WHERE ru.user_id IN (` + placeholders(len(userIDs)) + `)
	            AND r.state NOT IN ('CANCELLED', 'CHECKED_OUT')
	            AND r.starts_at < ? AND r.ends_at > ?
	          ORDER BY r.starts_at`
	args := make([]interface{}, 0, len(userIDs)+2)
	for _, id := range userIDs {
		args = append(args, id)
	}
	args = append(args, rng.End.UTC(), rng.Start.UTC())
	return r.queryReservations(ctx, query, args...)
}

// ListActiveByUser returns all non-terminal reservations whose party
// includes the given user, ordered by start time ascending.
func (r *ReservationRepo) ListActiveByUser(ctx context.Context, userID uint64) ([]*model.Reservation, error) {
	const q = `SELECT r.id, r.starts_at, r.ends_at, r.state, r.walkin, r.room_id, r.created_at, r.updated_at
	           FROM reservations r
	           JOIN reservation_users ru ON ru.reservation_id = r.id
	           WHERE ru.user_id = ?
	             AND r.state NOT IN ('CANCELLED', 'CHECKED_OUT')
	           ORDER BY r.starts_at`
	return r.queryReservations(ctx, q, userID)
}

// UpdateStateCAS transitions a reservation's state with a compare-and-set
// on the current value. It returns true when the row was updated and false
// when the stored state no longer matched `from` — which is how two
// requests racing to expire the same reservation both succeed without
// error, converging on the same terminal state.
func (r *ReservationRepo) UpdateStateCAS(ctx context.Context, id uint64, from, to model.ReservationState) (bool, error) {
	const q = `UPDATE reservations SET state = ?, updated_at = UTC_TIMESTAMP() WHERE id = ? AND state = ?`
	result, err := r.db.ExecContext(ctx, q, string(to), id, string(from))
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// queryReservations runs a reservation SELECT and loads seat and user link
// rows for every result in two follow-up bulk queries.
func (r *ReservationRepo) queryReservations(ctx context.Context, query string, args ...interface{}) ([]*model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.populateLinks(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*model.Reservation, error) {
	var res model.Reservation
	var start, end time.Time
	var state string
	var roomID sql.NullInt64
	if err := row.Scan(&res.ID, &start, &end, &state, &res.Walkin, &roomID, &res.CreatedAt, &res.UpdatedAt); err != nil {
		return nil, err
	}
	res.Range = model.TimeRange{Start: start.UTC(), End: end.UTC()}
	res.State = model.ReservationState(state)
	if roomID.Valid {
		rid := uint64(roomID.Int64)
		res.RoomID = &rid
	}
	res.UserIDs = []uint64{}
	res.SeatIDs = []uint64{}
	return &res, nil
}

// populateLinks fills UserIDs and SeatIDs for every reservation in one
// query per link table.
func (r *ReservationRepo) populateLinks(ctx context.Context, list []*model.Reservation) error {
	if len(list) == 0 {
		return nil
	}
	index := make(map[uint64]*model.Reservation, len(list))
	args := make([]interface{}, 0, len(list))
	for _, res := range list {
		index[res.ID] = res
		args = append(args, res.ID)
	}
	ph := placeholders(len(list))
	userQ := `SELECT reservation_id, user_id FROM reservation_users WHERE reservation_id IN (` + ph + `) ORDER BY reservation_id, user_id`
	if err := r.appendLinks(ctx, userQ, args, func(res *model.Reservation, id uint64) {
		res.UserIDs = append(res.UserIDs, id)
	}, index); err != nil {
		return err
	}
	seatQ := `SELECT reservation_id, seat_id FROM reservation_seats WHERE reservation_id IN (` + ph + `) ORDER BY reservation_id, seat_id`
	return r.appendLinks(ctx, seatQ, args, func(res *model.Reservation, id uint64) {
		res.SeatIDs = append(res.SeatIDs, id)
	}, index)
}

func (r *ReservationRepo) appendLinks(ctx context.Context, query string, args []interface{}, add func(*model.Reservation, uint64), index map[uint64]*model.Reservation) error {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var resID, linkID uint64
		if err := rows.Scan(&resID, &linkID); err != nil {
			return err
		}
		if res, ok := index[resID]; ok {
			add(res, linkID)
		}
	}
	return rows.Err()
}

// placeholders returns n comma-separated "?" markers for IN clauses.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
