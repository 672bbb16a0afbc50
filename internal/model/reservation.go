package model

import "time"

// ReservationState enumerates the lifecycle states of a reservation. The
// set is closed: every stored state is one of these values and every state
// change goes through Transition or AdvanceAsOf, never through scattered
// string comparisons.
type ReservationState string

const (
	StateDraft      ReservationState = "DRAFT"
	StateConfirmed  ReservationState = "CONFIRMED"
	StateCheckedIn  ReservationState = "CHECKED_IN"
	StateCheckedOut ReservationState = "CHECKED_OUT"
	StateCancelled  ReservationState = "CANCELLED"
)

// ValidState reports whether s is one of the known reservation states.
func ValidState(s ReservationState) bool {
	switch s {
	case StateDraft, StateConfirmed, StateCheckedIn, StateCheckedOut, StateCancelled:
		return true
	}
	return false
}

// Terminal reports whether a state permits no further transitions.
func (s ReservationState) Terminal() bool {
	return s == StateCheckedOut || s == StateCancelled
}

// Active reports whether a reservation in this state still occupies its
// seats. Active reservations are the busy-interval source for availability.
func (s ReservationState) Active() bool {
	return !s.Terminal()
}

// Reservation records a booking of one or more seats by a party of users
// over a time range. Rows exist from the moment a draft is created so that
// availability queries see drafted seats as held.
//
// Fields:
//  ID        – primary key identifier.
//  Range     – reserved interval [start, end).
//  State     – lifecycle state, see ReservationState.
//  Walkin    – whether the reservation started as a walk-in.
//  RoomID    – room booked as a whole, if any (nullable).
//  UserIDs   – party members, resolved via reservation_users.
//  SeatIDs   – seats held, resolved via reservation_seats.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Reservation struct {
	ID        uint64           `json:"id"`
	Range     TimeRange        `json:"range"`
	State     ReservationState `json:"state"`
	Walkin    bool             `json:"walkin"`
	RoomID    *uint64          `json:"room_id,omitempty"`
	UserIDs   []uint64         `json:"user_ids"`
	SeatIDs   []uint64         `json:"seat_ids"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// HasUser reports whether the given user is a member of the party.
func (r *Reservation) HasUser(userID uint64) bool {
	for _, id := range r.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Transition applies a user-requested state change and returns the
// resulting state plus whether anything changed. Only the transitions below
// take effect; everything else is a deliberate no-op so that redundant
// client requests (double-clicking "confirm", cancelling twice) never
// error:
//
//	DRAFT      -> CONFIRMED
//	DRAFT      -> CANCELLED
//	CONFIRMED  -> CANCELLED
//	CHECKED_IN -> CHECKED_OUT
//
// Terminal states never change.
func Transition(current, requested ReservationState) (ReservationState, bool) {
	if current.Terminal() {
		return current, false
	}
	switch current {
	case StateDraft:
		if requested == StateConfirmed || requested == StateCancelled {
			return requested, true
		}
	case StateConfirmed:
		if requested == StateCancelled {
			return requested, true
		}
	case StateCheckedIn:
		if requested == StateCheckedOut {
			return requested, true
		}
	}
	return current, false
}

// AdvanceAsOf applies the time-based transitions to the reservation's state
// as of the instant now and returns the resulting state plus whether it
// changed. It is pure: the caller persists the change. Rules:
//
//   - CHECKED_IN reservations whose interval has ended are checked out.
//   - DRAFT reservations unconfirmed past draftTimeout are cancelled.
//   - CONFIRMED reservations not checked in within checkinTimeout after
//     their start are cancelled.
//
// Running the sweep again on an already-advanced reservation is a no-op,
// so redundant concurrent sweeps converge on the same state.
func (r *Reservation) AdvanceAsOf(now time.Time, draftTimeout, checkinTimeout time.Duration) (ReservationState, bool) {
	switch r.State {
	case StateCheckedIn:
		if !r.Range.End.After(now) {
			return StateCheckedOut, true
		}
	case StateDraft:
		if !r.CreatedAt.Add(draftTimeout).After(now) {
			return StateCancelled, true
		}
	case StateConfirmed:
		if !r.Range.Start.Add(checkinTimeout).After(now) {
			return StateCancelled, true
		}
	}
	return r.State, false
}
