// Package service implements the coworking reservation engine: policy
// lookups, operating hours scheduling, seat availability computation and
// the reservation lifecycle state machine. Handlers stay thin and delegate
// here; repositories stay dumb and only move rows.
package service

import "errors"

// ReservationError marks expected, recoverable business failures raised by
// the reservation engine. Handlers translate these into 4xx responses with
// the error's message; they are never logged as server faults.
type ReservationError struct {
	msg string
}

func (e *ReservationError) Error() string { return e.msg }

// newReservationError builds a typed domain error. All instances are
// package-level sentinels so callers can match them with errors.Is.
func newReservationError(msg string) *ReservationError { return &ReservationError{msg: msg} }

var (
	// ErrNoUsers is returned when a reservation request names no users.
	ErrNoUsers = newReservationError("reservation must include at least one user")

	// ErrNoSeats is returned when a reservation request names no seats.
	ErrNoSeats = newReservationError("reservation must include at least one seat")

	// ErrUnknownUser is returned when a reservation party names a user that
	// does not exist or whose account is inactive.
	ErrUnknownUser = newReservationError("reservation includes an unknown or inactive user")

	// ErrMultiUserNotSupported is returned for party lists with more than
	// one distinct user. Multi-user reservations are a known gap with
	// their own future design, not silently extended semantics.
	ErrMultiUserNotSupported = newReservationError("reservations for multiple users are not supported")

	// ErrAmendmentNotSupported is returned when a change request tries to
	// move a reservation's time, seats or party in place.
	ErrAmendmentNotSupported = newReservationError("changing reservation time, seats or users is not supported")

	// ErrNoSeatsAvailable is returned when none of the requested seats has
	// free time covering the requested start.
	ErrNoSeatsAvailable = newReservationError("no seats available for the requested time")

	// ErrConflictingReservation is returned when a member of the party
	// already holds an active reservation overlapping the requested range.
	ErrConflictingReservation = newReservationError("user already has a reservation overlapping this time")

	// ErrOutsideReservationWindow is returned when a future reservation
	// starts beyond the advance booking window.
	ErrOutsideReservationWindow = newReservationError("reservation start is beyond the advance booking window")

	// ErrNotCheckinable is returned when staff try to check in a
	// reservation that is not confirmed.
	ErrNotCheckinable = newReservationError("only confirmed reservations can be checked in")

	// ErrOverlappingHours is returned when new operating hours would
	// overlap an existing span.
	ErrOverlappingHours = newReservationError("operating hours cannot overlap an existing span")
)

// ErrUnauthorized is returned by the Authorizer when the subject lacks the
// required permission. Handlers translate it into HTTP 403.
var ErrUnauthorized = errors.New("unauthorized")
