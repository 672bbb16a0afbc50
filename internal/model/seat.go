package model

import "time"

// Seat describes a physical seat in a coworking room. Seats are read-only
// input to the reservation engine: they are created by administrators and
// queried by availability calculations, never mutated by bookings.
//
// Fields:
//  ID         – primary key identifier.
//  Title      – human-readable name (e.g. "Standing Desk 4").
//  Shorthand  – short label shown on the seat map (e.g. "SD4").
//  Reservable – whether the seat may be booked in advance; walk-ins may
//               use non-reservable seats as well.
//  HasMonitor – whether the seat has an external monitor.
//  SitStand   – whether the desk is height-adjustable.
//  X, Y       – position of the seat on the room's floor plan.
//  RoomID     – room this seat belongs to.
type Seat struct {
	ID         uint64    `json:"id"`
	Title      string    `json:"title"`
	Shorthand  string    `json:"shorthand"`
	Reservable bool      `json:"reservable"`
	HasMonitor bool      `json:"has_monitor"`
	SitStand   bool      `json:"sit_stand"`
	X          int       `json:"x"`
	Y          int       `json:"y"`
	RoomID     uint64    `json:"room_id"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

// SeatAvailability pairs a seat with its free time ranges for a queried
// window. Seats with no free ranges are omitted from availability
// responses, so Availability is always non-empty in results.
type SeatAvailability struct {
	Seat         Seat        `json:"seat"`
	Availability []TimeRange `json:"availability"`
}
