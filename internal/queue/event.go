// Package queue defines the message payloads exchanged over the broker and
// the background consumer that records reservation lifecycle activity.
package queue

// ReservationStateEvent is published whenever a reservation reaches a
// noteworthy state (confirmed, checked in). It carries enough context for
// downstream consumers to log, notify or feed analytics without querying
// the primary database.
type ReservationStateEvent struct {
	EventID       string   `json:"event_id"`
	ReservationID uint64   `json:"reservation_id"`
	State         string   `json:"state"`
	Walkin        bool     `json:"walkin"`
	UserIDs       []uint64 `json:"user_ids"`
	SeatIDs       []uint64 `json:"seat_ids"`
	StartsAt      string   `json:"starts_at"`
	EndsAt        string   `json:"ends_at"`
	OccurredAt    string   `json:"occurred_at"`
}
