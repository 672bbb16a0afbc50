package model

import "time"

// OperatingHours is one persisted span during which the coworking facility
// is open. Availability is computed from these spans, so records for the
// facility must never overlap one another; the repository enforces that at
// insert time.
//
// Fields:
//  ID    – primary key identifier.
//  Range – open interval [start, end).
type OperatingHours struct {
	ID        uint64    `json:"id"`
	Range     TimeRange `json:"range"`
	CreatedAt time.Time `json:"-"`
}
