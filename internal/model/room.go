package model

import "time"

// Room is a bookable space in the coworking facility. Seats belong to
// exactly one room. Rooms marked Reservable may be booked as a whole
// (group study rooms); rooms that are not reservable only offer their
// individual seats.
//
// Fields:
//  ID        – primary key identifier.
//  Nickname  – display name (e.g. "Pair Programming Pod 1").
//  Building  – building the room is located in.
//  RoomNo    – room number within the building.
//  Capacity  – maximum occupancy.
//  Reservable – whether the whole room can be reserved.
type Room struct {
	ID         uint64    `json:"id"`
	Nickname   string    `json:"nickname"`
	Building   string    `json:"building"`
	RoomNo     string    `json:"room_no"`
	Capacity   int       `json:"capacity"`
	Reservable bool      `json:"reservable"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}
