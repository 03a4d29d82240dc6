package model

import "time"

// Seat is one physical desk in the study space.  Seats are identified
// by their number, 1..50, which also determines the pool the seat
// serves: numbers 1-13 are reserved for 24-hour members, 14-50 for the
// 6-hour and 12-hour slots.  The pool is derived from the number and
// never stored.
//
// Fields:
//  ID         – primary key identifier.
//  SeatNumber – position within the space (unique).
//  CreatedAt  – creation timestamp.
type Seat struct {
	ID         uint64    // seats.id
	SeatNumber uint32    // seats.seat_number
	CreatedAt  time.Time // seats.created_at
}
