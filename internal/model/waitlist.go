package model

import "time"

// WaitlistEntry records that a member asked for a seat/slot combination
// already occupied by a conflicting booking.  Entries carry no ordering
// beyond insertion and are never promoted automatically; their count is
// used to badge the seat as waitlisted for later viewers.
type WaitlistEntry struct {
	ID        uint64    // waitlist.id
	SeatID    uint64    // waitlist.seat_id
	UserID    uint64    // waitlist.user_id
	Slot      string    // waitlist.slot
	CreatedAt time.Time // waitlist.created_at
}
