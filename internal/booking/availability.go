package booking

import (
	"errors"
	"time"
)

// Request is the tuple a booking wizard submits when it wants seat
// availability: a half-open date window [From, To), the duration tier
// and, for hourly tiers, the chosen slot.
type Request struct {
	From     time.Time
	To       time.Time
	Duration Duration
	Slot     Slot
}

// Validation failures are reported before any store access happens.
var (
	ErrMissingDates   = errors.New("select both dates")
	ErrDatesInverted  = errors.New("end date must not be before start date")
	ErrSlotRequired   = errors.New("slot is required for hourly durations")
	ErrSlotNotAllowed = errors.New("slot is not valid for this duration")
)

// Validate checks the request and normalizes the slot: 24-hour requests
// always evaluate as the full slot regardless of what the caller sent.
func (r *Request) Validate() error {
	if r.From.IsZero() || r.To.IsZero() {
		return ErrMissingDates
	}
	if r.To.Before(r.From) {
		return ErrDatesInverted
	}
	switch r.Duration {
	case Duration24Hr:
		r.Slot = SlotFull
		return nil
	case Duration6Hr, Duration12Hr:
		if r.Slot == "" {
			return ErrSlotRequired
		}
		if !ValidSlot(r.Duration, r.Slot) {
			return ErrSlotNotAllowed
		}
		return nil
	}
	return ErrUnknownDuration
}

// SeatInfo is the slice of a seat the resolver needs.
type SeatInfo struct {
	ID     uint64
	Number uint32
}

// ActiveBooking is an existing pending or confirmed booking on a
// candidate seat, as loaded by the repository layer.
type ActiveBooking struct {
	SeatID       uint64
	Duration     Duration
	Slot         Slot
	StartTime    time.Time
	EndTime      time.Time
	OccupantName string
}

// SeatStatus classifies one seat for the requested window and slot.
// Available and Waitlisted are independent: a seat with no conflicting
// booking but a lingering waitlist entry reports both true.
type SeatStatus struct {
	SeatID     uint64 `json:"seat_id"`
	SeatNumber uint32 `json:"seat_number"`
	Available  bool   `json:"available"`
	Waitlisted bool   `json:"waitlisted"`
	Occupant   string `json:"occupant,omitempty"`
}

// overlapsWindow is the half-open interval test: a booking ending
// exactly when the request starts does not conflict.
func overlapsWindow(b ActiveBooking, from, to time.Time) bool {
	return b.StartTime.Before(to) && from.Before(b.EndTime)
}

// Conflicts decides whether an existing booking blocks the request on
// the same seat.  Full-day exclusivity is checked first: a 24-hour
// request, a 24-hour existing booking or an existing full slot conflict
// with everything.  Otherwise both sides are hourly and the slot matrix
// decides.  The write path re-runs this predicate inside its
// transaction after locking the seat's bookings.
func Conflicts(req Request, b ActiveBooking) bool {
	if !overlapsWindow(b, req.From, req.To) {
		return false
	}
	if req.Duration == Duration24Hr || b.Duration == Duration24Hr || b.Slot == SlotFull {
		return true
	}
	return Overlaps(req.Slot, b.Slot)
}

// Resolve classifies every candidate seat against the active bookings
// and waitlist counts.  It is a pure function: calling it twice with
// the same inputs yields the same output.  Bookings are inspected in
// the order given and evaluation stops at the first conflict, whose
// occupant name is reported.  Seats outside the request's pool are
// skipped so callers cannot leak a full-day seat into an hourly result
// even when the fetch was too broad.
func Resolve(req Request, seats []SeatInfo, bookings []ActiveBooking, waitlist map[uint64]int) []SeatStatus {
	bySeat := make(map[uint64][]ActiveBooking, len(seats))
	for _, b := range bookings {
		bySeat[b.SeatID] = append(bySeat[b.SeatID], b)
	}

	statuses := make([]SeatStatus, 0, len(seats))
	for _, seat := range seats {
		if !InPool(req.Duration, seat.Number) {
			continue
		}
		st := SeatStatus{
			SeatID:     seat.ID,
			SeatNumber: seat.Number,
			Available:  true,
			Waitlisted: waitlist[seat.ID] > 0,
		}
		for _, b := range bySeat[seat.ID] {
			if Conflicts(req, b) {
				st.Available = false
				st.Occupant = b.OccupantName
				break
			}
		}
		statuses = append(statuses, st)
	}
	return statuses
}
