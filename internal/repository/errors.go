// Package repository defines raw-SQL data access for the booking
// service, plus sentinel errors shared across repositories so handlers
// can map failure scenarios to HTTP codes.  ErrSeatTaken in particular
// marks the race where another request claimed the same seat and window
// between the availability read and the booking insert; handlers
// translate it into a 409 telling the member to retry.
package repository

import "errors"

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// ErrBookingNotFound is returned when a booking lookup yields no rows.
var ErrBookingNotFound = errors.New("booking not found")

// ErrSeatTaken is returned when the transactional re-check finds a
// conflicting active booking that was not visible at availability time.
var ErrSeatTaken = errors.New("seat no longer available, please retry")

// ErrConflict is returned when an update cannot proceed because of
// existing state, such as approving an already-confirmed booking.
// Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")
