package model

import "time"

// Transaction is a payment recorded against a booking by an
// administrator.  Payments are entered manually at the front desk; the
// service does not talk to a payment gateway.
type Transaction struct {
	ID        uint64    // transactions.id
	UserID    uint64    // transactions.user_id
	BookingID uint64    // transactions.booking_id
	Amount    int       // transactions.amount
	Status    string    // transactions.status (completed)
	CreatedAt time.Time // transactions.created_at
}
