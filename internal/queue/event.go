// Package queue defines message payloads exchanged over the message broker
// and the background consumer that drains them.
package queue

// BookingApprovedEvent is published when an admin approves a booking.
// It carries enough for downstream consumers to log or notify without
// touching the primary database.
type BookingApprovedEvent struct {
	BookingID   uint64 `json:"booking_id"`
	UserID      uint64 `json:"user_id"`
	UserName    string `json:"user_name"`
	SeatNumber  uint32 `json:"seat_number,omitempty"`
	Category    string `json:"category"`
	Duration    string `json:"duration"`
	Slot        string `json:"slot,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	MonthlyCost int    `json:"monthly_cost"`
	TotalCost   int    `json:"total_cost"`
	ApprovedAt  string `json:"approved_at"`
}
