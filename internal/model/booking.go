package model

import (
	"database/sql"
	"time"
)

// Booking statuses.  Status and PaymentStatus are independent columns:
// an admin confirms a booking and records its payment as two separate
// actions, in either order.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"

	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// Booking is a member's claim on a seat (or, for floating memberships,
// on the space itself) over a date window.  Hourly rows carry a slot;
// full-membership rows carry a null slot except limited memberships,
// which record their shift there.
//
// Fields:
//  ID                  – primary key identifier.
//  UserID              – member who requested the booking.
//  SeatID              – reserved seat; null for floating/limited memberships.
//  Category            – fixed | floating | limited | hourly.
//  DurationType        – 6hr | 12hr | 24hr | membership.
//  Slot                – morning/afternoon/evening/day/night/full, or null.
//  StartTime, EndTime  – instant window used for overlap tests.
//  MembershipStart/End – calendar dates shown on invoices.
//  Status              – pending until an admin confirms.
//  PaymentStatus       – pending until an admin records payment.
//  MonthlyCost         – rupees per month at booking time.
//  DurationMonths      – inclusive month count of the window.
//  Description         – free-form summary shown in admin lists.
type Booking struct {
	ID                  uint64         // bookings.id
	UserID              uint64         // bookings.user_id
	SeatID              sql.NullInt64  // bookings.seat_id
	Category            string         // bookings.category
	DurationType        string         // bookings.duration_type
	Slot                sql.NullString // bookings.slot
	StartTime           time.Time      // bookings.start_time
	EndTime             time.Time      // bookings.end_time
	MembershipStartDate string         // bookings.membership_start_date (YYYY-MM-DD)
	MembershipEndDate   string         // bookings.membership_end_date (YYYY-MM-DD)
	Status              string         // bookings.status
	PaymentStatus       string         // bookings.payment_status
	MonthlyCost         int            // bookings.monthly_cost
	DurationMonths      int            // bookings.duration_months
	Description         string         // bookings.description
	CreatedAt           time.Time      // bookings.created_at
	UpdatedAt           time.Time      // bookings.updated_at
}
