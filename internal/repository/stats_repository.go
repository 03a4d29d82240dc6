package repository

import (
	"context"
	"database/sql"
)

// DashboardStats is the admin dashboard read model.  Every field comes
// from a single query batch issued on demand, so the numbers are
// mutually consistent instead of drifting across independently polled
// counters.
type DashboardStats struct {
	TotalMembers     int `json:"total_members"`
	ActiveBookings   int `json:"active_bookings"`
	BookedSeats      int `json:"booked_seats"`
	FixedMembers     int `json:"fixed_members"`
	FloatingMembers  int `json:"floating_members"`
	LimitedMembers   int `json:"limited_members"`
	HourlyMembers    int `json:"hourly_members"`
	PendingApprovals int `json:"pending_approvals"`
	UnpaidBookings   int `json:"unpaid_bookings"`
	WaitlistEntries  int `json:"waitlist_entries"`
}

// StatsRepo computes dashboard aggregates.
type StatsRepo struct {
	db *sql.DB
}

// NewStatsRepo returns a StatsRepo bound to the given database.
func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{db: db} }

// Dashboard runs the aggregate query.  "Active" means a confirmed or
// pending booking whose window contains the current instant.
func (r *StatsRepo) Dashboard(ctx context.Context) (DashboardStats, error) {
	var s DashboardStats

	const members = `SELECT COUNT(*) FROM users WHERE role = 'MEMBER' AND is_active = 1`
	if err := r.db.QueryRowContext(ctx, members).Scan(&s.TotalMembers); err != nil {
		return s, err
	}

	// One pass over bookings for every booking-derived counter.
	const bookings = `SELECT
	        COUNT(CASE WHEN status IN ('pending','confirmed')
	                    AND start_time <= NOW() AND NOW() < end_time THEN 1 END),
	        COUNT(DISTINCT CASE WHEN status IN ('pending','confirmed')
	                    AND start_time <= NOW() AND NOW() < end_time THEN seat_id END),
	        COUNT(CASE WHEN category = 'fixed'    AND status = 'confirmed' THEN 1 END),
	        COUNT(CASE WHEN category = 'floating' AND status = 'confirmed' THEN 1 END),
	        COUNT(CASE WHEN category = 'limited'  AND status = 'confirmed' THEN 1 END),
	        COUNT(CASE WHEN category = 'hourly'   AND status = 'confirmed' THEN 1 END),
	        COUNT(CASE WHEN status = 'pending' THEN 1 END),
	        COUNT(CASE WHEN payment_status = 'pending' THEN 1 END)
	    FROM bookings`
	if err := r.db.QueryRowContext(ctx, bookings).Scan(
		&s.ActiveBookings, &s.BookedSeats,
		&s.FixedMembers, &s.FloatingMembers, &s.LimitedMembers, &s.HourlyMembers,
		&s.PendingApprovals, &s.UnpaidBookings,
	); err != nil {
		return s, err
	}

	const waitlist = `SELECT COUNT(*) FROM waitlist`
	if err := r.db.QueryRowContext(ctx, waitlist).Scan(&s.WaitlistEntries); err != nil {
		return s, err
	}
	return s, nil
}
