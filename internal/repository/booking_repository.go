package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/studyhive/seatbook/internal/booking"
	"github.com/studyhive/seatbook/internal/model"
)

// BookingRepo provides CRUD operations for bookings.  All timestamp
// columns are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle for transaction-spanning handlers.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const activeStatuses = `'pending','confirmed'`

// ListActiveOverlapping loads every pending or confirmed booking on the
// given seats whose [start_time, end_time) window overlaps [from, to),
// joined with the occupant's display name.  The overlap test is
// half-open: a booking ending exactly at `from` does not match.
func (r *BookingRepo) ListActiveOverlapping(ctx context.Context, seatIDs []uint64, from, to time.Time) ([]booking.ActiveBooking, error) {
	if len(seatIDs) == 0 {
		return nil, nil
	}
	q := `SELECT b.seat_id, b.duration_type, COALESCE(b.slot, ''), b.start_time, b.end_time, u.name
	      FROM bookings b
	      JOIN users u ON u.id = b.user_id
	      WHERE b.seat_id IN (` + placeholders(len(seatIDs)) + `)
	        AND b.status IN (` + activeStatuses + `)
	        AND b.start_time < ? AND ? < b.end_time`
	args := make([]interface{}, 0, len(seatIDs)+2)
	for _, id := range seatIDs {
		args = append(args, id)
	}
	args = append(args, to, from)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []booking.ActiveBooking
	for rows.Next() {
		var (
			b        booking.ActiveBooking
			duration string
			slot     string
		)
		if err := rows.Scan(&b.SeatID, &duration, &slot, &b.StartTime, &b.EndTime, &b.OccupantName); err != nil {
			return nil, err
		}
		b.Duration = booking.Duration(duration)
		b.Slot = booking.Slot(slot)
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListActiveOverlappingTx is the locking variant used by the write
// path: it takes FOR UPDATE row locks on the seat's active bookings so
// a concurrent insert on the same seat serializes behind this
// transaction.  This closes the read-then-write race between two
// members who both saw the seat as free.
func (r *BookingRepo) ListActiveOverlappingTx(ctx context.Context, tx *sql.Tx, seatID uint64, from, to time.Time) ([]booking.ActiveBooking, error) {
	const q = `SELECT b.seat_id, b.duration_type, COALESCE(b.slot, ''), b.start_time, b.end_time, ''
	           FROM bookings b
	           WHERE b.seat_id = ?
	             AND b.status IN (` + activeStatuses + `)
	             AND b.start_time < ? AND ? < b.end_time
	           FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, seatID, to, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []booking.ActiveBooking
	for rows.Next() {
		var (
			b        booking.ActiveBooking
			duration string
			slot     string
		)
		if err := rows.Scan(&b.SeatID, &duration, &slot, &b.StartTime, &b.EndTime, &b.OccupantName); err != nil {
			return nil, err
		}
		b.Duration = booking.Duration(duration)
		b.Slot = booking.Slot(slot)
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateTx inserts a booking inside an existing transaction and fills
// in its ID.  When two rechecks on an empty seat both pass, the two
// inserts collide on each other's gap locks instead of seeing each
// other's rows; that collision comes back as ErrSeatTaken so the loser
// gets the same 409 as one whose recheck saw the winner.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings
	           (user_id, seat_id, category, duration_type, slot,
	            start_time, end_time, membership_start_date, membership_end_date,
	            status, payment_status, monthly_cost, duration_months, description)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		b.UserID, b.SeatID, b.Category, b.DurationType, b.Slot,
		b.StartTime, b.EndTime, b.MembershipStartDate, b.MembershipEndDate,
		b.Status, b.PaymentStatus, b.MonthlyCost, b.DurationMonths, b.Description)
	if err != nil {
		if raceErr(err) {
			return ErrSeatTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// BookingDetail is a booking joined with its seat number and occupant
// identity, as shown in member and admin lists.
type BookingDetail struct {
	ID                  uint64  `json:"id"`
	UserID              uint64  `json:"user_id"`
	UserName            string  `json:"user_name"`
	UserEmail           string  `json:"user_email"`
	SeatNumber          *uint32 `json:"seat_number,omitempty"`
	Category            string  `json:"category"`
	DurationType        string  `json:"duration_type"`
	Slot                string  `json:"slot,omitempty"`
	MembershipStartDate string  `json:"membership_start_date"`
	MembershipEndDate   string  `json:"membership_end_date"`
	Status              string  `json:"status"`
	PaymentStatus       string  `json:"payment_status"`
	MonthlyCost         int     `json:"monthly_cost"`
	DurationMonths      int     `json:"duration_months"`
	Description         string  `json:"description,omitempty"`
}

const detailColumns = `b.id, b.user_id, u.name, u.email, s.seat_number,
	       b.category, b.duration_type, COALESCE(b.slot, ''),
	       b.membership_start_date, b.membership_end_date,
	       b.status, b.payment_status, b.monthly_cost, b.duration_months,
	       COALESCE(b.description, '')`

func scanDetail(rows *sql.Rows) (BookingDetail, error) {
	var (
		d      BookingDetail
		seatNo sql.NullInt64
	)
	err := rows.Scan(&d.ID, &d.UserID, &d.UserName, &d.UserEmail, &seatNo,
		&d.Category, &d.DurationType, &d.Slot,
		&d.MembershipStartDate, &d.MembershipEndDate,
		&d.Status, &d.PaymentStatus, &d.MonthlyCost, &d.DurationMonths,
		&d.Description)
	if err != nil {
		return d, err
	}
	if seatNo.Valid {
		n := uint32(seatNo.Int64)
		d.SeatNumber = &n
	}
	return d, nil
}

// ListByUser returns all bookings created by one member, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	q := `SELECT ` + detailColumns + `
	      FROM bookings b
	      JOIN users u ON u.id = b.user_id
	      LEFT JOIN seats s ON s.id = b.seat_id
	      WHERE b.user_id = ?
	      ORDER BY b.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []BookingDetail
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListForAdmin returns bookings filtered by status and/or payment
// status.  Empty filters match everything.
func (r *BookingRepo) ListForAdmin(ctx context.Context, status, payment string) ([]BookingDetail, error) {
	q := `SELECT ` + detailColumns + `
	      FROM bookings b
	      JOIN users u ON u.id = b.user_id
	      LEFT JOIN seats s ON s.id = b.seat_id`
	var (
		conds []string
		args  []interface{}
	)
	if status != "" {
		conds = append(conds, "b.status = ?")
		args = append(args, status)
	}
	if payment != "" {
		conds = append(conds, "b.payment_status = ?")
		args = append(args, payment)
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY b.created_at DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []BookingDetail
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID loads one booking row.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT id, user_id, seat_id, category, duration_type, slot,
	                  start_time, end_time, membership_start_date, membership_end_date,
	                  status, payment_status, monthly_cost, duration_months,
	                  COALESCE(description, ''), created_at, updated_at
	           FROM bookings WHERE id = ?`
	var b model.Booking
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.UserID, &b.SeatID, &b.Category, &b.DurationType, &b.Slot,
		&b.StartTime, &b.EndTime, &b.MembershipStartDate, &b.MembershipEndDate,
		&b.Status, &b.PaymentStatus, &b.MonthlyCost, &b.DurationMonths,
		&b.Description, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Approve transitions a pending booking to confirmed.  Returns
// ErrBookingNotFound when the row does not exist and ErrConflict when
// it is not pending.
func (r *BookingRepo) Approve(ctx context.Context, id uint64) error {
	const q = `UPDATE bookings
	           SET status = 'confirmed', updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND status = 'pending'`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrConflict
	}
	return nil
}

// MarkPaidTx flips payment_status to paid inside a transaction so the
// matching transaction row commits atomically with it.
func (r *BookingRepo) MarkPaidTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	const q = `UPDATE bookings
	           SET payment_status = 'paid', updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND payment_status = 'pending'`
	res, err := tx.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConflict
	}
	return nil
}

// TruncateEnd releases a seat by cutting the booking's window short at
// the given instant.  The row (and its transactions) survive for
// auditing; the seat becomes available to the resolver immediately
// because the shortened window no longer overlaps future requests.
func (r *BookingRepo) TruncateEnd(ctx context.Context, id uint64, at time.Time) error {
	const q = `UPDATE bookings
	           SET end_time = ?, membership_end_date = DATE(?), updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, at, at, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// raceErr reports whether an insert lost the seat race at the storage
// level: InnoDB resolves two gap-locked rechecks by deadlocking one
// side (error 1213), and a duplicate key (1062) marks the same
// collision on guarded columns.
func raceErr(err error) bool {
	var my *mysql.MySQLError
	if errors.As(err, &my) {
		return my.Number == 1213 || my.Number == 1062
	}
	return false
}

// placeholders builds "?, ?, ..." for IN clauses.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}
