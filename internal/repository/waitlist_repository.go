package repository

import (
	"context"
	"database/sql"

	"github.com/studyhive/seatbook/internal/model"
)

// WaitlistRepo provides access to waitlist entries.  Entries are
// counted per seat regardless of date window or slot; the count only
// badges a seat as waitlisted for later viewers.
type WaitlistRepo struct {
	db *sql.DB
}

// NewWaitlistRepo returns a WaitlistRepo bound to the given database.
func NewWaitlistRepo(db *sql.DB) *WaitlistRepo { return &WaitlistRepo{db: db} }

// CountBySeats returns the number of waitlist entries per seat for the
// given candidate seats.  Seats without entries are absent from the map.
func (r *WaitlistRepo) CountBySeats(ctx context.Context, seatIDs []uint64) (map[uint64]int, error) {
	counts := make(map[uint64]int, len(seatIDs))
	if len(seatIDs) == 0 {
		return counts, nil
	}
	q := `SELECT seat_id, COUNT(*)
	      FROM waitlist
	      WHERE seat_id IN (` + placeholders(len(seatIDs)) + `)
	      GROUP BY seat_id`
	args := make([]interface{}, 0, len(seatIDs))
	for _, id := range seatIDs {
		args = append(args, id)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			seatID uint64
			n      int
		)
		if err := rows.Scan(&seatID, &n); err != nil {
			return nil, err
		}
		counts[seatID] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// CreateTx inserts a waitlist entry inside an existing transaction and
// fills in its ID.
func (r *WaitlistRepo) CreateTx(ctx context.Context, tx *sql.Tx, e *model.WaitlistEntry) error {
	const q = `INSERT INTO waitlist (seat_id, user_id, slot) VALUES (?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, e.SeatID, e.UserID, e.Slot)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// WaitlistDetail is a waitlist entry joined with seat and member
// identity for the admin view.
type WaitlistDetail struct {
	ID         uint64 `json:"id"`
	SeatNumber uint32 `json:"seat_number"`
	UserName   string `json:"user_name"`
	UserEmail  string `json:"user_email"`
	Slot       string `json:"slot"`
	CreatedAt  string `json:"created_at"`
}

// ListDetailed returns all waitlist entries with seat and user info,
// oldest first (insertion order is the only ordering the waitlist has).
func (r *WaitlistRepo) ListDetailed(ctx context.Context) ([]WaitlistDetail, error) {
	const q = `SELECT w.id, s.seat_number, u.name, u.email, w.slot, w.created_at
	           FROM waitlist w
	           JOIN seats s ON s.id = w.seat_id
	           JOIN users u ON u.id = w.user_id
	           ORDER BY w.created_at`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []WaitlistDetail
	for rows.Next() {
		var d WaitlistDetail
		if err := rows.Scan(&d.ID, &d.SeatNumber, &d.UserName, &d.UserEmail, &d.Slot, &d.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
