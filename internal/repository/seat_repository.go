package repository // repository defines data access for seats

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"

	"github.com/studyhive/seatbook/internal/model"
)

// SeatRepo provides methods to work with seats in the database.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// ListByNumberRange retrieves seats whose number falls inside the
// inclusive range, ordered by seat number.  This is how the
// availability resolver's candidate pool is fetched.
func (r *SeatRepo) ListByNumberRange(ctx context.Context, min, max uint32) ([]model.Seat, error) {
	const q = `SELECT id, seat_number, created_at
	           FROM seats
	           WHERE seat_number BETWEEN ? AND ?
	           ORDER BY seat_number`
	rows, err := r.db.QueryContext(ctx, q, min, max)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.SeatNumber, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a seat by its id.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	const q = `SELECT id, seat_number, created_at FROM seats WHERE id = ?`
	var s model.Seat
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.SeatNumber, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetByNumber retrieves a seat by its seat number.
func (r *SeatRepo) GetByNumber(ctx context.Context, number uint32) (*model.Seat, error) {
	const q = `SELECT id, seat_number, created_at FROM seats WHERE seat_number = ?`
	var s model.Seat
	err := r.db.QueryRowContext(ctx, q, number).Scan(&s.ID, &s.SeatNumber, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// EnsureNumbered inserts any missing seats so that numbers 1..max all
// exist.  INSERT IGNORE leaves already-present numbers untouched, so
// the call is idempotent and safe to run at every admin request.
func (r *SeatRepo) EnsureNumbered(ctx context.Context, max uint32) error {
	if max == 0 {
		return nil
	}
	query := `INSERT IGNORE INTO seats (seat_number) VALUES `
	args := make([]interface{}, 0, max)
	for n := uint32(1); n <= max; n++ {
		if n > 1 {
			query += ","
		}
		query += "(?)"
		args = append(args, n)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}
