package repository

import (
	"context"
	"database/sql"

	"github.com/studyhive/seatbook/internal/model"
)

// TransactionRepo records payments entered by administrators.
type TransactionRepo struct {
	db *sql.DB
}

// NewTransactionRepo returns a TransactionRepo bound to the given database.
func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{db: db} }

// CreateTx inserts a completed payment row inside an existing
// transaction; it commits or rolls back together with the booking's
// payment_status update.
func (r *TransactionRepo) CreateTx(ctx context.Context, tx *sql.Tx, t *model.Transaction) error {
	const q = `INSERT INTO transactions (user_id, booking_id, amount, status) VALUES (?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, t.UserID, t.BookingID, t.Amount, t.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// ListByBooking returns all payments recorded against one booking,
// newest first.
func (r *TransactionRepo) ListByBooking(ctx context.Context, bookingID uint64) ([]model.Transaction, error) {
	const q = `SELECT id, user_id, booking_id, amount, status, created_at
	           FROM transactions
	           WHERE booking_id = ?
	           ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.BookingID, &t.Amount, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
