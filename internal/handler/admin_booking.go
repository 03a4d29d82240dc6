package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studyhive/seatbook/internal/model"
	"github.com/studyhive/seatbook/internal/queue"
	"github.com/studyhive/seatbook/internal/repository"
	queuepub "github.com/studyhive/seatbook/internal/service"
)

// AdminBookingHandler implements the front-desk workflow: list,
// approve, record payment, release seat, inspect the waitlist.
type AdminBookingHandler struct {
	Bookings     *repository.BookingRepo
	Seats        *repository.SeatRepo
	Users        *repository.UserRepo
	Waitlist     *repository.WaitlistRepo
	TxRepo       *repository.TransactionRepo
}

func NewAdminBookingHandler(b *repository.BookingRepo, s *repository.SeatRepo, u *repository.UserRepo, w *repository.WaitlistRepo, t *repository.TransactionRepo) *AdminBookingHandler {
	return &AdminBookingHandler{Bookings: b, Seats: s, Users: u, Waitlist: w, TxRepo: t}
}

func paramID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// List returns bookings filtered by ?status= and ?payment=.
func (h *AdminBookingHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Bookings.ListForAdmin(ctx, c.QueryParam("status"), c.QueryParam("payment"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if list == nil {
		list = []repository.BookingDetail{}
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": list})
}

// Approve confirms a pending booking and publishes booking.approved.
// Publishing is best-effort: the approval stands even when the broker
// is unreachable.
func (h *AdminBookingHandler) Approve(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Bookings.Approve(ctx, id); err != nil {
		switch err {
		case repository.ErrBookingNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking is not pending"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}

	b, err := h.Bookings.GetByID(ctx, id)
	if err == nil {
		ev := queue.BookingApprovedEvent{
			BookingID:   b.ID,
			UserID:      b.UserID,
			Category:    b.Category,
			Duration:    b.DurationType,
			StartDate:   b.MembershipStartDate,
			EndDate:     b.MembershipEndDate,
			MonthlyCost: b.MonthlyCost,
			TotalCost:   b.MonthlyCost * b.DurationMonths,
			ApprovedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		if b.Slot.Valid {
			ev.Slot = b.Slot.String
		}
		if u, err := h.Users.GetByID(ctx, b.UserID); err == nil {
			ev.UserName = u.Name
		}
		if b.SeatID.Valid {
			if seat, err := h.Seats.GetByID(ctx, uint64(b.SeatID.Int64)); err == nil {
				ev.SeatNumber = seat.SeatNumber
			}
		}
		_ = queuepub.PublishBookingApproved(ctx, ev)
	}

	return c.JSON(http.StatusOK, echo.Map{"booking_id": id, "status": model.BookingConfirmed})
}

type paymentReq struct {
	Amount int `json:"amount"`
}

// Payment records a front-desk payment: flips payment_status to paid
// and inserts the transaction row in one database transaction.
func (h *AdminBookingHandler) Payment(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req paymentReq
	if err := c.Bind(&req); err != nil || req.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be positive"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Bookings.MarkPaidTx(ctx, tx, id); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking is already paid"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	tr := model.Transaction{
		UserID:    b.UserID,
		BookingID: id,
		Amount:    req.Amount,
		Status:    "completed",
	}
	if err := h.TxRepo.CreateTx(ctx, tx, &tr); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	committed = true

	return c.JSON(http.StatusOK, echo.Map{
		"booking_id":     id,
		"transaction_id": tr.ID,
		"payment_status": model.PaymentPaid,
	})
}

// Release frees a seat by truncating the booking's window at the
// current instant.  The row stays for auditing; the availability
// resolver stops seeing it for any future window immediately.
func (h *AdminBookingHandler) Release(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Bookings.TruncateEnd(ctx, id, time.Now().UTC()); err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"booking_id": id, "released": true})
}

// Transactions returns the payment history of one booking, newest
// first, so the front desk can audit what has been collected.
func (h *AdminBookingHandler) Transactions(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Bookings.GetByID(ctx, id); err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	list, err := h.TxRepo.ListByBooking(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	rows := make([]echo.Map, 0, len(list))
	for _, t := range list {
		rows = append(rows, echo.Map{
			"id":         t.ID,
			"amount":     t.Amount,
			"status":     t.Status,
			"created_at": t.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"booking_id": id, "transactions": rows})
}

// WaitlistList returns every waitlist entry with seat and member info.
func (h *AdminBookingHandler) WaitlistList(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Waitlist.ListDetailed(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if list == nil {
		list = []repository.WaitlistDetail{}
	}
	return c.JSON(http.StatusOK, echo.Map{"waitlist": list})
}
