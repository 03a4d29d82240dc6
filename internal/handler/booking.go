package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studyhive/seatbook/internal/booking"
	"github.com/studyhive/seatbook/internal/model"
	"github.com/studyhive/seatbook/internal/repository"
)

// BookingHandler implements the member-facing booking flows: the
// hourly wizard (seat + duration + slot) and the membership wizard
// (fixed/floating/limited).
type BookingHandler struct {
	Seats    *repository.SeatRepo
	Bookings *repository.BookingRepo
	Waitlist *repository.WaitlistRepo
}

func NewBookingHandler(s *repository.SeatRepo, b *repository.BookingRepo, w *repository.WaitlistRepo) *BookingHandler {
	return &BookingHandler{Seats: s, Bookings: b, Waitlist: w}
}

type createBookingReq struct {
	SeatNumber uint32 `json:"seat_number"`
	From       string `json:"from"`
	To         string `json:"to"`
	Duration   string `json:"duration"`
	Slot       string `json:"slot"`
	// JoinWaitlist turns a conflicting request into a waitlist entry
	// instead of a 409.  The wizard sets it when the member clicks a
	// seat already shown as occupied.
	JoinWaitlist bool   `json:"join_waitlist"`
	Description  string `json:"description"`
}

type bookingResp struct {
	BookingID   uint64 `json:"booking_id,omitempty"`
	WaitlistID  uint64 `json:"waitlist_id,omitempty"`
	Waitlisted  bool   `json:"waitlisted"`
	SeatNumber  uint32 `json:"seat_number,omitempty"`
	MonthlyCost int    `json:"monthly_cost,omitempty"`
	Months      int    `json:"months,omitempty"`
	TotalCost   int    `json:"total_cost,omitempty"`
	Status      string `json:"status,omitempty"`
}

// Create books a seat through the hourly flow.  Availability is
// re-checked inside the transaction with row locks held, so two
// members racing for the same seat serialize: the loser sees the
// winner's row and gets a 409 (or a waitlist entry when asked for one).
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	dur, err := booking.ParseDuration(req.Duration)
	if err != nil || dur == booking.DurationMembership {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "duration must be 6hr, 12hr or 24hr"})
	}
	from, err := parseDate(req.From)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": booking.ErrMissingDates.Error()})
	}
	to, err := parseDate(req.To)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": booking.ErrMissingDates.Error()})
	}

	resolverReq := booking.Request{From: from, To: to, Duration: dur}
	if req.Slot != "" {
		slot, err := booking.ParseSlot(req.Slot)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		resolverReq.Slot = slot
	}
	if err := resolverReq.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	resolverReq.To = resolverReq.To.AddDate(0, 0, 1) // whole last day

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	seat, err := h.Seats.GetByNumber(ctx, req.SeatNumber)
	if err != nil {
		if err == repository.ErrSeatNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !booking.InPool(dur, seat.SeatNumber) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat is not in the pool for this duration"})
	}

	months := booking.MonthsBetween(from, to)
	total, err := booking.TotalCost(booking.HourlyRate(dur), months)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		desc = fmt.Sprintf("%s %s, seat %d", dur, resolverReq.Slot, seat.SeatNumber)
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

	existing, err := h.Bookings.ListActiveOverlappingTx(ctx, tx, seat.ID, resolverReq.From, resolverReq.To)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	for _, b := range existing {
		if !booking.Conflicts(resolverReq, b) {
			continue
		}
		if !req.JoinWaitlist {
			return c.JSON(http.StatusConflict, echo.Map{"error": repository.ErrSeatTaken.Error()})
		}
		entry := model.WaitlistEntry{SeatID: seat.ID, UserID: userID, Slot: string(resolverReq.Slot)}
		if err := h.Waitlist.CreateTx(ctx, tx, &entry); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		if err := tx.Commit(); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		committed = true
		return c.JSON(http.StatusCreated, bookingResp{
			WaitlistID: entry.ID,
			Waitlisted: true,
			SeatNumber: seat.SeatNumber,
		})
	}

	row := model.Booking{
		UserID:              userID,
		SeatID:              sql.NullInt64{Int64: int64(seat.ID), Valid: true},
		Category:            string(booking.CategoryHourly),
		DurationType:        string(dur),
		Slot:                sql.NullString{String: string(resolverReq.Slot), Valid: true},
		StartTime:           resolverReq.From,
		EndTime:             resolverReq.To,
		MembershipStartDate: from.Format(dateLayout),
		MembershipEndDate:   to.Format(dateLayout),
		Status:              model.BookingPending,
		PaymentStatus:       model.PaymentPending,
		MonthlyCost:         booking.HourlyRate(dur),
		DurationMonths:      months,
		Description:         desc,
	}
	if err := h.Bookings.CreateTx(ctx, tx, &row); err != nil {
		if err == repository.ErrSeatTaken {
			// insert collided with a concurrent winner the recheck
			// could not see yet
			return c.JSON(http.StatusConflict, echo.Map{"error": repository.ErrSeatTaken.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	committed = true

	return c.JSON(http.StatusCreated, bookingResp{
		BookingID:   row.ID,
		SeatNumber:  seat.SeatNumber,
		MonthlyCost: row.MonthlyCost,
		Months:      months,
		TotalCost:   total,
		Status:      row.Status,
	})
}

type createMembershipReq struct {
	Category    string `json:"category"` // fixed | floating | limited
	SeatNumber  uint32 `json:"seat_number,omitempty"`
	From        string `json:"from"`
	To          string `json:"to"`
	Shift       string `json:"shift,omitempty"` // limited: morning | evening
	Description string `json:"description"`
}

// CreateMembership books through the category flow.  Fixed memberships
// claim a seat from the full-day pool with the same transactional
// recheck as the hourly flow; floating and limited memberships hold no
// seat and only need a priced row.
func (h *BookingHandler) CreateMembership(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createMembershipReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	cat, err := booking.ParseCategory(req.Category)
	if err != nil || cat == booking.CategoryHourly {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "category must be fixed, floating or limited"})
	}
	from, err := parseDate(req.From)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": booking.ErrMissingDates.Error()})
	}
	to, err := parseDate(req.To)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": booking.ErrMissingDates.Error()})
	}
	if to.Before(from) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": booking.ErrDatesInverted.Error()})
	}

	var shift booking.Slot
	if cat == booking.CategoryLimited {
		shift, err = booking.ParseSlot(req.Shift)
		if err != nil || (shift != booking.SlotMorning && shift != booking.SlotEvening) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "limited memberships need a morning or evening shift"})
		}
	}

	months := booking.MonthsBetween(from, to)
	total, err := booking.TotalCost(booking.CategoryRate(cat), months)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	start := from
	end := to.AddDate(0, 0, 1)

	row := model.Booking{
		UserID:              userID,
		Category:            string(cat),
		DurationType:        string(booking.DurationMembership),
		StartTime:           start,
		EndTime:             end,
		MembershipStartDate: from.Format(dateLayout),
		MembershipEndDate:   to.Format(dateLayout),
		Status:              model.BookingPending,
		PaymentStatus:       model.PaymentPending,
		MonthlyCost:         booking.CategoryRate(cat),
		DurationMonths:      months,
		Description:         strings.TrimSpace(req.Description),
	}
	switch cat {
	case booking.CategoryFixed:
		// A fixed seat is exclusive around the clock.
		row.Slot = sql.NullString{String: string(booking.SlotFull), Valid: true}
	case booking.CategoryLimited:
		row.Slot = sql.NullString{String: string(shift), Valid: true}
	}
	if row.Description == "" {
		row.Description = fmt.Sprintf("%s membership", cat)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var seatNumber uint32
	if cat == booking.CategoryFixed {
		seat, err := h.Seats.GetByNumber(ctx, req.SeatNumber)
		if err != nil {
			if err == repository.ErrSeatNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		if !booking.InPool(booking.Duration24Hr, seat.SeatNumber) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "fixed memberships use the full-day seats"})
		}
		row.SeatID = sql.NullInt64{Int64: int64(seat.ID), Valid: true}
		seatNumber = seat.SeatNumber
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

	if row.SeatID.Valid {
		recheck := booking.Request{From: start, To: end, Duration: booking.Duration24Hr, Slot: booking.SlotFull}
		existing, err := h.Bookings.ListActiveOverlappingTx(ctx, tx, uint64(row.SeatID.Int64), start, end)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		for _, b := range existing {
			if booking.Conflicts(recheck, b) {
				return c.JSON(http.StatusConflict, echo.Map{"error": repository.ErrSeatTaken.Error()})
			}
		}
	}

	if err := h.Bookings.CreateTx(ctx, tx, &row); err != nil {
		if err == repository.ErrSeatTaken {
			return c.JSON(http.StatusConflict, echo.Map{"error": repository.ErrSeatTaken.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	committed = true

	return c.JSON(http.StatusCreated, bookingResp{
		BookingID:   row.ID,
		SeatNumber:  seatNumber,
		MonthlyCost: row.MonthlyCost,
		Months:      months,
		TotalCost:   total,
		Status:      row.Status,
	})
}

// MyBookings lists the caller's bookings, newest first.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Bookings.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if list == nil {
		list = []repository.BookingDetail{}
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": list})
}
