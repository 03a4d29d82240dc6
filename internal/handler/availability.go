package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studyhive/seatbook/internal/booking"
	"github.com/studyhive/seatbook/internal/repository"
)

// AvailabilityHandler serves the seat map the booking wizard renders.
type AvailabilityHandler struct {
	Seats    *repository.SeatRepo
	Bookings *repository.BookingRepo
	Waitlist *repository.WaitlistRepo
}

func NewAvailabilityHandler(s *repository.SeatRepo, b *repository.BookingRepo, w *repository.WaitlistRepo) *AvailabilityHandler {
	return &AvailabilityHandler{Seats: s, Bookings: b, Waitlist: w}
}

type availabilityResp struct {
	From     string               `json:"from"`
	To       string               `json:"to"`
	Duration string               `json:"duration"`
	Slot     string               `json:"slot"`
	Seats    []booking.SeatStatus `json:"seats"`
}

// buildRequest parses the from/to/duration/slot query parameters into a
// validated resolver request.  The validation errors it returns are
// safe to echo back to the client verbatim.
func buildRequest(c echo.Context) (booking.Request, error) {
	var req booking.Request

	fromStr := c.QueryParam("from")
	toStr := c.QueryParam("to")
	if fromStr == "" || toStr == "" {
		return req, booking.ErrMissingDates
	}
	from, err := parseDate(fromStr)
	if err != nil {
		return req, booking.ErrMissingDates
	}
	to, err := parseDate(toStr)
	if err != nil {
		return req, booking.ErrMissingDates
	}

	dur, err := booking.ParseDuration(c.QueryParam("duration"))
	if err != nil {
		return req, err
	}

	req = booking.Request{From: from, To: to, Duration: dur}
	if slotStr := c.QueryParam("slot"); slotStr != "" {
		slot, err := booking.ParseSlot(slotStr)
		if err != nil {
			return req, err
		}
		req.Slot = slot
	}
	if err := req.Validate(); err != nil {
		return req, err
	}
	// Bookings cover whole days: the window closes at midnight after
	// the last booked day.
	req.To = req.To.AddDate(0, 0, 1)
	return req, nil
}

// Get resolves seat availability for a date window, duration tier and
// slot.  The pool is chosen by the duration; each seat is classified
// against every active overlapping booking and the waitlist counts.
func (h *AvailabilityHandler) Get(c echo.Context) error {
	req, err := buildRequest(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	min, max := booking.PoolFor(req.Duration)
	seatRows, err := h.Seats.ListByNumberRange(ctx, min, max)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	seats := make([]booking.SeatInfo, 0, len(seatRows))
	seatIDs := make([]uint64, 0, len(seatRows))
	for _, s := range seatRows {
		seats = append(seats, booking.SeatInfo{ID: s.ID, Number: s.SeatNumber})
		seatIDs = append(seatIDs, s.ID)
	}

	bookings, err := h.Bookings.ListActiveOverlapping(ctx, seatIDs, req.From, req.To)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	waitlist, err := h.Waitlist.CountBySeats(ctx, seatIDs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	statuses := booking.Resolve(req, seats, bookings, waitlist)
	return c.JSON(http.StatusOK, availabilityResp{
		From:     c.QueryParam("from"),
		To:       c.QueryParam("to"),
		Duration: string(req.Duration),
		Slot:     string(req.Slot),
		Seats:    statuses,
	})
}
