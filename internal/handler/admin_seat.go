package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studyhive/seatbook/internal/booking"
	"github.com/studyhive/seatbook/internal/repository"
)

// AdminSeatHandler manages the seat inventory.
type AdminSeatHandler struct {
	Seats    *repository.SeatRepo
	Bookings *repository.BookingRepo
}

func NewAdminSeatHandler(s *repository.SeatRepo, b *repository.BookingRepo) *AdminSeatHandler {
	return &AdminSeatHandler{Seats: s, Bookings: b}
}

type ensureSeatsReq struct {
	Max uint32 `json:"max"`
}

// Ensure creates any missing seats so numbers 1..max all exist.
// Idempotent; defaults to the top of the hourly pool.
func (h *AdminSeatHandler) Ensure(c echo.Context) error {
	var req ensureSeatsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Max == 0 {
		req.Max = booking.HourlyPoolMax
	}
	if req.Max > 500 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "max is out of range"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Seats.EnsureNumbered(ctx, req.Max); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"seats": req.Max})
}

type seatInventoryRow struct {
	SeatID     uint64 `json:"seat_id"`
	SeatNumber uint32 `json:"seat_number"`
	Pool       string `json:"pool"` // full_day | hourly
	Occupied   bool   `json:"occupied"`
	Occupant   string `json:"occupant,omitempty"`
}

// List shows every seat with its pool and current occupancy: occupied
// means some active booking's window contains this instant.
func (h *AdminSeatHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	seats, err := h.Seats.ListByNumberRange(ctx, booking.FullDayPoolMin, booking.HourlyPoolMax)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	seatIDs := make([]uint64, 0, len(seats))
	for _, s := range seats {
		seatIDs = append(seatIDs, s.ID)
	}
	now := time.Now().UTC()
	active, err := h.Bookings.ListActiveOverlapping(ctx, seatIDs, now, now.Add(time.Nanosecond))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	occupant := make(map[uint64]string, len(active))
	for _, b := range active {
		if _, ok := occupant[b.SeatID]; !ok {
			occupant[b.SeatID] = b.OccupantName
		}
	}

	rows := make([]seatInventoryRow, 0, len(seats))
	for _, s := range seats {
		pool := "hourly"
		if booking.InPool(booking.Duration24Hr, s.SeatNumber) {
			pool = "full_day"
		}
		name, occupied := occupant[s.ID]
		rows = append(rows, seatInventoryRow{
			SeatID:     s.ID,
			SeatNumber: s.SeatNumber,
			Pool:       pool,
			Occupied:   occupied,
			Occupant:   name,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"seats": rows})
}
