package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studyhive/seatbook/internal/repository"
)

// AdminStatsHandler serves the dashboard read model.
type AdminStatsHandler struct {
	Stats *repository.StatsRepo
}

func NewAdminStatsHandler(s *repository.StatsRepo) *AdminStatsHandler {
	return &AdminStatsHandler{Stats: s}
}

// Dashboard computes every dashboard counter in one request so the
// numbers shown together actually belong together.
func (h *AdminStatsHandler) Dashboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stats, err := h.Stats.Dashboard(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, stats)
}
