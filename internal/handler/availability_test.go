package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhive/seatbook/internal/booking"
)

func queryCtx(t *testing.T, params map[string]string) echo.Context {
	t.Helper()
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	req := httptest.NewRequest(http.MethodGet, "/v1/availability?"+q.Encode(), nil)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec)
}

func TestBuildRequestValid(t *testing.T) {
	c := queryCtx(t, map[string]string{
		"from": "2026-09-01", "to": "2026-09-30",
		"duration": "6hr", "slot": "morning",
	})
	req, err := buildRequest(c)
	require.NoError(t, err)
	assert.Equal(t, booking.Duration6Hr, req.Duration)
	assert.Equal(t, booking.SlotMorning, req.Slot)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), req.From)
	// window closes at midnight after the last booked day
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), req.To)
}

func TestBuildRequest24HrForcesFull(t *testing.T) {
	c := queryCtx(t, map[string]string{
		"from": "2026-09-01", "to": "2026-09-30",
		"duration": "24hr", "slot": "morning",
	})
	req, err := buildRequest(c)
	require.NoError(t, err)
	assert.Equal(t, booking.SlotFull, req.Slot)
}

func TestBuildRequestRejections(t *testing.T) {
	cases := []struct {
		name    string
		params  map[string]string
		wantErr error
	}{
		{"missing dates", map[string]string{"duration": "6hr", "slot": "morning"}, booking.ErrMissingDates},
		{"garbage date", map[string]string{"from": "yesterday", "to": "2026-09-30", "duration": "6hr", "slot": "morning"}, booking.ErrMissingDates},
		{"inverted", map[string]string{"from": "2026-09-30", "to": "2026-09-01", "duration": "6hr", "slot": "morning"}, booking.ErrDatesInverted},
		{"no slot", map[string]string{"from": "2026-09-01", "to": "2026-09-30", "duration": "12hr"}, booking.ErrSlotRequired},
		{"wrong slot", map[string]string{"from": "2026-09-01", "to": "2026-09-30", "duration": "12hr", "slot": "morning"}, booking.ErrSlotNotAllowed},
		{"bad duration", map[string]string{"from": "2026-09-01", "to": "2026-09-30", "duration": "9hr", "slot": "morning"}, booking.ErrUnknownDuration},
		{"bad slot", map[string]string{"from": "2026-09-01", "to": "2026-09-30", "duration": "6hr", "slot": "noon"}, booking.ErrUnknownSlot},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := buildRequest(queryCtx(t, tc.params))
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
