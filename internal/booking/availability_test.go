package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func hourlyReq(slot Slot, dur Duration) Request {
	return Request{
		From:     date(2026, time.September, 1),
		To:       date(2026, time.October, 1),
		Duration: dur,
		Slot:     slot,
	}
}

func TestValidate(t *testing.T) {
	r := Request{}
	assert.ErrorIs(t, r.Validate(), ErrMissingDates)

	r = Request{From: date(2026, 9, 10), To: date(2026, 9, 1), Duration: Duration6Hr, Slot: SlotMorning}
	assert.ErrorIs(t, r.Validate(), ErrDatesInverted)

	r = Request{From: date(2026, 9, 1), To: date(2026, 9, 10), Duration: Duration6Hr}
	assert.ErrorIs(t, r.Validate(), ErrSlotRequired)

	r = Request{From: date(2026, 9, 1), To: date(2026, 9, 10), Duration: Duration12Hr, Slot: SlotMorning}
	assert.ErrorIs(t, r.Validate(), ErrSlotNotAllowed)

	// 24hr forces the full slot regardless of input
	r = Request{From: date(2026, 9, 1), To: date(2026, 9, 10), Duration: Duration24Hr, Slot: SlotMorning}
	require.NoError(t, r.Validate())
	assert.Equal(t, SlotFull, r.Slot)

	r = Request{From: date(2026, 9, 1), To: date(2026, 9, 1), Duration: Duration6Hr, Slot: SlotEvening}
	assert.NoError(t, r.Validate(), "single-day windows are legal")
}

func TestConflictsHalfOpenBoundary(t *testing.T) {
	req := hourlyReq(SlotMorning, Duration6Hr)
	// Booking that ends exactly when the request starts: no conflict.
	b := ActiveBooking{
		SeatID:    20,
		Duration:  Duration6Hr,
		Slot:      SlotMorning,
		StartTime: date(2026, time.August, 1),
		EndTime:   req.From,
	}
	assert.False(t, Conflicts(req, b))

	// One nanosecond of overlap flips it.
	b.EndTime = req.From.Add(time.Nanosecond)
	assert.True(t, Conflicts(req, b))
}

func TestConflictsExclusivity(t *testing.T) {
	window := ActiveBooking{
		SeatID:    5,
		StartTime: date(2026, time.September, 1),
		EndTime:   date(2026, time.October, 1),
	}

	// Existing 24hr booking blocks every hourly slot.
	full := window
	full.Duration = Duration24Hr
	full.Slot = SlotFull
	for _, s := range []Slot{SlotMorning, SlotAfternoon, SlotEvening, SlotDay, SlotNight} {
		dur := Duration6Hr
		if s == SlotDay || s == SlotNight {
			dur = Duration12Hr
		}
		assert.True(t, Conflicts(hourlyReq(s, dur), full), "24hr booking must block %s", s)
	}

	// A 24hr request is blocked by any existing hourly booking.
	evening := window
	evening.Duration = Duration6Hr
	evening.Slot = SlotEvening
	req24 := hourlyReq(SlotFull, Duration24Hr)
	assert.True(t, Conflicts(req24, evening))

	// Disjoint hourly slots on the same seat coexist.
	morning := window
	morning.Duration = Duration6Hr
	morning.Slot = SlotMorning
	assert.False(t, Conflicts(hourlyReq(SlotEvening, Duration6Hr), morning))
}

func seatRange(from, to uint32) []SeatInfo {
	var seats []SeatInfo
	for n := from; n <= to; n++ {
		seats = append(seats, SeatInfo{ID: uint64(n), Number: n})
	}
	return seats
}

func TestResolvePoolIsolation(t *testing.T) {
	all := seatRange(1, 50)

	got := Resolve(hourlyReq(SlotFull, Duration24Hr), all, nil, nil)
	require.Len(t, got, 13)
	for _, st := range got {
		assert.LessOrEqual(t, st.SeatNumber, uint32(FullDayPoolMax))
	}

	got = Resolve(hourlyReq(SlotMorning, Duration6Hr), all, nil, nil)
	require.Len(t, got, 37)
	for _, st := range got {
		assert.GreaterOrEqual(t, st.SeatNumber, uint32(HourlyPoolMin))
	}
}

// A member wants seat 20 mornings but someone already holds the whole
// day there: the seat must report occupied with the occupant's name.
func TestResolveSeat20MorningVsDay(t *testing.T) {
	req := hourlyReq(SlotMorning, Duration6Hr)
	bookings := []ActiveBooking{{
		SeatID:       20,
		Duration:     Duration12Hr,
		Slot:         SlotDay,
		StartTime:    req.From,
		EndTime:      req.To,
		OccupantName: "Asha",
	}}

	got := Resolve(req, seatRange(14, 50), bookings, nil)
	var seat20 *SeatStatus
	for i := range got {
		if got[i].SeatNumber == 20 {
			seat20 = &got[i]
		}
	}
	require.NotNil(t, seat20)
	assert.False(t, seat20.Available)
	assert.Equal(t, "Asha", seat20.Occupant)

	// Evening on the same seat stays free: day does not reach evening.
	got = Resolve(hourlyReq(SlotEvening, Duration6Hr), seatRange(14, 50), bookings, nil)
	for _, st := range got {
		if st.SeatNumber == 20 {
			assert.True(t, st.Available)
			assert.Empty(t, st.Occupant)
		}
	}
}

// Seat 21 has no conflicting booking but a lingering waitlist entry:
// both flags are reported.
func TestResolveSeat21WaitlistedButAvailable(t *testing.T) {
	req := hourlyReq(SlotMorning, Duration6Hr)
	got := Resolve(req, seatRange(14, 50), nil, map[uint64]int{21: 2})
	for _, st := range got {
		if st.SeatNumber == 21 {
			assert.True(t, st.Available)
			assert.True(t, st.Waitlisted)
			return
		}
	}
	t.Fatal("seat 21 missing from result")
}

// Seat 5 is held overnight; a 24hr request on it must lose to the
// night booking even though their slots differ.
func TestResolveSeat5NightVs24Hr(t *testing.T) {
	req := hourlyReq(SlotFull, Duration24Hr)
	bookings := []ActiveBooking{{
		SeatID:       5,
		Duration:     Duration12Hr,
		Slot:         SlotNight,
		StartTime:    req.From,
		EndTime:      req.To,
		OccupantName: "Ravi",
	}}
	got := Resolve(req, seatRange(1, 13), bookings, nil)
	for _, st := range got {
		if st.SeatNumber == 5 {
			assert.False(t, st.Available)
			assert.Equal(t, "Ravi", st.Occupant)
			return
		}
	}
	t.Fatal("seat 5 missing from result")
}

func TestResolveFirstConflictWins(t *testing.T) {
	req := hourlyReq(SlotDay, Duration12Hr)
	bookings := []ActiveBooking{
		{SeatID: 15, Duration: Duration6Hr, Slot: SlotMorning, StartTime: req.From, EndTime: req.To, OccupantName: "first"},
		{SeatID: 15, Duration: Duration6Hr, Slot: SlotAfternoon, StartTime: req.From, EndTime: req.To, OccupantName: "second"},
	}
	got := Resolve(req, []SeatInfo{{ID: 15, Number: 15}}, bookings, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "first", got[0].Occupant)
}

func TestResolveIdempotent(t *testing.T) {
	req := hourlyReq(SlotNight, Duration12Hr)
	seats := seatRange(14, 50)
	bookings := []ActiveBooking{
		{SeatID: 30, Duration: Duration6Hr, Slot: SlotEvening, StartTime: req.From, EndTime: req.To, OccupantName: "x"},
	}
	wl := map[uint64]int{40: 1}

	first := Resolve(req, seats, bookings, wl)
	second := Resolve(req, seats, bookings, wl)
	assert.Equal(t, first, second)
}

func TestResolveEmptyPool(t *testing.T) {
	got := Resolve(hourlyReq(SlotMorning, Duration6Hr), nil, nil, nil)
	assert.Empty(t, got)
}
