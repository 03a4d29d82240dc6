package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allSlots = []Slot{SlotMorning, SlotAfternoon, SlotEvening, SlotDay, SlotNight, SlotFull}

func TestOverlapsKnownPairs(t *testing.T) {
	cases := []struct {
		a, b Slot
		want bool
	}{
		{SlotDay, SlotMorning, true},
		{SlotDay, SlotAfternoon, true},
		{SlotDay, SlotEvening, false},
		{SlotNight, SlotEvening, true},
		{SlotNight, SlotMorning, false},
		{SlotNight, SlotAfternoon, false},
		{SlotDay, SlotNight, false},
		{SlotMorning, SlotAfternoon, false},
		{SlotMorning, SlotEvening, false},
		{SlotAfternoon, SlotEvening, false},
		{SlotFull, SlotMorning, true},
		{SlotFull, SlotNight, true},
		{SlotFull, SlotFull, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Overlaps(tc.a, tc.b), "%s vs %s", tc.a, tc.b)
	}
}

func TestOverlapsSymmetricAndTotal(t *testing.T) {
	for _, a := range allSlots {
		for _, b := range allSlots {
			assert.Equal(t, Overlaps(a, b), Overlaps(b, a), "symmetry broken for %s/%s", a, b)
		}
		// identical slots always collide
		assert.True(t, Overlaps(a, a), "%s must overlap itself", a)
	}
}

func TestSlotsForDuration(t *testing.T) {
	assert.ElementsMatch(t, []Slot{SlotMorning, SlotAfternoon, SlotEvening}, SlotsFor(Duration6Hr))
	assert.ElementsMatch(t, []Slot{SlotDay, SlotNight}, SlotsFor(Duration12Hr))
	assert.Equal(t, []Slot{SlotFull}, SlotsFor(Duration24Hr))
	assert.Nil(t, SlotsFor(DurationMembership))

	assert.True(t, ValidSlot(Duration6Hr, SlotMorning))
	assert.False(t, ValidSlot(Duration6Hr, SlotDay))
	assert.False(t, ValidSlot(Duration12Hr, SlotFull))
}

func TestParseSlot(t *testing.T) {
	s, err := ParseSlot("  Morning ")
	require.NoError(t, err)
	assert.Equal(t, SlotMorning, s)

	_, err = ParseSlot("midnight")
	assert.ErrorIs(t, err, ErrUnknownSlot)
}

func TestParseDuration(t *testing.T) {
	d, err := ParseDuration("24HR")
	require.NoError(t, err)
	assert.Equal(t, Duration24Hr, d)

	_, err = ParseDuration("8hr")
	assert.ErrorIs(t, err, ErrUnknownDuration)
}

func TestPools(t *testing.T) {
	min, max := PoolFor(Duration24Hr)
	assert.Equal(t, uint32(FullDayPoolMin), min)
	assert.Equal(t, uint32(FullDayPoolMax), max)

	min, max = PoolFor(Duration6Hr)
	assert.Equal(t, uint32(HourlyPoolMin), min)
	assert.Equal(t, uint32(HourlyPoolMax), max)

	assert.True(t, InPool(Duration24Hr, 1))
	assert.True(t, InPool(Duration24Hr, 13))
	assert.False(t, InPool(Duration24Hr, 14))
	assert.True(t, InPool(Duration6Hr, 14))
	assert.True(t, InPool(Duration12Hr, 50))
	assert.False(t, InPool(Duration12Hr, 13))
}
