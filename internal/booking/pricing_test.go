package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRates(t *testing.T) {
	assert.Equal(t, 1500, HourlyRate(Duration6Hr))
	assert.Equal(t, 2300, HourlyRate(Duration12Hr))
	assert.Equal(t, 3800, HourlyRate(Duration24Hr))
	assert.Equal(t, 0, HourlyRate(DurationMembership))

	assert.Equal(t, 3500, CategoryRate(CategoryFixed))
	assert.Equal(t, 2200, CategoryRate(CategoryFloating))
	assert.Equal(t, 1200, CategoryRate(CategoryLimited))
	assert.Equal(t, 0, CategoryRate(CategoryHourly))
}

func TestMonthsBetween(t *testing.T) {
	// Same month counts as one.
	assert.Equal(t, 1, MonthsBetween(date(2026, time.September, 1), date(2026, time.September, 30)))
	// Partial months still count whole.
	assert.Equal(t, 2, MonthsBetween(date(2026, time.September, 28), date(2026, time.October, 2)))
	// Across a year boundary.
	assert.Equal(t, 3, MonthsBetween(date(2026, time.December, 15), date(2027, time.February, 1)))
	// Inverted windows clamp to zero.
	assert.Equal(t, 0, MonthsBetween(date(2026, time.October, 1), date(2026, time.September, 1)))
}

func TestTotalCost(t *testing.T) {
	// Three months of a 12-hour seat.
	months := MonthsBetween(date(2026, time.September, 1), date(2026, time.November, 30))
	require.Equal(t, 3, months)
	total, err := TotalCost(HourlyRate(Duration12Hr), months)
	require.NoError(t, err)
	assert.Equal(t, 6900, total)

	_, err = TotalCost(Rate6Hr, 0)
	assert.ErrorIs(t, err, ErrInvalidMonths)
}
