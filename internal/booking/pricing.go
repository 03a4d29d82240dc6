package booking

import (
	"errors"
	"time"
)

// Monthly rates in rupees.  The hourly table belongs to the slot-based
// wizard, the category table to the membership wizard; both flows are
// live so both tables are kept.
const (
	Rate6Hr  = 1500
	Rate12Hr = 2300
	Rate24Hr = 3800

	RateFixed    = 3500
	RateFloating = 2200
	RateLimited  = 1200
)

var ErrInvalidMonths = errors.New("duration must be at least one month")

// HourlyRate returns the monthly price of a duration tier.
func HourlyRate(d Duration) int {
	switch d {
	case Duration6Hr:
		return Rate6Hr
	case Duration12Hr:
		return Rate12Hr
	case Duration24Hr:
		return Rate24Hr
	}
	return 0
}

// CategoryRate returns the monthly price of a membership category.
func CategoryRate(c Category) int {
	switch c {
	case CategoryFixed:
		return RateFixed
	case CategoryFloating:
		return RateFloating
	case CategoryLimited:
		return RateLimited
	}
	return 0
}

// MonthsBetween computes the inclusive whole-month span of a booking
// window: the calendar month difference plus one, so a window inside a
// single month counts as one month.  Bookings are priced per calendar
// month, not per 30-day period.
func MonthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if months < 0 {
		return 0
	}
	return months + 1
}

// TotalCost multiplies a monthly rate by a validated month count.
func TotalCost(monthlyRate, months int) (int, error) {
	if months < 1 {
		return 0, ErrInvalidMonths
	}
	return monthlyRate * months, nil
}
