// Package booking holds the core reservation rules of the study space:
// the slot model, the slot-overlap matrix, the seat pools, the
// availability resolver and the membership pricing table.  Everything in
// this package is pure computation over data fetched by the repository
// layer; it performs no I/O of its own.
package booking

import (
	"errors"
	"fmt"
	"strings"
)

// Slot identifies the daily time window a booking occupies.  The two
// 12-hour slots (day, night) each span two of the 6-hour slots, and
// "full" marks a 24-hour booking that excludes everything else on the
// seat.
type Slot string

const (
	SlotMorning   Slot = "morning"   // 6hr, 9am-3pm
	SlotAfternoon Slot = "afternoon" // 6hr, 3pm-9pm
	SlotEvening   Slot = "evening"   // 6hr, 6pm-12am
	SlotDay       Slot = "day"       // 12hr, 9am-9pm
	SlotNight     Slot = "night"     // 12hr, 9pm-9am
	SlotFull      Slot = "full"      // 24hr
)

// Duration is the booked hours-per-day tier.  It decides which seat pool
// a request is served from and which slots are legal for it.
type Duration string

const (
	Duration6Hr  Duration = "6hr"
	Duration12Hr Duration = "12hr"
	Duration24Hr Duration = "24hr"
	// DurationMembership marks rows created by the category-based flow
	// (fixed/floating/limited) rather than the hourly wizard.
	DurationMembership Duration = "membership"
)

// Category is the membership product tier used by the newer flow.
type Category string

const (
	CategoryFixed    Category = "fixed"
	CategoryFloating Category = "floating"
	CategoryLimited  Category = "limited"
	CategoryHourly   Category = "hourly"
)

// Seat pools by number: low numbers are reserved for full-day members,
// the rest serve the hourly slots.  Pool membership is derived from the
// seat number alone and never stored.
const (
	FullDayPoolMin = 1
	FullDayPoolMax = 13
	HourlyPoolMin  = 14
	HourlyPoolMax  = 50
)

var (
	ErrUnknownSlot     = errors.New("unknown slot")
	ErrUnknownDuration = errors.New("unknown duration")
	ErrUnknownCategory = errors.New("unknown category")
)

// ParseSlot normalizes and validates a slot string from a request.
func ParseSlot(s string) (Slot, error) {
	switch Slot(strings.ToLower(strings.TrimSpace(s))) {
	case SlotMorning:
		return SlotMorning, nil
	case SlotAfternoon:
		return SlotAfternoon, nil
	case SlotEvening:
		return SlotEvening, nil
	case SlotDay:
		return SlotDay, nil
	case SlotNight:
		return SlotNight, nil
	case SlotFull:
		return SlotFull, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSlot, s)
}

// ParseDuration normalizes and validates a duration string from a request.
func ParseDuration(s string) (Duration, error) {
	switch Duration(strings.ToLower(strings.TrimSpace(s))) {
	case Duration6Hr:
		return Duration6Hr, nil
	case Duration12Hr:
		return Duration12Hr, nil
	case Duration24Hr:
		return Duration24Hr, nil
	case DurationMembership:
		return DurationMembership, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDuration, s)
}

// ParseCategory normalizes and validates a membership category string.
func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryFixed:
		return CategoryFixed, nil
	case CategoryFloating:
		return CategoryFloating, nil
	case CategoryLimited:
		return CategoryLimited, nil
	case CategoryHourly:
		return CategoryHourly, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// SlotsFor lists the slots a member may choose for a duration tier.
func SlotsFor(d Duration) []Slot {
	switch d {
	case Duration6Hr:
		return []Slot{SlotMorning, SlotAfternoon, SlotEvening}
	case Duration12Hr:
		return []Slot{SlotDay, SlotNight}
	case Duration24Hr:
		return []Slot{SlotFull}
	default:
		return nil
	}
}

// ValidSlot reports whether slot s is a legal choice for duration d.
func ValidSlot(d Duration, s Slot) bool {
	for _, allowed := range SlotsFor(d) {
		if allowed == s {
			return true
		}
	}
	return false
}

// Overlaps reports whether two slots collide on the same seat and day.
// The matrix is symmetric and total over the slot constants:
//
//   - identical slots always collide
//   - full collides with everything
//   - day spans morning and afternoon
//   - night reaches into evening (9pm-9am vs 6pm-12am)
//
// Every other pair is disjoint; in particular morning/afternoon,
// morning/evening, morning/night, afternoon/evening and afternoon/night
// never collide.
func Overlaps(a, b Slot) bool {
	if a == b {
		return true
	}
	if a == SlotFull || b == SlotFull {
		return true
	}
	// Normalize so the 12-hour slot (if any) is on the left.
	if b == SlotDay || b == SlotNight {
		a, b = b, a
	}
	switch a {
	case SlotDay:
		return b == SlotMorning || b == SlotAfternoon
	case SlotNight:
		return b == SlotEvening
	}
	return false
}

// PoolFor returns the inclusive seat-number range served by a duration
// tier: 24hr members get the low pool, hourly members the high pool.
func PoolFor(d Duration) (min, max uint32) {
	if d == Duration24Hr {
		return FullDayPoolMin, FullDayPoolMax
	}
	return HourlyPoolMin, HourlyPoolMax
}

// InPool reports whether a seat number belongs to the pool for d.
func InPool(d Duration, seatNumber uint32) bool {
	min, max := PoolFor(d)
	return seatNumber >= min && seatNumber <= max
}
