// Package schedule holds the pure calendar rules of the facility: the
// fixed slot catalog and the predicates that decide whether a date and
// time slot are still bookable.  Every function that depends on "now"
// takes it as a parameter so callers can inject a fixed clock in tests.
package schedule

import (
	"fmt"
	"time"
)

// Clock supplies the current time.  Production code passes time.Now.
type Clock func() time.Time

// SlotDuration is the length of every bookable window.
const SlotDuration = 2 * time.Hour

// slotStartHour / slotEndHour bound the day: slots start every two
// hours from 10:00 through 20:00 inclusive.
const (
	slotStartHour = 10
	slotEndHour   = 20
)

// TimeSlots returns the fixed ordered catalog of slot start keys:
// ["10:00","12:00","14:00","16:00","18:00","20:00"].  Order matters
// for display and for seeding day schedules.
func TimeSlots() []string {
	slots := make([]string, 0, (slotEndHour-slotStartHour)/2+1)
	for h := slotStartHour; h <= slotEndHour; h += 2 {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
	}
	return slots
}

// ValidSlot reports whether key is exactly one of the catalog slots.
// Conflict and override checks compare slot keys as strings, so only
// the canonical form counts: "014:00" is not "14:00".
func ValidSlot(key string) bool {
	for _, s := range TimeSlots() {
		if key == s {
			return true
		}
	}
	return false
}

// ParseSlotHour extracts the start hour from a canonical "HH:00" slot
// key.  Anything but two digits, a colon, and "00" is rejected.
func ParseSlotHour(key string) (int, error) {
	if len(key) != 5 || key[2:] != ":00" ||
		key[0] < '0' || key[0] > '9' || key[1] < '0' || key[1] > '9' {
		return 0, fmt.Errorf("invalid time slot %q", key)
	}
	h := int(key[0]-'0')*10 + int(key[1]-'0')
	if h > 23 {
		return 0, fmt.Errorf("invalid time slot %q", key)
	}
	return h, nil
}

// DateOnly truncates t to day granularity in its own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsWeekend reports whether date falls on Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsPastDate reports whether date (day granularity) is strictly before
// the day of now.  The comparison is by calendar components, so a date
// parsed in one location never shifts against a clock in another.
func IsPastDate(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 {
		return y1 < y2
	}
	if m1 != m2 {
		return m1 < m2
	}
	return d1 < d2
}

// IsCurrentMonth reports whether date is in the same month and year as
// now.  Bookings are restricted to the current calendar month.
func IsCurrentMonth(date, now time.Time) bool {
	return date.Year() == now.Year() && date.Month() == now.Month()
}

// IsSlotExpired reports whether the slot's full two-hour window on the
// given date has already elapsed.  A slot stays bookable until its end,
// so a booking may still be placed while the window is in progress.
// Unknown slot keys are never expired; callers validate them separately.
func IsSlotExpired(date time.Time, slot string, now time.Time) bool {
	h, err := ParseSlotHour(slot)
	if err != nil {
		return false
	}
	y, m, d := date.Date()
	end := time.Date(y, m, d, h, 0, 0, 0, now.Location()).Add(SlotDuration)
	return end.Before(now)
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseDate parses a YYYY-MM-DD string into a day-granular local date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}
