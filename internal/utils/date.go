package utils

import (
	"fmt"
	"time"

	"anchor/internal/constants"
)

// DayKey returns the calendar-day key (YYYY-MM-DD) for t in t's location.
// Day boundaries follow the local calendar, not UTC: the nightly review and
// the sobriety count are tied to the user's subjective day.
func DayKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// Today returns the calendar-day key for the current instant, computed at
// call time and never cached.
func Today() string {
	return DayKey(time.Now())
}

// ParseDayKey parses a calendar-day key in the local time zone.
func ParseDayKey(s string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// Midnight returns t truncated to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// LastNDays returns the n most recent calendar days including now's day,
// oldest first.
func LastNDays(n int, now time.Time) []time.Time {
	if n <= 0 {
		return nil
	}
	days := make([]time.Time, 0, n)
	start := Midnight(now)
	for i := n - 1; i >= 0; i-- {
		days = append(days, start.AddDate(0, 0, -i))
	}
	return days
}

// DayOfYear returns the 1-based day of the year for t (1..366).
func DayOfYear(t time.Time) int {
	return t.YearDay()
}

// StartOfWeek returns midnight of the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	return Midnight(t).AddDate(0, 0, -int(t.Weekday()))
}
