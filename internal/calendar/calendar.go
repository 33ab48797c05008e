// Package calendar contains pure date helpers working on calendar days.
// All dates are represented as time.Time at UTC midnight.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

const layout = "2006-01-02"

// Date builds a UTC-midnight date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOnly drops the time-of-day component, keeping the calendar day as seen in t's location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// ParseDate parses a YYYY-MM-DD string. It rejects dates that do not exist, e.g. 2023-02-29.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(layout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("calendar: invalid date %q: %w", s, err)
	}
	return t, nil
}

// ParseMonth parses a YYYY-MM string into the first day of that month.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("calendar: invalid month %q: %w", s, err)
	}
	return t, nil
}

// Format renders d as YYYY-MM-DD.
func Format(d time.Time) string {
	return d.Format(layout)
}

// DaysInMonth returns the Gregorian day count of the month, leap-year aware.
func DaysInMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsLastDayOfMonth reports whether d is the last day of its month.
func IsLastDayOfMonth(d time.Time) bool {
	return d.Day() == DaysInMonth(d.Year(), d.Month())
}

// AddDays shifts d by n calendar days.
func AddDays(d time.Time, n int) time.Time {
	return d.AddDate(0, 0, n)
}

// AddMonthsPinned adds n months to d. A month-end date stays pinned to the last
// day of the resulting month; any other day-of-month is preserved and clipped to
// the target month's length.
func AddMonthsPinned(d time.Time, n int) time.Time {
	y, m, day := d.Date()

	// normalize the target month without letting the day overflow
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := DaysInMonth(first.Year(), first.Month())

	if IsLastDayOfMonth(d) || day > last {
		day = last
	}

	return Date(first.Year(), first.Month(), day)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// InRange reports whether start <= d <= end, comparing calendar days.
func InRange(d, start, end time.Time) bool {
	d = DateOnly(d)
	return !d.Before(DateOnly(start)) && !d.After(DateOnly(end))
}
