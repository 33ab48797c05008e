// Package recurrence expands a recurring request into concrete occurrence dates.
package recurrence

import (
	"time"

	"github.com/m04kA/SMC-LectureBooking/internal/calendar"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

// Horizon returns the last date an expansion starting at start may reach.
func Horizon(start time.Time) time.Time {
	return calendar.AddMonthsPinned(calendar.DateOnly(start), domain.SeriesHorizonMonths)
}

// Expand returns the ascending occurrence dates of rule between start and end
// inclusive, never past Horizon(start). RuleNone yields nothing.
func Expand(start time.Time, rule domain.RecurrenceRule, end time.Time) []time.Time {
	start = calendar.DateOnly(start)
	end = calendar.DateOnly(end)

	limit := Horizon(start)
	if end.Before(limit) {
		limit = end
	}

	next := stepper(start, rule)
	if next == nil {
		return nil
	}

	dates := make([]time.Time, 0)
	for k, d := 0, start; !d.After(limit); k++ {
		dates = append(dates, d)
		d = next(k + 1)
	}

	return dates
}

// Count returns len(Expand(start, rule, end)).
func Count(start time.Time, rule domain.RecurrenceRule, end time.Time) int {
	return len(Expand(start, rule, end))
}

// stepper returns the k-th occurrence function for rule. Monthly occurrences are
// computed from start each time so clipping in a short month does not carry over.
func stepper(start time.Time, rule domain.RecurrenceRule) func(k int) time.Time {
	switch rule {
	case domain.RuleWeekly:
		return func(k int) time.Time { return calendar.AddDays(start, 7*k) }
	case domain.RuleBiweekly:
		return func(k int) time.Time { return calendar.AddDays(start, 14*k) }
	case domain.RuleMonthly:
		return func(k int) time.Time { return calendar.AddMonthsPinned(start, k) }
	default:
		return nil
	}
}
