// Package reports folds a snapshot of reservations into reporting views.
// Every function is pure: callers pass the snapshot and, where needed, today's date.
package reports

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

// Bucket one entry of a ranked distribution
type Bucket struct {
	Name  string
	Count int
}

// Report aggregated statistics over a window
type Report struct {
	Window Window

	// MonthlyRevenue indexed by calendar month (0 = January), independent of the window span
	MonthlyRevenue [12]decimal.Decimal

	Categories []Bucket
	Locations  []Bucket

	TotalRevenue   decimal.Decimal
	TotalCount     int
	AverageRevenue decimal.Decimal
}

// CategoryFunc extracts the category key of a reservation
type CategoryFunc func(r *domain.Reservation) string

// ByCourseName groups by denormalized course name
func ByCourseName(r *domain.Reservation) string {
	return r.Details.CourseName
}

// ByWorkCategory groups by operator-assigned work category
func ByWorkCategory(r *domain.Reservation) string {
	return r.Details.WorkCategory
}

// CategoryFuncFor resolves a configured category key. Unknown keys fall back to course name.
func CategoryFuncFor(key string) CategoryFunc {
	if key == domain.CategoryKeyWorkCategory {
		return ByWorkCategory
	}
	return ByCourseName
}

// Filter returns non-cancelled reservations inside the window, preserving input order
func Filter(reservations []*domain.Reservation, w Window) []*domain.Reservation {
	out := make([]*domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r == nil || !r.IsActive() || !w.Contains(r.Date) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Aggregate builds a Report. Identical input always yields an identical Report.
func Aggregate(reservations []*domain.Reservation, w Window, categoryOf CategoryFunc) Report {
	if categoryOf == nil {
		categoryOf = ByCourseName
	}

	report := Report{Window: w}
	for i := range report.MonthlyRevenue {
		report.MonthlyRevenue[i] = decimal.Zero
	}
	report.TotalRevenue = decimal.Zero
	report.AverageRevenue = decimal.Zero

	categories := newCounter()
	locations := newCounter()

	for _, r := range Filter(reservations, w) {
		fee := r.Fee()
		month := int(r.Date.Month()) - 1

		report.MonthlyRevenue[month] = report.MonthlyRevenue[month].Add(fee)
		report.TotalRevenue = report.TotalRevenue.Add(fee)
		report.TotalCount++

		categories.add(keyOr(categoryOf(r), domain.CategoryUncategorized))
		locations.add(keyOr(r.Details.City, domain.LocationUnknown))
	}

	report.Categories = rollupOther(categories.ranked(), domain.CategoryOverflowFrom, domain.CategoryTopN)
	report.Locations = truncate(locations.ranked(), domain.LocationTopN)

	if report.TotalCount > 0 {
		report.AverageRevenue = report.TotalRevenue.
			Div(decimal.NewFromInt(int64(report.TotalCount))).
			Round(0)
	}

	return report
}

func keyOr(key, fallback string) string {
	if k := strings.TrimSpace(key); k != "" {
		return k
	}
	return fallback
}

// counter counts keys remembering first-seen order for stable ranking
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// ranked returns buckets by count descending; ties keep encounter order
func (c *counter) ranked() []Bucket {
	buckets := make([]Bucket, 0, len(c.order))
	for _, key := range c.order {
		buckets = append(buckets, Bucket{Name: key, Count: c.counts[key]})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})
	return buckets
}

// rollupOther keeps the top n buckets and folds the rest into Other
// when there are more than threshold buckets
func rollupOther(buckets []Bucket, threshold, n int) []Bucket {
	if len(buckets) <= threshold {
		return buckets
	}

	other := 0
	for _, b := range buckets[n:] {
		other += b.Count
	}

	out := make([]Bucket, 0, n+1)
	out = append(out, buckets[:n]...)
	return append(out, Bucket{Name: domain.CategoryOther, Count: other})
}

func truncate(buckets []Bucket, n int) []Bucket {
	if len(buckets) <= n {
		return buckets
	}
	return buckets[:n]
}
