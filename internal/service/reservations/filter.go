package reservations

import (
	"sort"
	"strings"

	"github.com/m04kA/SMC-LectureBooking/internal/calendar"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
	"github.com/m04kA/SMC-LectureBooking/internal/service/reservations/models"
)

// applyFilter фильтрует снимок и сортирует результат
func applyFilter(all []*domain.Reservation, f domain.ReservationFilter) []*domain.Reservation {
	out := make([]*domain.Reservation, 0, len(all))
	search := strings.ToLower(f.Search)

	for _, r := range all {
		if f.Month != nil && (r.Date.Year() != f.Month.Year() || r.Date.Month() != f.Month.Month()) {
			continue
		}
		if f.Status != nil && r.Status != *f.Status {
			continue
		}
		if f.Organization != "" && r.Details.Organization != f.Organization {
			continue
		}
		if f.CourseName != "" && r.Details.CourseName != f.CourseName {
			continue
		}
		if search != "" && !matchesSearch(r, search) {
			continue
		}
		out = append(out, r)
	}

	domain.SortReservations(out, f.Sort)
	return out
}

// matchesSearch ищет подстроку в организации, дате, курсе и контакте
func matchesSearch(r *domain.Reservation, search string) bool {
	return strings.Contains(strings.ToLower(r.Details.Organization), search) ||
		strings.Contains(calendar.Format(r.Date), search) ||
		strings.Contains(strings.ToLower(r.Details.CourseName), search) ||
		strings.Contains(strings.ToLower(r.Details.ContactName), search)
}

// buildFacets собирает значения фильтров по всему снимку.
// Месяцы по убыванию, организации и курсы по алфавиту
func buildFacets(all []*domain.Reservation) models.Facets {
	months := make(map[string]struct{})
	orgs := make(map[string]struct{})
	courses := make(map[string]struct{})

	for _, r := range all {
		months[r.Date.Format(domain.MonthFormat)] = struct{}{}
		if r.Details.Organization != "" {
			orgs[r.Details.Organization] = struct{}{}
		}
		if r.Details.CourseName != "" {
			courses[r.Details.CourseName] = struct{}{}
		}
	}

	facets := models.Facets{
		Months:        keys(months),
		Organizations: keys(orgs),
		Courses:       keys(courses),
	}
	sort.Sort(sort.Reverse(sort.StringSlice(facets.Months)))
	return facets
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
