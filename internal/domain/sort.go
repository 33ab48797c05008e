package domain

import "sort"

// SortReservations orders rs in place. Ties keep their input order.
// SortStatus orders by status priority, then by date descending.
func SortReservations(rs []*Reservation, by ReservationSort) {
	switch by {
	case SortDateAsc:
		sort.SliceStable(rs, func(i, j int) bool {
			return rs[i].Date.Before(rs[j].Date)
		})
	case SortStatus:
		sort.SliceStable(rs, func(i, j int) bool {
			pi, pj := rs[i].Status.SortPriority(), rs[j].Status.SortPriority()
			if pi != pj {
				return pi < pj
			}
			return rs[i].Date.After(rs[j].Date)
		})
	default:
		sort.SliceStable(rs, func(i, j int) bool {
			return rs[i].Date.After(rs[j].Date)
		})
	}
}
