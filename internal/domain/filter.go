package domain

import "time"

// ReservationSort ordering of operator listings
type ReservationSort string

const (
	SortDateDesc ReservationSort = "date-desc"
	SortDateAsc  ReservationSort = "date-asc"
	SortStatus   ReservationSort = "status"
)

// ParseSort converts a sort token. Empty input means SortDateDesc.
func ParseSort(raw string) (ReservationSort, bool) {
	switch ReservationSort(raw) {
	case "", SortDateDesc:
		return SortDateDesc, true
	case SortDateAsc:
		return SortDateAsc, true
	case SortStatus:
		return SortStatus, true
	default:
		return "", false
	}
}

// ReservationFilter фильтр для списка бронирований в панели оператора
type ReservationFilter struct {
	Month        *time.Time         // Первый день месяца (опционально)
	Status       *ReservationStatus // Фильтр по статусу (опционально)
	Organization string             // Точное совпадение организации (опционально)
	CourseName   string             // Точное совпадение курса (опционально)
	Search       string             // Подстрока: организация, дата, курс, контакт
	Sort         ReservationSort
}
