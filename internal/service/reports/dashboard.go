package reports

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-LectureBooking/internal/calendar"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

// DetailKind список, раскрываемый из карточки дашборда
type DetailKind string

const (
	DetailIncome   DetailKind = "income"
	DetailPending  DetailKind = "pending"
	DetailUpcoming DetailKind = "upcoming"
	DetailUnpaid   DetailKind = "unpaid"
)

// ParseDetailKind валидирует тип списка
func ParseDetailKind(raw string) (DetailKind, error) {
	switch k := DetailKind(raw); k {
	case DetailIncome, DetailPending, DetailUpcoming, DetailUnpaid:
		return k, nil
	default:
		return "", domain.NewValidationError("kind", fmt.Sprintf("unknown dashboard list %q", raw))
	}
}

// Dashboard сводка для главной страницы оператора
type Dashboard struct {
	Today         time.Time
	MonthIncome   decimal.Decimal
	PendingCount  int
	UpcomingCount int
	UnpaidAmount  decimal.Decimal
	// Upcoming ближайшие занятия (не более domain.UpcomingPreviewLen), по возрастанию даты
	Upcoming []*domain.Reservation
	// Pending ожидающие подтверждения, по возрастанию даты
	Pending []*domain.Reservation
}

// BuildDashboard считает карточки дашборда. Отменённые бронирования не учитываются.
func BuildDashboard(reservations []*domain.Reservation, today time.Time) Dashboard {
	today = calendar.DateOnly(today)
	horizon := calendar.AddDays(today, domain.UpcomingWindowDays)

	d := Dashboard{
		Today:        today,
		MonthIncome:  decimal.Zero,
		UnpaidAmount: decimal.Zero,
		Pending:      make([]*domain.Reservation, 0),
	}

	upcoming := make([]*domain.Reservation, 0)

	for _, r := range reservations {
		if r == nil || !r.IsActive() {
			continue
		}

		fee := r.Fee()

		if isSameMonth(r.Date, today) {
			d.MonthIncome = d.MonthIncome.Add(fee)
		}

		if r.Status == domain.StatusPending {
			d.PendingCount++
			d.Pending = append(d.Pending, r)
		}

		if calendar.InRange(r.Date, today, horizon) {
			d.UpcomingCount++
			upcoming = append(upcoming, r)
		}

		if r.IsUnpaid() {
			d.UnpaidAmount = d.UnpaidAmount.Add(fee)
		}
	}

	domain.SortReservations(d.Pending, domain.SortDateAsc)
	domain.SortReservations(upcoming, domain.SortDateAsc)
	if len(upcoming) > domain.UpcomingPreviewLen {
		upcoming = upcoming[:domain.UpcomingPreviewLen]
	}
	d.Upcoming = upcoming

	return d
}

// Detail возвращает полный список для карточки дашборда
//   - income: текущий месяц, по убыванию даты
//   - pending: ожидающие подтверждения, по возрастанию даты
//   - upcoming: начиная с сегодняшнего дня, по возрастанию даты
//   - unpaid: подтверждённые/завершённые без оплаты, по возрастанию даты
func Detail(reservations []*domain.Reservation, kind DetailKind, today time.Time) []*domain.Reservation {
	today = calendar.DateOnly(today)

	var keep func(r *domain.Reservation) bool
	order := domain.SortDateAsc

	switch kind {
	case DetailIncome:
		keep = func(r *domain.Reservation) bool { return isSameMonth(r.Date, today) }
		order = domain.SortDateDesc
	case DetailPending:
		keep = func(r *domain.Reservation) bool { return r.Status == domain.StatusPending }
	case DetailUpcoming:
		keep = func(r *domain.Reservation) bool { return !r.Date.Before(today) }
	case DetailUnpaid:
		keep = func(r *domain.Reservation) bool { return r.IsUnpaid() }
	default:
		return []*domain.Reservation{}
	}

	out := make([]*domain.Reservation, 0)
	for _, r := range reservations {
		if r == nil || !r.IsActive() || !keep(r) {
			continue
		}
		out = append(out, r)
	}

	domain.SortReservations(out, order)
	return out
}

// DetailTotal сумма стоимости по списку
func DetailTotal(rs []*domain.Reservation) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rs {
		total = total.Add(r.Fee())
	}
	return total
}

func isSameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// Sorted возвращает упорядоченную копию списка; используется для экспорта
func Sorted(rs []*domain.Reservation, by domain.ReservationSort) []*domain.Reservation {
	out := make([]*domain.Reservation, len(rs))
	copy(out, rs)
	domain.SortReservations(out, by)
	return out
}
