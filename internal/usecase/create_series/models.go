package create_series

import (
	"time"

	"github.com/m04kA/SMC-LectureBooking/internal/domain"
	"github.com/m04kA/SMC-LectureBooking/internal/usecase/create_reservation"
)

// Request модель запроса на создание серии бронирований
type Request struct {
	Template  create_reservation.Request // Шаблон бронирования, Template.Date: дата начала
	Rule      string                     // none | weekly | biweekly | monthly
	EndDate   string                     // Дата окончания YYYY-MM-DD (обязательна для серии)
	Confirmed bool                       // Явное подтверждение большой серии
}

// Response модель ответа с созданными бронированиями
type Response struct {
	Rule         domain.RecurrenceRule
	Count        int
	Reservations []*domain.Reservation
}

// PreviewResponse результат расчёта серии без записи
type PreviewResponse struct {
	Rule                 domain.RecurrenceRule
	Count                int
	Dates                []time.Time
	ConfirmationRequired bool
}

// Config параметры создания серий
type Config struct {
	ConfirmationThreshold int // Серии больше порога требуют подтверждения
	InsertConcurrency     int // Максимум параллельных вставок
}
