package create_series

import (
	"context"

	"github.com/m04kA/SMC-LectureBooking/internal/domain"
	"github.com/m04kA/SMC-LectureBooking/internal/usecase/create_reservation"
)

// SingleCreator одиночное создание бронирования
type SingleCreator interface {
	Prepare(req *create_reservation.Request) (*domain.Reservation, error)
	Execute(ctx context.Context, req *create_reservation.Request) (*create_reservation.Response, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// Notifier интерфейс уведомлений о бронированиях
type Notifier interface {
	Notify(ctx context.Context, event string, reservation *domain.Reservation)
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	ReservationCreated(path, slot string)
	SeriesOccurrence(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
