package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	ListAll(ctx context.Context) ([]*domain.Reservation, error)
	Update(ctx context.Context, id string, patch domain.ReservationPatch) (*domain.Reservation, error)
	Delete(ctx context.Context, id string) error
}

// AvailabilityChecker интерфейс проверки занятости слота
type AvailabilityChecker interface {
	IsFree(ctx context.Context, date time.Time, slot domain.Slot) (bool, error)
}

// Notifier интерфейс уведомлений о бронированиях
type Notifier interface {
	Notify(ctx context.Context, event string, reservation *domain.Reservation)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
