package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LectureBooking/internal/domain"
	"github.com/m04kA/SMC-LectureBooking/internal/infra/lock"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// AvailabilityChecker интерфейс проверки занятости слота
type AvailabilityChecker interface {
	IsFree(ctx context.Context, date time.Time, slot domain.Slot) (bool, error)
}

// SlotLocker интерфейс блокировки слота на время вставки
type SlotLocker interface {
	Acquire(ctx context.Context, date time.Time, slot domain.Slot) (lock.ReleaseFunc, bool, error)
}

// Notifier интерфейс уведомлений о бронированиях
type Notifier interface {
	Notify(ctx context.Context, event string, reservation *domain.Reservation)
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	ReservationCreated(path, slot string)
	Conflict(stage string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
