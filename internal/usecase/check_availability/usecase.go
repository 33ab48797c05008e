package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LectureBooking/internal/calendar"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

// UseCase use case проверки занятости слотов
type UseCase struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// Execute возвращает занятые слоты на дату и состояние публичной сетки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	date := calendar.DateOnly(req.Date)

	// 2. Получаем занятые слоты
	occupied, err := uc.Occupied(ctx, date)
	if err != nil {
		return nil, err
	}

	// 3. Формируем сетку слотов
	grid := domain.AllSlots()
	slots := make([]SlotState, 0, len(grid))
	for _, slot := range grid {
		slots = append(slots, SlotState{
			Slot:  slot,
			Label: slot.Label(),
			Hours: slot.Hours(),
			Free:  isFreeAmong(occupied, slot),
		})
	}

	uc.logger.Info("CheckAvailability: date=%s, occupied=%v", calendar.Format(date), occupied)

	return &Response{
		Date:     date,
		Occupied: occupied,
		Slots:    slots,
	}, nil
}

// Occupied возвращает слоты неотменённых бронирований на дату
func (uc *UseCase) Occupied(ctx context.Context, date time.Time) ([]domain.Slot, error) {
	reservations, err := uc.reservationRepo.ListActiveByDate(ctx, calendar.DateOnly(date))
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to list reservations for %s: %v", calendar.Format(date), err)
		return nil, &domain.StoreUnavailableError{Op: "check availability", Err: err}
	}
	return occupiedSlots(reservations), nil
}

// IsFree сообщает, свободен ли слот на дату
func (uc *UseCase) IsFree(ctx context.Context, date time.Time, slot domain.Slot) (bool, error) {
	occupied, err := uc.Occupied(ctx, date)
	if err != nil {
		return false, err
	}
	return isFreeAmong(occupied, slot), nil
}
