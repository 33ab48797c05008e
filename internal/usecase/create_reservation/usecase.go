package create_reservation

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-LectureBooking/internal/calendar"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
	"github.com/m04kA/SMC-LectureBooking/internal/integrations/notifier"
)

// Пути создания бронирования (метка метрики)
const (
	PathPublic   = "public"
	PathOperator = "operator"
)

// Стадии обнаружения конфликта (метка метрики)
const (
	stageCheck   = "check"
	stageLock    = "lock"
	stageRecheck = "recheck"
	stageInsert  = "insert"
)

// UseCase use case для создания одиночного бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	availability    AvailabilityChecker
	locker          SlotLocker
	notifier        Notifier
	metrics         Metrics
	courses         []domain.Course
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	availability AvailabilityChecker,
	locker SlotLocker,
	notifier Notifier,
	metrics Metrics,
	courses []domain.Course,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		availability:    availability,
		locker:          locker,
		notifier:        notifier,
		metrics:         metrics,
		courses:         courses,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Prepare валидирует запрос и возвращает кандидата без обращения к хранилищу
func (uc *UseCase) Prepare(req *Request) (*domain.Reservation, error) {
	return buildReservation(req, uc.courses, uc.timeProvider.Now())
}

// Execute выполняет use case создания бронирования.
// Проверка и вставка не транзакционны: перед вставкой слот проверяется повторно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	candidate, err := uc.Prepare(req)
	if err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	path := PathOperator
	if req.Public {
		path = PathPublic
	}

	uc.logger.Info("CreateReservation: path=%s, date=%s, slot=%s, course=%q",
		path, calendar.Format(candidate.Date), candidate.Slot, candidate.Details.CourseName)

	// 2. Проверяем, что слот свободен
	if err := uc.ensureFree(ctx, candidate, stageCheck); err != nil {
		return nil, err
	}

	// 3. Захватываем блокировку слота
	release, acquired, err := uc.locker.Acquire(ctx, candidate.Date, candidate.Slot)
	switch {
	case err != nil:
		// Без блокировки остаются повторная проверка и уникальный индекс хранилища
		uc.logger.Warn("CreateReservation: slot lock unavailable, continuing without it: %v", err)
	case !acquired:
		uc.logger.Warn("CreateReservation: slot %s %s is locked by another request",
			calendar.Format(candidate.Date), candidate.Slot)
		return nil, uc.conflict(candidate, stageLock)
	default:
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				uc.logger.Warn("CreateReservation: failed to release slot lock: %v", err)
			}
		}()
	}

	// 4. Повторная проверка непосредственно перед вставкой
	if err := uc.ensureFree(ctx, candidate, stageRecheck); err != nil {
		return nil, err
	}

	// 5. Сохраняем бронирование
	created, err := uc.reservationRepo.Create(ctx, candidate)
	if err != nil {
		if errors.Is(err, domain.ErrSlotOccupied) {
			uc.logger.Warn("CreateReservation: store rejected duplicate slot: %v", err)
			return nil, uc.conflict(candidate, stageInsert)
		}
		uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
		return nil, &domain.StoreUnavailableError{Op: "create reservation", Err: err}
	}

	uc.metrics.ReservationCreated(path, string(created.Slot))
	uc.logger.Info("CreateReservation: successfully created reservation id=%s", created.ID)

	// 6. Уведомление (ошибки не влияют на результат)
	uc.notifier.Notify(ctx, notifier.EventReservationCreated, created)

	return &Response{Reservation: created}, nil
}

// ensureFree возвращает ConflictError, если слот занят
func (uc *UseCase) ensureFree(ctx context.Context, candidate *domain.Reservation, stage string) error {
	free, err := uc.availability.IsFree(ctx, candidate.Date, candidate.Slot)
	if err != nil {
		uc.logger.Error("CreateReservation: availability %s failed: %v", stage, err)
		return err
	}
	if !free {
		uc.logger.Warn("CreateReservation: slot %s %s occupied at %s",
			calendar.Format(candidate.Date), candidate.Slot, stage)
		return uc.conflict(candidate, stage)
	}
	return nil
}

func (uc *UseCase) conflict(candidate *domain.Reservation, stage string) error {
	uc.metrics.Conflict(stage)
	return &domain.ConflictError{Date: candidate.Date, Slot: candidate.Slot}
}
