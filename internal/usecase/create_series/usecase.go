package create_series

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-LectureBooking/internal/calendar"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
	"github.com/m04kA/SMC-LectureBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-LectureBooking/internal/usecase/create_reservation"
)

// Результаты вставки вхождений серии (метка метрики)
const (
	resultCreated = "created"
	resultFailed  = "failed"
)

const reasonSlotOccupied = "slot already occupied"

// UseCase use case для создания повторяющейся серии бронирований
type UseCase struct {
	single          SingleCreator
	reservationRepo ReservationRepository
	notifier        Notifier
	metrics         Metrics
	cfg             Config
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	single SingleCreator,
	reservationRepo ReservationRepository,
	notifier Notifier,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.ConfirmationThreshold <= 0 {
		cfg.ConfirmationThreshold = domain.SeriesConfirmationThreshold
	}
	if cfg.InsertConcurrency <= 0 {
		cfg.InsertConcurrency = 1
	}
	return &UseCase{
		single:          single,
		reservationRepo: reservationRepo,
		notifier:        notifier,
		metrics:         metrics,
		cfg:             cfg,
		logger:          logger,
	}
}

// Preview раскрывает серию без записи в хранилище
func (uc *UseCase) Preview(req *Request) (*PreviewResponse, error) {
	p, err := uc.buildPlan(req)
	if err != nil {
		uc.logger.Warn("PreviewSeries: validation failed: %v", err)
		return nil, err
	}

	return &PreviewResponse{
		Rule:                 p.rule,
		Count:                len(p.dates),
		Dates:                p.dates,
		ConfirmationRequired: uc.needsConfirmation(len(p.dates)),
	}, nil
}

// Execute создает серию бронирований.
// Занятость отдельных дат не проверяется; вставки без отката при частичном сбое
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация и раскрытие дат
	p, err := uc.buildPlan(req)
	if err != nil {
		uc.logger.Warn("CreateSeries: validation failed: %v", err)
		return nil, err
	}

	// 2. Без правила или даты окончания создаём одиночное бронирование
	if p.single {
		uc.logger.Info("CreateSeries: no recurrence, creating single reservation on %s", calendar.Format(p.template.Date))
		resp, err := uc.single.Execute(ctx, &req.Template)
		if err != nil {
			return nil, err
		}
		return &Response{
			Rule:         domain.RuleNone,
			Count:        1,
			Reservations: []*domain.Reservation{resp.Reservation},
		}, nil
	}

	count := len(p.dates)
	uc.logger.Info("CreateSeries: rule=%s, start=%s, occurrences=%d, confirmed=%t",
		p.rule, calendar.Format(p.template.Date), count, req.Confirmed)

	// 3. Большая серия требует явного подтверждения до любой записи
	if uc.needsConfirmation(count) && !req.Confirmed {
		uc.logger.Warn("CreateSeries: %d occurrences exceed threshold %d, confirmation required",
			count, uc.cfg.ConfirmationThreshold)
		return nil, &domain.ConfirmationRequiredError{Count: count, Dates: p.dates}
	}

	// 4. Вставляем вхождения с ограниченным параллелизмом
	created, failures := uc.insertAll(ctx, p)

	if len(failures) > 0 {
		succeeded := make([]string, 0, len(created))
		for _, r := range created {
			succeeded = append(succeeded, r.ID)
		}
		uc.logger.Error("CreateSeries: %d of %d occurrences failed", len(failures), count)
		return nil, &domain.PartialBatchFailure{Succeeded: succeeded, Failed: failures}
	}

	uc.logger.Info("CreateSeries: successfully created %d reservations", len(created))

	return &Response{
		Rule:         p.rule,
		Count:        len(created),
		Reservations: created,
	}, nil
}

// insertAll вставляет все даты серии. Результаты в порядке дат
func (uc *UseCase) insertAll(ctx context.Context, p *plan) ([]*domain.Reservation, []domain.FailedOccurrence) {
	results := make([]*domain.Reservation, len(p.dates))
	errs := make([]error, len(p.dates))

	var g errgroup.Group
	g.SetLimit(uc.cfg.InsertConcurrency)

	for i, date := range p.dates {
		occurrence := *p.template
		occurrence.Date = date

		g.Go(func() error {
			results[i], errs[i] = uc.reservationRepo.Create(ctx, &occurrence)
			return nil
		})
	}
	_ = g.Wait()

	created := make([]*domain.Reservation, 0, len(p.dates))
	failures := make([]domain.FailedOccurrence, 0)

	for i, date := range p.dates {
		if errs[i] != nil {
			uc.metrics.SeriesOccurrence(resultFailed)
			uc.logger.Warn("CreateSeries: occurrence %s failed: %v", calendar.Format(date), errs[i])
			failures = append(failures, domain.FailedOccurrence{Date: date, Reason: failureReason(errs[i])})
			continue
		}

		uc.metrics.SeriesOccurrence(resultCreated)
		uc.metrics.ReservationCreated(create_reservation.PathOperator, string(results[i].Slot))
		uc.notifier.Notify(ctx, notifier.EventReservationCreated, results[i])
		created = append(created, results[i])
	}

	return created, failures
}

func (uc *UseCase) needsConfirmation(count int) bool {
	return count > uc.cfg.ConfirmationThreshold
}

func failureReason(err error) string {
	if errors.Is(err, domain.ErrSlotOccupied) {
		return reasonSlotOccupied
	}
	return err.Error()
}
