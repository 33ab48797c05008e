package build_report

import (
	"bytes"
	"context"

	"github.com/m04kA/SMC-LectureBooking/internal/domain"
	"github.com/m04kA/SMC-LectureBooking/internal/service/reports"
)

// UseCase use case отчётов: снимок хранилища и чистая агрегация поверх него
type UseCase struct {
	reservationRepo ReservationRepository
	cfg             Config
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, cfg Config, logger Logger) *UseCase {
	if cfg.CategoryKey == "" {
		cfg.CategoryKey = domain.CategoryKeyCourseName
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		cfg:             cfg,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Report строит агрегированный отчёт за окно
func (uc *UseCase) Report(ctx context.Context, req *Request) (*reports.Report, error) {
	// 1. Валидация окна и ключа категории
	window, err := resolveWindow(req, uc.timeProvider.Now().Year())
	if err != nil {
		uc.logger.Warn("BuildReport: invalid window: %v", err)
		return nil, err
	}
	categoryOf, err := resolveCategory(req.CategoryKey, uc.cfg.CategoryKey)
	if err != nil {
		uc.logger.Warn("BuildReport: %v", err)
		return nil, err
	}

	// 2. Снимок хранилища
	snapshot, err := uc.snapshot(ctx, "build report")
	if err != nil {
		return nil, err
	}

	// 3. Агрегация
	report := reports.Aggregate(snapshot, window, categoryOf)

	uc.logger.Info("BuildReport: window=%s, count=%d, revenue=%s", window, report.TotalCount, report.TotalRevenue)
	return &report, nil
}

// Export формирует CSV по неотменённым бронированиям окна
func (uc *UseCase) Export(ctx context.Context, req *Request) (*ExportResponse, error) {
	window, err := resolveWindow(req, uc.timeProvider.Now().Year())
	if err != nil {
		uc.logger.Warn("ExportReport: invalid window: %v", err)
		return nil, err
	}
	order, ok := domain.ParseSort(req.Sort)
	if !ok {
		return nil, domain.NewValidationError("sort", "must be one of date-desc, date-asc, status")
	}

	snapshot, err := uc.snapshot(ctx, "export report")
	if err != nil {
		return nil, err
	}

	rows := reports.Sorted(reports.Filter(snapshot, window), order)
	if len(rows) == 0 {
		uc.logger.Warn("ExportReport: no data for window=%s", window)
		return nil, ErrNoData
	}

	var buf bytes.Buffer
	if err := reports.ExportCSV(&buf, rows); err != nil {
		uc.logger.Error("ExportReport: failed to write csv: %v", err)
		return nil, err
	}

	uc.logger.Info("ExportReport: window=%s, rows=%d", window, len(rows))

	return &ExportResponse{
		FileName: exportFileName(req, window),
		Rows:     len(rows),
		Data:     buf.Bytes(),
	}, nil
}

// Dashboard считает карточки дашборда на сегодня
func (uc *UseCase) Dashboard(ctx context.Context) (*reports.Dashboard, error) {
	snapshot, err := uc.snapshot(ctx, "dashboard")
	if err != nil {
		return nil, err
	}

	dashboard := reports.BuildDashboard(snapshot, uc.timeProvider.Now())

	uc.logger.Info("Dashboard: pending=%d, upcoming=%d", dashboard.PendingCount, dashboard.UpcomingCount)
	return &dashboard, nil
}

// Detail раскрывает список карточки дашборда
func (uc *UseCase) Detail(ctx context.Context, kind string) (*DetailResponse, error) {
	detailKind, err := reports.ParseDetailKind(kind)
	if err != nil {
		uc.logger.Warn("DashboardDetail: %v", err)
		return nil, err
	}

	snapshot, err := uc.snapshot(ctx, "dashboard detail")
	if err != nil {
		return nil, err
	}

	items := reports.Detail(snapshot, detailKind, uc.timeProvider.Now())

	return &DetailResponse{
		Kind:         detailKind,
		Reservations: items,
		Total:        reports.DetailTotal(items),
	}, nil
}

// snapshot читает всю коллекцию с ограничением по времени
func (uc *UseCase) snapshot(ctx context.Context, op string) ([]*domain.Reservation, error) {
	if uc.cfg.StoreTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.cfg.StoreTimeout)
		defer cancel()
	}

	snapshot, err := uc.reservationRepo.ListAll(ctx)
	if err != nil {
		uc.logger.Error("%s: failed to read reservations: %v", op, err)
		return nil, &domain.StoreUnavailableError{Op: op, Err: err}
	}
	return snapshot, nil
}
