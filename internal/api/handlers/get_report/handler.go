package get_report

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-LectureBooking/internal/api/handlers"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
	buildReport "github.com/m04kA/SMC-LectureBooking/internal/usecase/build_report"
)

const (
	msgInvalidYear   = "некорректный год"
	msgInvalidParams = "некорректные параметры отчёта"
	msgNoData        = "нет данных за выбранный период"
)

type Handler struct {
	useCase BuildReportUseCase
	logger  Logger
}

func NewHandler(useCase BuildReportUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/reports
// Query params: year или start+end (YYYY-MM-DD), category (course_name | work_category)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /admin/reports - Invalid year: %v", err)
		handlers.RespondBadRequest(w, msgInvalidYear)
		return
	}

	report, err := h.useCase.Report(r.Context(), req)
	if err != nil {
		h.respondError(w, "GET /admin/reports", err)
		return
	}

	h.logger.Info("GET /admin/reports - Report built: window=%s, count=%d", report.Window, report.TotalCount)
	handlers.RespondJSON(w, http.StatusOK, FromReport(report))
}

// HandleExport GET /api/v1/admin/reports/export
// Query params: year или start+end, sort (date-desc | date-asc | status)
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	req, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /admin/reports/export - Invalid year: %v", err)
		handlers.RespondBadRequest(w, msgInvalidYear)
		return
	}

	export, err := h.useCase.Export(r.Context(), req)
	if err != nil {
		h.respondError(w, "GET /admin/reports/export", err)
		return
	}

	h.logger.Info("GET /admin/reports/export - Export built: file=%s, rows=%d", export.FileName, export.Rows)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(export.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(export.Data); err != nil {
		h.logger.Warn("GET /admin/reports/export - Failed to write response: %v", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	var (
		validationErr *domain.ValidationError
		storeErr      *domain.StoreUnavailableError
	)
	switch {
	case errors.As(err, &validationErr):
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondValidationError(w, msgInvalidParams, validationErr)

	case errors.Is(err, buildReport.ErrNoData):
		h.logger.Warn("%s - No data for the selected window", route)
		handlers.RespondNotFound(w, msgNoData)

	case errors.As(err, &storeErr):
		h.logger.Error("%s - Store unavailable: %v", route, err)
		handlers.RespondServiceUnavailable(w)

	default:
		h.logger.Error("%s - Failed to build report: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
