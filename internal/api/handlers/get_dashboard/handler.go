package get_dashboard

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LectureBooking/internal/api/handlers"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

const (
	msgInvalidKind = "неизвестный список дашборда"
)

type Handler struct {
	useCase DashboardUseCase
	logger  Logger
}

func NewHandler(useCase DashboardUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/dashboard
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.useCase.Dashboard(r.Context())
	if err != nil {
		h.respondError(w, "GET /admin/dashboard", err)
		return
	}

	h.logger.Info("GET /admin/dashboard - Dashboard built: pending=%d, upcoming=%d",
		dashboard.PendingCount, dashboard.UpcomingCount)
	handlers.RespondJSON(w, http.StatusOK, FromDashboard(dashboard))
}

// HandleDetail GET /api/v1/admin/dashboard/{kind}
// kind: income | pending | upcoming | unpaid
func (h *Handler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	kind := mux.Vars(r)["kind"]

	detail, err := h.useCase.Detail(r.Context(), kind)
	if err != nil {
		h.respondError(w, "GET /admin/dashboard/{kind}", err)
		return
	}

	h.logger.Info("GET /admin/dashboard/{kind} - List built: kind=%s, count=%d", kind, len(detail.Reservations))
	handlers.RespondJSON(w, http.StatusOK, FromDetail(detail))
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	var (
		validationErr *domain.ValidationError
		storeErr      *domain.StoreUnavailableError
	)
	switch {
	case errors.As(err, &validationErr):
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondValidationError(w, msgInvalidKind, validationErr)

	case errors.As(err, &storeErr):
		h.logger.Error("%s - Store unavailable: %v", route, err)
		handlers.RespondServiceUnavailable(w)

	default:
		h.logger.Error("%s - Failed to build dashboard: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
