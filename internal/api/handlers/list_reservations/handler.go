package list_reservations

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LectureBooking/internal/api/handlers"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/reservations
// Query params: month (YYYY-MM), status, organization, courseName, search, sort (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq := ToServiceRequest(r.URL.Query())

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		var (
			validationErr *domain.ValidationError
			storeErr      *domain.StoreUnavailableError
		)
		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("GET /admin/reservations - Invalid parameters: %v", err)
			handlers.RespondValidationError(w, msgInvalidParams, validationErr)

		case errors.As(err, &storeErr):
			h.logger.Error("GET /admin/reservations - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /admin/reservations - Failed to list reservations: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/reservations - Reservations retrieved successfully: count=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
