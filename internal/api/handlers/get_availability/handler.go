package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LectureBooking/internal/api/handlers"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

const (
	msgMissingDate = "дата обязательна"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(dateStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var (
			validationErr *domain.ValidationError
			storeErr      *domain.StoreUnavailableError
		)
		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("GET /availability - Validation failed: %v", err)
			handlers.RespondValidationError(w, msgInvalidDate, validationErr)

		case errors.As(err, &storeErr):
			h.logger.Error("GET /availability - Store unavailable: date=%s, error=%v", dateStr, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /availability - Failed to check availability: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Availability retrieved: date=%s, occupied=%d", dateStr, len(result.Occupied))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
