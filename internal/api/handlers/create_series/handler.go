package create_series

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LectureBooking/internal/api/handlers"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidRequest       = "некорректные данные бронирования"
	msgSlotOccupied         = "выбранный слот уже занят"
	msgConfirmationRequired = "серия слишком большая, требуется подтверждение"
)

type Handler struct {
	useCase CreateSeriesUseCase
	logger  Logger
}

func NewHandler(useCase CreateSeriesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSeriesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		var (
			validationErr   *domain.ValidationError
			confirmationErr *domain.ConfirmationRequiredError
			partialErr      *domain.PartialBatchFailure
			storeErr        *domain.StoreUnavailableError
		)
		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /admin/reservations - Validation failed: %v", err)
			handlers.RespondValidationError(w, msgInvalidRequest, validationErr)

		case errors.As(err, &confirmationErr):
			h.logger.Warn("POST /admin/reservations - Confirmation required: count=%d", confirmationErr.Count)
			handlers.RespondJSON(w, http.StatusConflict, &ConfirmationRequiredResponse{
				Error: msgConfirmationRequired,
				Count: confirmationErr.Count,
				Dates: formatDates(confirmationErr.Dates),
			})

		case errors.As(err, &partialErr):
			h.logger.Error("POST /admin/reservations - Series partially created: succeeded=%d, failed=%d",
				len(partialErr.Succeeded), len(partialErr.Failed))
			handlers.RespondJSON(w, http.StatusMultiStatus, FromPartialFailure(partialErr))

		case errors.Is(err, domain.ErrSlotOccupied):
			h.logger.Warn("POST /admin/reservations - Slot occupied: date=%s, slot=%s", req.Date, req.Slot)
			handlers.RespondConflict(w, msgSlotOccupied)

		case errors.As(err, &storeErr):
			h.logger.Error("POST /admin/reservations - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /admin/reservations - Failed to create reservations: date=%s, rule=%s, error=%v",
				req.Date, req.Rule, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/reservations - Reservations created successfully: rule=%s, count=%d",
		result.Rule, result.Count)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// HandlePreview POST /api/v1/admin/reservations/preview
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	var req CreateSeriesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/reservations/preview - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Preview(req.ToUseCaseRequest())
	if err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			h.logger.Warn("POST /admin/reservations/preview - Validation failed: %v", err)
			handlers.RespondValidationError(w, msgInvalidRequest, validationErr)
			return
		}
		h.logger.Error("POST /admin/reservations/preview - Failed to preview series: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromPreviewResponse(result))
}
