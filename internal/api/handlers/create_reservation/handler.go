package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LectureBooking/internal/api/handlers"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequest     = "некорректные данные заявки"
	msgSlotOccupied       = "выбранный слот уже занят"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		var (
			validationErr *domain.ValidationError
			storeErr      *domain.StoreUnavailableError
		)
		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /reservations - Validation failed: %v", err)
			handlers.RespondValidationError(w, msgInvalidRequest, validationErr)

		case errors.Is(err, domain.ErrSlotOccupied):
			h.logger.Warn("POST /reservations - Slot occupied: date=%s, slot=%s", req.Date, req.Slot)
			handlers.RespondConflict(w, msgSlotOccupied)

		case errors.As(err, &storeErr):
			h.logger.Error("POST /reservations - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: date=%s, slot=%s, error=%v",
				req.Date, req.Slot, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: id=%s, date=%s, slot=%s",
		result.Reservation.ID, req.Date, req.Slot)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
