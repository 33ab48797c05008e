package cancel_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LectureBooking/internal/api/handlers"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

const (
	msgMissingID = "отсутствует ID бронирования"
	msgNotFound  = "бронирование не найдено"
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

// Handle PATCH /api/v1/admin/reservations/{id}/cancel
// Повторная отмена не является ошибкой
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		h.logger.Warn("PATCH /admin/reservations/{id}/cancel - Missing reservation ID")
		handlers.RespondBadRequest(w, msgMissingID)
		return
	}

	reservation, err := h.service.Cancel(r.Context(), id)
	if err != nil {
		var storeErr *domain.StoreUnavailableError
		switch {
		case errors.Is(err, domain.ErrReservationNotFound):
			h.logger.Warn("PATCH /admin/reservations/{id}/cancel - Reservation not found: id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.As(err, &storeErr):
			h.logger.Error("PATCH /admin/reservations/{id}/cancel - Store unavailable: id=%s, error=%v", id, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PATCH /admin/reservations/{id}/cancel - Failed to cancel reservation: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/reservations/{id}/cancel - Reservation cancelled successfully: id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, reservation)
}
