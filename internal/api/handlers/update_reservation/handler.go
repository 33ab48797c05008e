package update_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LectureBooking/internal/api/handlers"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
	"github.com/m04kA/SMC-LectureBooking/internal/service/reservations/models"
)

const (
	msgMissingID          = "отсутствует ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequest     = "некорректные данные бронирования"
	msgMissingFlag        = "не указано значение флага"
	msgNotFound           = "бронирование не найдено"
	msgSlotOccupied       = "слот уже занят другим бронированием"
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

// Handle PUT /api/v1/admin/reservations/{id}
// Заменяет описательные поля и ставку; дата и слот не меняются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /admin/reservations/{id}"

	id, ok := h.reservationID(w, r, route)
	if !ok {
		return
	}

	var req models.UpdateDetailsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	reservation, err := h.service.UpdateDetails(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, route, id, err)
		return
	}

	h.logger.Info("%s - Reservation updated successfully: id=%s", route, id)
	handlers.RespondJSON(w, http.StatusOK, reservation)
}

// HandleStatus PATCH /api/v1/admin/reservations/{id}/status
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /admin/reservations/{id}/status"

	id, ok := h.reservationID(w, r, route)
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	reservation, err := h.service.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, route, id, err)
		return
	}

	h.logger.Info("%s - Status updated successfully: id=%s, status=%s", route, id, reservation.Status)
	handlers.RespondJSON(w, http.StatusOK, reservation)
}

// HandlePayment PATCH /api/v1/admin/reservations/{id}/payment
func (h *Handler) HandlePayment(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /admin/reservations/{id}/payment"

	id, ok := h.reservationID(w, r, route)
	if !ok {
		return
	}

	var req PaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.Received == nil {
		handlers.RespondBadRequest(w, msgMissingFlag)
		return
	}

	reservation, err := h.service.MarkPayment(r.Context(), id, *req.Received)
	if err != nil {
		h.respondError(w, route, id, err)
		return
	}

	h.logger.Info("%s - Payment flag updated: id=%s, received=%t", route, id, *req.Received)
	handlers.RespondJSON(w, http.StatusOK, reservation)
}

// HandleReceipt PATCH /api/v1/admin/reservations/{id}/receipt
func (h *Handler) HandleReceipt(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /admin/reservations/{id}/receipt"

	id, ok := h.reservationID(w, r, route)
	if !ok {
		return
	}

	var req ReceiptRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.Sent == nil {
		handlers.RespondBadRequest(w, msgMissingFlag)
		return
	}

	reservation, err := h.service.MarkReceipt(r.Context(), id, *req.Sent)
	if err != nil {
		h.respondError(w, route, id, err)
		return
	}

	h.logger.Info("%s - Receipt flag updated: id=%s, sent=%t", route, id, *req.Sent)
	handlers.RespondJSON(w, http.StatusOK, reservation)
}

func (h *Handler) reservationID(w http.ResponseWriter, r *http.Request, route string) (string, bool) {
	id := mux.Vars(r)["id"]
	if id == "" {
		h.logger.Warn("%s - Missing reservation ID", route)
		handlers.RespondBadRequest(w, msgMissingID)
		return "", false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, route, id string, err error) {
	var (
		validationErr *domain.ValidationError
		storeErr      *domain.StoreUnavailableError
	)
	switch {
	case errors.As(err, &validationErr):
		h.logger.Warn("%s - Validation failed: id=%s, error=%v", route, id, err)
		handlers.RespondValidationError(w, msgInvalidRequest, validationErr)

	case errors.Is(err, domain.ErrReservationNotFound):
		h.logger.Warn("%s - Reservation not found: id=%s", route, id)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, domain.ErrSlotOccupied):
		h.logger.Warn("%s - Slot occupied: id=%s", route, id)
		handlers.RespondConflict(w, msgSlotOccupied)

	case errors.As(err, &storeErr):
		h.logger.Error("%s - Store unavailable: id=%s, error=%v", route, id, err)
		handlers.RespondServiceUnavailable(w)

	default:
		h.logger.Error("%s - Failed to update reservation: id=%s, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
