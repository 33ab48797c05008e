package update_reservation

import (
	"context"

	"github.com/m04kA/SMC-LectureBooking/internal/service/reservations/models"
)

type ReservationService interface {
	UpdateDetails(ctx context.Context, id string, req *models.UpdateDetailsRequest) (*models.ReservationResponse, error)
	UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.ReservationResponse, error)
	MarkPayment(ctx context.Context, id string, received bool) (*models.ReservationResponse, error)
	MarkReceipt(ctx context.Context, id string, sent bool) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
