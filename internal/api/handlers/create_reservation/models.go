package create_reservation

import (
	"github.com/m04kA/SMC-LectureBooking/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-LectureBooking/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model публичной заявки.
// Статус и ставку задаёт только оператор
type CreateReservationRequest struct {
	Date          string `json:"date"` // "2024-03-04"
	Slot          string `json:"slot"` // "morning" | "afternoon"
	CourseID      string `json:"courseId"`
	Organization  string `json:"organization"`
	ContactName   string `json:"contactName"`
	ContactPhone  string `json:"contactPhone"`
	ContactEmail  string `json:"contactEmail,omitempty"`
	ContactSocial string `json:"contactSocial,omitempty"`
	City          string `json:"city,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() *createReservation.Request {
	return &createReservation.Request{
		Public:        true,
		Date:          r.Date,
		Slot:          r.Slot,
		CourseID:      r.CourseID,
		Organization:  r.Organization,
		ContactName:   r.ContactName,
		ContactPhone:  r.ContactPhone,
		ContactEmail:  r.ContactEmail,
		ContactSocial: r.ContactSocial,
		City:          r.City,
		Notes:         r.Notes,
		Source:        "public",
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *models.ReservationResponse {
	return models.FromDomainReservation(resp.Reservation)
}
