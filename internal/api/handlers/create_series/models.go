package create_series

import (
	"time"

	"github.com/m04kA/SMC-LectureBooking/internal/calendar"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
	"github.com/m04kA/SMC-LectureBooking/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-LectureBooking/internal/usecase/create_reservation"
	createSeries "github.com/m04kA/SMC-LectureBooking/internal/usecase/create_series"
)

// CreateSeriesRequest HTTP request model ввода оператора.
// Без rule или endDate создаётся одно бронирование
type CreateSeriesRequest struct {
	Date          string `json:"date"`
	Slot          string `json:"slot"`
	Status        string `json:"status,omitempty"`
	RatePerHour   string `json:"ratePerHour,omitempty"`
	CourseID      string `json:"courseId,omitempty"`
	CourseName    string `json:"courseName,omitempty"`
	Organization  string `json:"organization,omitempty"`
	ContactName   string `json:"contactName,omitempty"`
	ContactPhone  string `json:"contactPhone,omitempty"`
	ContactEmail  string `json:"contactEmail,omitempty"`
	ContactSocial string `json:"contactSocial,omitempty"`
	City          string `json:"city,omitempty"`
	Notes         string `json:"notes,omitempty"`
	WorkCategory  string `json:"workCategory,omitempty"`
	FeeType       string `json:"feeType,omitempty"`
	Source        string `json:"source,omitempty"`

	Rule    string `json:"rule,omitempty"`    // none | weekly | biweekly | monthly
	EndDate string `json:"endDate,omitempty"` // "2024-06-30"
	Confirm bool   `json:"confirm,omitempty"`
}

// SeriesResponse HTTP response model
type SeriesResponse struct {
	Rule         string                       `json:"rule"`
	Count        int                          `json:"count"`
	Reservations []models.ReservationResponse `json:"reservations"`
}

// PreviewResponse HTTP response model предпросмотра серии
type PreviewResponse struct {
	Rule                 string   `json:"rule"`
	Count                int      `json:"count"`
	Dates                []string `json:"dates"`
	ConfirmationRequired bool     `json:"confirmationRequired"`
}

// ConfirmationRequiredResponse тело 409 для большой серии без подтверждения
type ConfirmationRequiredResponse struct {
	Error string   `json:"error"`
	Count int      `json:"count"`
	Dates []string `json:"dates"`
}

// PartialFailureResponse тело 207 при частичном создании серии
type PartialFailureResponse struct {
	Succeeded []string            `json:"succeeded"`
	Failed    []FailedOccurrence `json:"failed"`
}

// FailedOccurrence дата серии, которую не удалось записать
type FailedOccurrence struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateSeriesRequest) ToUseCaseRequest() *createSeries.Request {
	return &createSeries.Request{
		Template: createReservation.Request{
			Date:          r.Date,
			Slot:          r.Slot,
			Status:        r.Status,
			RatePerHour:   r.RatePerHour,
			CourseID:      r.CourseID,
			CourseName:    r.CourseName,
			Organization:  r.Organization,
			ContactName:   r.ContactName,
			ContactPhone:  r.ContactPhone,
			ContactEmail:  r.ContactEmail,
			ContactSocial: r.ContactSocial,
			City:          r.City,
			Notes:         r.Notes,
			WorkCategory:  r.WorkCategory,
			FeeType:       r.FeeType,
			Source:        r.Source,
		},
		Rule:      r.Rule,
		EndDate:   r.EndDate,
		Confirmed: r.Confirm,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createSeries.Response) *SeriesResponse {
	return &SeriesResponse{
		Rule:         string(resp.Rule),
		Count:        resp.Count,
		Reservations: models.FromDomainReservationList(resp.Reservations),
	}
}

// FromPreviewResponse конвертирует предпросмотр в HTTP response
func FromPreviewResponse(resp *createSeries.PreviewResponse) *PreviewResponse {
	return &PreviewResponse{
		Rule:                 string(resp.Rule),
		Count:                resp.Count,
		Dates:                formatDates(resp.Dates),
		ConfirmationRequired: resp.ConfirmationRequired,
	}
}

// FromPartialFailure конвертирует частичный сбой серии в HTTP response
func FromPartialFailure(e *domain.PartialBatchFailure) *PartialFailureResponse {
	failed := make([]FailedOccurrence, len(e.Failed))
	for i, f := range e.Failed {
		failed[i] = FailedOccurrence{
			Date:   calendar.Format(f.Date),
			Reason: f.Reason,
		}
	}

	succeeded := e.Succeeded
	if succeeded == nil {
		succeeded = []string{}
	}

	return &PartialFailureResponse{
		Succeeded: succeeded,
		Failed:    failed,
	}
}

func formatDates(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = calendar.Format(d)
	}
	return out
}
