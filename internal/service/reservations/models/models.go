package models

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-LectureBooking/internal/calendar"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

// Request модели

// ListRequest запрос на получение списка бронирований оператором
type ListRequest struct {
	Month        string `json:"month,omitempty"`        // YYYY-MM
	Status       string `json:"status,omitempty"`       // Токен статуса
	Organization string `json:"organization,omitempty"` // Точное совпадение
	CourseName   string `json:"courseName,omitempty"`   // Точное совпадение
	Search       string `json:"search,omitempty"`       // Подстрока без учёта регистра
	Sort         string `json:"sort,omitempty"`         // date-desc | date-asc | status
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	filter := domain.ReservationFilter{
		Organization: strings.TrimSpace(r.Organization),
		CourseName:   strings.TrimSpace(r.CourseName),
		Search:       strings.TrimSpace(r.Search),
	}

	if r.Month != "" {
		month, err := calendar.ParseMonth(r.Month)
		if err != nil {
			return filter, domain.NewValidationError("month", "must be in YYYY-MM format")
		}
		filter.Month = &month
	}

	if r.Status != "" {
		status, err := domain.ParseStatus(r.Status)
		if err != nil {
			return filter, domain.NewValidationError("status", err.Error())
		}
		filter.Status = &status
	}

	sort, ok := domain.ParseSort(r.Sort)
	if !ok {
		return filter, domain.NewValidationError("sort", "must be one of date-desc, date-asc, status")
	}
	filter.Sort = sort

	return filter, nil
}

// UpdateStatusRequest запрос на обновление статуса
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateDetailsRequest запрос на полное обновление описательных полей и ставки
type UpdateDetailsRequest struct {
	RatePerHour   *string `json:"ratePerHour,omitempty"`
	CourseID      string  `json:"courseId"`
	CourseName    string  `json:"courseName"`
	Organization  string  `json:"organization"`
	ContactName   string  `json:"contactName"`
	ContactPhone  string  `json:"contactPhone"`
	ContactEmail  string  `json:"contactEmail"`
	ContactSocial string  `json:"contactSocial"`
	City          string  `json:"city"`
	Notes         string  `json:"notes"`
	WorkCategory  string  `json:"workCategory"`
	FeeType       string  `json:"feeType"`
	Source        string  `json:"source"`
}

// ToDomainDetails конвертирует request в описательные поля
func (r *UpdateDetailsRequest) ToDomainDetails() domain.ReservationDetails {
	return domain.ReservationDetails{
		CourseID:      strings.TrimSpace(r.CourseID),
		CourseName:    strings.TrimSpace(r.CourseName),
		Organization:  strings.TrimSpace(r.Organization),
		ContactName:   strings.TrimSpace(r.ContactName),
		ContactPhone:  strings.TrimSpace(r.ContactPhone),
		ContactEmail:  strings.TrimSpace(r.ContactEmail),
		ContactSocial: strings.TrimSpace(r.ContactSocial),
		City:          strings.TrimSpace(r.City),
		Notes:         strings.TrimSpace(r.Notes),
		WorkCategory:  strings.TrimSpace(r.WorkCategory),
		FeeType:       strings.TrimSpace(r.FeeType),
		Source:        strings.TrimSpace(r.Source),
	}
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              string `json:"id"`
	Date            string `json:"date"` // "2024-03-04"
	Slot            string `json:"slot"`
	SlotLabel       string `json:"slotLabel"`
	Status          string `json:"status"`
	StatusLabel     string `json:"statusLabel"`
	RatePerHour     string `json:"ratePerHour"`
	TotalFee        string `json:"totalFee"`
	PaymentReceived bool   `json:"paymentReceived"`
	ReceiptSent     bool   `json:"receiptSent"`

	CourseID      string `json:"courseId,omitempty"`
	CourseName    string `json:"courseName"`
	Organization  string `json:"organization"`
	ContactName   string `json:"contactName"`
	ContactPhone  string `json:"contactPhone,omitempty"`
	ContactEmail  string `json:"contactEmail,omitempty"`
	ContactSocial string `json:"contactSocial,omitempty"`
	City          string `json:"city"`
	Notes         string `json:"notes,omitempty"`
	WorkCategory  string `json:"workCategory,omitempty"`
	FeeType       string `json:"feeType,omitempty"`
	Source        string `json:"source,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Facets значения для фильтров списка
type Facets struct {
	Months        []string `json:"months"`
	Organizations []string `json:"organizations"`
	Courses       []string `json:"courses"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Total        int                   `json:"total"`
	Facets       Facets                `json:"facets"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	d := r.Details
	return &ReservationResponse{
		ID:              r.ID,
		Date:            calendar.Format(r.Date),
		Slot:            string(r.Slot),
		SlotLabel:       r.Slot.Label(),
		Status:          string(r.Status),
		StatusLabel:     r.Status.Label(),
		RatePerHour:     r.RatePerHour.String(),
		TotalFee:        r.Fee().String(),
		PaymentReceived: r.PaymentReceived,
		ReceiptSent:     r.ReceiptSent,
		CourseID:        d.CourseID,
		CourseName:      d.CourseName,
		Organization:    d.Organization,
		ContactName:     d.ContactName,
		ContactPhone:    d.ContactPhone,
		ContactEmail:    d.ContactEmail,
		ContactSocial:   d.ContactSocial,
		City:            d.City,
		Notes:           d.Notes,
		WorkCategory:    d.WorkCategory,
		FeeType:         d.FeeType,
		Source:          d.Source,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		if resp := FromDomainReservation(r); resp != nil {
			out = append(out, *resp)
		}
	}
	return out
}
