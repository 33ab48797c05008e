package create_reservation

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-LectureBooking/internal/calendar"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

// buildReservation валидирует запрос и собирает кандидата на вставку
func buildReservation(req *Request, courses []domain.Course, now time.Time) (*domain.Reservation, error) {
	if req == nil {
		return nil, domain.NewValidationError("request", "is required")
	}

	// Дата
	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		return nil, domain.NewValidationError("date", "must be a calendar date in YYYY-MM-DD format")
	}
	if req.Public && !date.After(calendar.DateOnly(now)) {
		return nil, domain.NewValidationError("date", "must be after today")
	}

	// Слот
	slot, err := domain.ParseSlot(req.Slot)
	if err != nil {
		return nil, domain.NewValidationError("slot", err.Error())
	}
	if req.Public && !slot.IsPublic() {
		return nil, domain.NewValidationError("slot", "is not offered for public booking")
	}

	// Статус: публичная заявка всегда начинается с pending
	status := domain.StatusPending
	if !req.Public && strings.TrimSpace(req.Status) != "" {
		status, err = domain.ParseStatus(req.Status)
		if err != nil {
			return nil, domain.NewValidationError("status", err.Error())
		}
	}

	rate, err := domain.ParseRate(req.RatePerHour)
	if err != nil {
		return nil, err
	}

	details, err := buildDetails(req, courses)
	if err != nil {
		return nil, err
	}

	return &domain.Reservation{
		Date:        date,
		Slot:        slot,
		Status:      status,
		RatePerHour: rate,
		Details:     details,
	}, nil
}

func buildDetails(req *Request, courses []domain.Course) (domain.ReservationDetails, error) {
	d := domain.ReservationDetails{
		CourseID:      strings.TrimSpace(req.CourseID),
		CourseName:    strings.TrimSpace(req.CourseName),
		Organization:  strings.TrimSpace(req.Organization),
		ContactName:   strings.TrimSpace(req.ContactName),
		ContactPhone:  strings.TrimSpace(req.ContactPhone),
		ContactEmail:  strings.TrimSpace(req.ContactEmail),
		ContactSocial: strings.TrimSpace(req.ContactSocial),
		City:          strings.TrimSpace(req.City),
		Notes:         strings.TrimSpace(req.Notes),
		WorkCategory:  strings.TrimSpace(req.WorkCategory),
		FeeType:       strings.TrimSpace(req.FeeType),
		Source:        strings.TrimSpace(req.Source),
	}

	// Курс из каталога: название денормализуется в бронирование
	if d.CourseID != "" {
		course, ok := domain.FindCourse(courses, d.CourseID)
		if !ok {
			return d, domain.NewValidationError("course_id", "unknown course")
		}
		d.CourseName = course.Title
		if d.WorkCategory == "" {
			d.WorkCategory = course.Category
		}
	}

	if req.Public {
		if d.CourseID == "" {
			return d, domain.NewValidationError("course_id", "is required")
		}
		if d.ContactName == "" {
			return d, domain.NewValidationError("contact_name", "is required")
		}
		if d.ContactPhone == "" {
			return d, domain.NewValidationError("contact_phone", "is required")
		}
	}

	fields := map[string]string{
		"course_name":    d.CourseName,
		"organization":   d.Organization,
		"contact_name":   d.ContactName,
		"contact_phone":  d.ContactPhone,
		"contact_email":  d.ContactEmail,
		"contact_social": d.ContactSocial,
		"city":           d.City,
		"work_category":  d.WorkCategory,
		"fee_type":       d.FeeType,
		"source":         d.Source,
	}
	for name, value := range fields {
		if utf8.RuneCountInString(value) > domain.MaxFieldLength {
			return d, domain.NewValidationError(name, "is too long")
		}
	}
	if utf8.RuneCountInString(d.Notes) > domain.MaxNotesLength {
		return d, domain.NewValidationError("notes", "is too long")
	}

	return d, nil
}
