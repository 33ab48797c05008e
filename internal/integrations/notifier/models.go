package notifier

import (
	"time"

	"github.com/m04kA/SMC-LectureBooking/internal/calendar"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

// Ключи маршрутизации событий
const (
	EventReservationCreated   = "reservation.created"
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationCancelled = "reservation.cancelled"
)

// Event тело события о бронировании
type Event struct {
	Event         string    `json:"event"`
	ReservationID string    `json:"reservation_id"`
	Date          string    `json:"date"`
	Slot          string    `json:"slot"`
	SlotLabel     string    `json:"slot_label"`
	Status        string    `json:"status"`
	CourseName    string    `json:"course_name"`
	Organization  string    `json:"organization"`
	ContactName   string    `json:"contact_name"`
	ContactEmail  string    `json:"contact_email,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewEvent собирает событие из бронирования
func NewEvent(name string, res *domain.Reservation, at time.Time) Event {
	return Event{
		Event:         name,
		ReservationID: res.ID,
		Date:          calendar.Format(res.Date),
		Slot:          string(res.Slot),
		SlotLabel:     res.Slot.Label(),
		Status:        string(res.Status),
		CourseName:    res.Details.CourseName,
		Organization:  res.Details.Organization,
		ContactName:   res.Details.ContactName,
		ContactEmail:  res.Details.ContactEmail,
		OccurredAt:    at.UTC(),
	}
}
