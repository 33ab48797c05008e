package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

var statusLabels = map[ReservationStatus]string{
	StatusPending:   "Pending",
	StatusConfirmed: "Confirmed",
	StatusCompleted: "Completed",
	StatusCancelled: "Cancelled",
}

// ParseStatus converts a status token into ReservationStatus
func ParseStatus(raw string) (ReservationStatus, error) {
	s := ReservationStatus(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := statusLabels[s]; !ok {
		return "", fmt.Errorf("unknown status %q", raw)
	}
	return s, nil
}

// IsValid reports whether the status is one of the known values
func (s ReservationStatus) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the display label of the status
func (s ReservationStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// SortPriority orders statuses for the "status" listing sort
func (s ReservationStatus) SortPriority() int {
	switch s {
	case StatusPending:
		return 1
	case StatusConfirmed:
		return 2
	case StatusCompleted:
		return 3
	case StatusCancelled:
		return 4
	default:
		return 5
	}
}

// ReservationDetails holds descriptive fields carried through unchanged by the core
type ReservationDetails struct {
	CourseID      string
	CourseName    string
	Organization  string
	ContactName   string
	ContactPhone  string
	ContactEmail  string
	ContactSocial string
	City          string
	Notes         string
	WorkCategory  string
	FeeType       string
	Source        string
}

// Reservation represents one booked occurrence of a date and slot
type Reservation struct {
	ID     string
	Date   time.Time // UTC midnight
	Slot   Slot
	Status ReservationStatus

	RatePerHour     decimal.Decimal
	PaymentReceived bool
	ReceiptSent     bool

	Details ReservationDetails

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation still occupies its slot
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelled
}

// Fee returns the computed fee: rate per hour multiplied by the slot hours
func (r *Reservation) Fee() decimal.Decimal {
	return r.RatePerHour.Mul(decimal.NewFromInt(int64(r.Slot.Hours())))
}

// IsUnpaid returns true if the reservation is billable and payment is still outstanding
func (r *Reservation) IsUnpaid() bool {
	return (r.Status == StatusConfirmed || r.Status == StatusCompleted) && !r.PaymentReceived
}

// ReservationPatch describes a single-document field update. Nil fields are left untouched.
type ReservationPatch struct {
	Status          *ReservationStatus
	PaymentReceived *bool
	ReceiptSent     *bool
	RatePerHour     *decimal.Decimal
	Details         *ReservationDetails
}

// IsEmpty returns true if the patch changes nothing
func (p ReservationPatch) IsEmpty() bool {
	return p.Status == nil && p.PaymentReceived == nil && p.ReceiptSent == nil &&
		p.RatePerHour == nil && p.Details == nil
}

// Apply writes the patch fields into r
func (p ReservationPatch) Apply(r *Reservation) {
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.PaymentReceived != nil {
		r.PaymentReceived = *p.PaymentReceived
	}
	if p.ReceiptSent != nil {
		r.ReceiptSent = *p.ReceiptSent
	}
	if p.RatePerHour != nil {
		r.RatePerHour = *p.RatePerHour
	}
	if p.Details != nil {
		r.Details = *p.Details
	}
}

// ParseRate parses a per-hour rate. Empty input means zero; negative values are rejected.
func ParseRate(raw string) (decimal.Decimal, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return decimal.Zero, nil
	}
	rate, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, NewValidationError("rate_per_hour", "must be a number")
	}
	if rate.IsNegative() {
		return decimal.Zero, NewValidationError("rate_per_hour", "must not be negative")
	}
	return rate, nil
}
