package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrReservationNotFound is returned by stores when no reservation has the requested id
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrSlotOccupied is returned by stores that enforce slot uniqueness themselves
	ErrSlotOccupied = errors.New("slot already occupied")
)

// ConflictError means the requested date and slot are already taken.
// errors.Is(err, ErrSlotOccupied) holds for it.
type ConflictError struct {
	Date time.Time
	Slot Slot
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot %s on %s is already occupied", e.Slot, e.Date.Format(DateFormat))
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrSlotOccupied
}

// ValidationError means malformed or missing input, rejected before any store access
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// StoreUnavailableError means the store could not serve the operation
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// FailedOccurrence is one series occurrence that could not be inserted
type FailedOccurrence struct {
	Date   time.Time
	Reason string
}

// PartialBatchFailure reports which occurrences of a series landed and which did not.
// Already created reservations are not rolled back.
type PartialBatchFailure struct {
	Succeeded []string
	Failed    []FailedOccurrence
}

func (e *PartialBatchFailure) Error() string {
	dates := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		dates = append(dates, f.Date.Format(DateFormat))
	}
	return fmt.Sprintf("series partially created: %d succeeded, %d failed (%s)",
		len(e.Succeeded), len(e.Failed), strings.Join(dates, ", "))
}

// ConfirmationRequiredError means the series is too large to be written without
// explicit confirmation. No store writes happened.
type ConfirmationRequiredError struct {
	Count int
	Dates []time.Time
}

func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("series of %d occurrences requires confirmation", e.Count)
}
