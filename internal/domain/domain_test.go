package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_Hours(t *testing.T) {
	assert.Equal(t, 3, SlotMorning.Hours())
	assert.Equal(t, 3, SlotAfternoon.Hours())
	assert.Equal(t, 1, SlotUnspecified.Hours())
	assert.Equal(t, 0, Slot("evening").Hours())
}

func TestAllSlots_ExcludesUnspecified(t *testing.T) {
	assert.Equal(t, []Slot{SlotMorning, SlotAfternoon}, AllSlots())
}

func TestSlot_ConflictsWith(t *testing.T) {
	tests := []struct {
		a, b Slot
		want bool
	}{
		{SlotMorning, SlotMorning, true},
		{SlotAfternoon, SlotAfternoon, true},
		{SlotMorning, SlotAfternoon, false},
		{SlotAfternoon, SlotMorning, false},
		{SlotUnspecified, SlotMorning, true},
		{SlotAfternoon, SlotUnspecified, true},
		{SlotUnspecified, SlotUnspecified, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%s", tt.a, tt.b), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.ConflictsWith(tt.b))
		})
	}
}

func TestParseSlot(t *testing.T) {
	s, err := ParseSlot("09:00-12:00")
	require.NoError(t, err)
	assert.Equal(t, SlotMorning, s)

	s, err = ParseSlot(" Afternoon ")
	require.NoError(t, err)
	assert.Equal(t, SlotAfternoon, s)

	_, err = ParseSlot("18:00-21:00")
	assert.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("Confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, s)

	_, err = ParseStatus("no_show")
	assert.Error(t, err)
}

func TestParseRule(t *testing.T) {
	for raw, want := range map[string]RecurrenceRule{
		"":         RuleNone,
		"none":     RuleNone,
		"weekly":   RuleWeekly,
		"BIWEEKLY": RuleBiweekly,
		"monthly":  RuleMonthly,
	} {
		got, err := ParseRule(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseRule("daily")
	assert.Error(t, err)
}

func TestReservation_Fee(t *testing.T) {
	r := &Reservation{Slot: SlotMorning, RatePerHour: decimal.RequireFromString("1600.5")}
	assert.True(t, r.Fee().Equal(decimal.RequireFromString("4801.5")))

	r.Slot = SlotUnspecified
	assert.True(t, r.Fee().Equal(decimal.RequireFromString("1600.5")))
}

func TestReservation_IsUnpaid(t *testing.T) {
	r := &Reservation{Status: StatusConfirmed}
	assert.True(t, r.IsUnpaid())

	r.PaymentReceived = true
	assert.False(t, r.IsUnpaid())

	r = &Reservation{Status: StatusPending}
	assert.False(t, r.IsUnpaid())
}

func TestReservationPatch_Apply(t *testing.T) {
	r := &Reservation{Status: StatusPending}
	status := StatusConfirmed
	paid := true

	patch := ReservationPatch{Status: &status, PaymentReceived: &paid}
	require.False(t, patch.IsEmpty())
	patch.Apply(r)

	assert.Equal(t, StatusConfirmed, r.Status)
	assert.True(t, r.PaymentReceived)
	assert.False(t, r.ReceiptSent)
	assert.True(t, ReservationPatch{}.IsEmpty())
}

func TestConflictError_IsSlotOccupied(t *testing.T) {
	var err error = &ConflictError{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Slot: SlotMorning}
	wrapped := fmt.Errorf("create: %w", err)

	assert.True(t, errors.Is(wrapped, ErrSlotOccupied))

	var conflict *ConflictError
	require.True(t, errors.As(wrapped, &conflict))
	assert.Equal(t, SlotMorning, conflict.Slot)
	assert.Contains(t, err.Error(), "2024-03-01")
}

func TestStoreUnavailableError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &StoreUnavailableError{Op: "list", Err: cause}
	assert.ErrorIs(t, err, cause)
}

func TestParseRate(t *testing.T) {
	rate, err := ParseRate("")
	require.NoError(t, err)
	assert.True(t, rate.IsZero())

	rate, err = ParseRate(" 1500.5 ")
	require.NoError(t, err)
	assert.Equal(t, "1500.5", rate.String())

	_, err = ParseRate("-1")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "rate_per_hour", vErr.Field)

	_, err = ParseRate("ten")
	assert.ErrorAs(t, err, &vErr)
}
