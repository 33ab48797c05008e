package domain

import (
	"fmt"
	"strings"
)

// Slot is one of the fixed bookable windows within a day.
type Slot string

const (
	SlotMorning     Slot = "morning"
	SlotAfternoon   Slot = "afternoon"
	SlotUnspecified Slot = "unspecified"
)

var slotLabels = map[Slot]string{
	SlotMorning:     "09:00-12:00",
	SlotAfternoon:   "13:30-16:30",
	SlotUnspecified: "Full day",
}

// AllSlots returns the per-day grid offered for public booking.
// SlotUnspecified is excluded; it is only used for operator-entered reservations.
func AllSlots() []Slot {
	return []Slot{SlotMorning, SlotAfternoon}
}

// Hours returns the billable hour count of the slot.
func (s Slot) Hours() int {
	switch s {
	case SlotMorning, SlotAfternoon:
		return 3
	case SlotUnspecified:
		return 1
	default:
		return 0
	}
}

// IsValid reports whether s belongs to the catalog.
func (s Slot) IsValid() bool {
	_, ok := slotLabels[s]
	return ok
}

// IsPublic reports whether s may be requested through the public booking path.
func (s Slot) IsPublic() bool {
	return s == SlotMorning || s == SlotAfternoon
}

// ConflictsWith reports whether two reservations on the same date with these
// slots would occupy the same time. SlotUnspecified occupies the whole day.
func (s Slot) ConflictsWith(other Slot) bool {
	if s == SlotUnspecified || other == SlotUnspecified {
		return true
	}
	return s == other
}

// Label returns the display label of the slot.
func (s Slot) Label() string {
	if l, ok := slotLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s Slot) String() string {
	return string(s)
}

// ParseSlot accepts either a slot token or its display label.
func ParseSlot(raw string) (Slot, error) {
	v := strings.TrimSpace(raw)
	for slot, label := range slotLabels {
		if strings.EqualFold(v, string(slot)) || v == label {
			return slot, nil
		}
	}
	return "", fmt.Errorf("unknown slot %q", raw)
}
