package check_availability

import (
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil || req.Date.IsZero() {
		return domain.NewValidationError("date", "is required")
	}
	return nil
}

// occupiedSlots возвращает уникальные занятые слоты в порядке каталога
func occupiedSlots(reservations []*domain.Reservation) []domain.Slot {
	seen := make(map[domain.Slot]bool, len(reservations))
	for _, r := range reservations {
		if r.IsActive() {
			seen[r.Slot] = true
		}
	}

	out := make([]domain.Slot, 0, len(seen))
	for _, slot := range []domain.Slot{domain.SlotMorning, domain.SlotAfternoon, domain.SlotUnspecified} {
		if seen[slot] {
			out = append(out, slot)
		}
	}
	return out
}

// isFreeAmong проверяет, что ни один занятый слот не пересекается с запрошенным
func isFreeAmong(occupied []domain.Slot, slot domain.Slot) bool {
	for _, o := range occupied {
		if o.ConflictsWith(slot) {
			return false
		}
	}
	return true
}
