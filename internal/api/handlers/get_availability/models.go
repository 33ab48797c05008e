package get_availability

import (
	"github.com/m04kA/SMC-LectureBooking/internal/calendar"
	checkAvailability "github.com/m04kA/SMC-LectureBooking/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date     string      `json:"date"`
	Occupied []string    `json:"occupied"`
	Slots    []SlotState `json:"slots"`
}

// SlotState модель слота публичной сетки
type SlotState struct {
	Slot  string `json:"slot"`
	Label string `json:"label"`
	Hours int    `json:"hours"`
	Free  bool   `json:"free"`
}

// ToUseCaseRequest создает запрос use case из query параметра date
func ToUseCaseRequest(dateStr string) (*checkAvailability.Request, error) {
	date, err := calendar.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	return &checkAvailability.Request{Date: date}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	occupied := make([]string, len(resp.Occupied))
	for i, s := range resp.Occupied {
		occupied[i] = string(s)
	}

	slots := make([]SlotState, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotState{
			Slot:  string(s.Slot),
			Label: s.Label,
			Hours: s.Hours,
			Free:  s.Free,
		}
	}

	return &AvailabilityResponse{
		Date:     calendar.Format(resp.Date),
		Occupied: occupied,
		Slots:    slots,
	}
}
