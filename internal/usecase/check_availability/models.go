package check_availability

import (
	"time"

	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

// Request модель запроса на проверку занятости даты
type Request struct {
	Date time.Time // Дата (UTC, без времени)
}

// Response модель ответа с занятостью слотов на дату
type Response struct {
	Date     time.Time     // Дата, на которую запрашивались слоты
	Occupied []domain.Slot // Занятые слоты в порядке каталога
	Slots    []SlotState   // Состояние публичной сетки слотов
}

// SlotState состояние одного слота публичной сетки
type SlotState struct {
	Slot  domain.Slot
	Label string
	Hours int
	Free  bool
}
