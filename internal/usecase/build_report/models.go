package build_report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-LectureBooking/internal/domain"
	"github.com/m04kA/SMC-LectureBooking/internal/service/reports"
)

// Request модель запроса отчёта или экспорта.
// Либо Year, либо пара Start/End (включительно)
type Request struct {
	Year        int    // Календарный год (0: текущий)
	Start       string // YYYY-MM-DD
	End         string // YYYY-MM-DD
	CategoryKey string // course_name | work_category, пусто: из конфигурации
	Sort        string // Порядок строк экспорта, пусто: date-desc
}

// ExportResponse готовый CSV-файл
type ExportResponse struct {
	FileName string
	Rows     int
	Data     []byte
}

// DetailResponse раскрытый список карточки дашборда
type DetailResponse struct {
	Kind         reports.DetailKind
	Reservations []*domain.Reservation
	Total        decimal.Decimal
}

// Config параметры use case
type Config struct {
	CategoryKey  string        // Ключ категории по умолчанию
	StoreTimeout time.Duration // Ограничение на чтение снимка
}
