package build_report

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-LectureBooking/internal/calendar"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
	"github.com/m04kA/SMC-LectureBooking/internal/service/reports"
)

// resolveWindow выбирает окно отчёта: диапазон дат или календарный год
func resolveWindow(req *Request, currentYear int) (reports.Window, error) {
	start, end := strings.TrimSpace(req.Start), strings.TrimSpace(req.End)

	if start == "" && end == "" {
		year := req.Year
		if year == 0 {
			year = currentYear
		}
		if year < 1 || year > 9999 {
			return reports.Window{}, domain.NewValidationError("year", "is out of range")
		}
		return reports.YearWindow(year), nil
	}

	if start == "" || end == "" {
		return reports.Window{}, domain.NewValidationError("range", "start and end must be given together")
	}

	s, err := calendar.ParseDate(start)
	if err != nil {
		return reports.Window{}, domain.NewValidationError("start", "must be a calendar date in YYYY-MM-DD format")
	}
	e, err := calendar.ParseDate(end)
	if err != nil {
		return reports.Window{}, domain.NewValidationError("end", "must be a calendar date in YYYY-MM-DD format")
	}

	return reports.RangeWindow(s, e)
}

// resolveCategory проверяет ключ категории
func resolveCategory(key, fallback string) (reports.CategoryFunc, error) {
	if key == "" {
		key = fallback
	}
	switch key {
	case domain.CategoryKeyCourseName, domain.CategoryKeyWorkCategory:
		return reports.CategoryFuncFor(key), nil
	default:
		return nil, domain.NewValidationError("category", fmt.Sprintf("unknown category key %q", key))
	}
}

// exportFileName имя файла экспорта для окна
func exportFileName(req *Request, w reports.Window) string {
	if strings.TrimSpace(req.Start) == "" {
		return fmt.Sprintf("lecture-report_%d.csv", w.Start.Year())
	}
	return fmt.Sprintf("lecture-report_%s_%s.csv", calendar.Format(w.Start), calendar.Format(w.End))
}
