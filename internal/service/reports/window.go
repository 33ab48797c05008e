package reports

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-LectureBooking/internal/calendar"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

// Window inclusive reporting period
type Window struct {
	Start time.Time
	End   time.Time
}

// YearWindow returns Jan 1 – Dec 31 of year
func YearWindow(year int) Window {
	return Window{
		Start: calendar.Date(year, time.January, 1),
		End:   calendar.Date(year, time.December, 31),
	}
}

// RangeWindow returns an inclusive custom window
func RangeWindow(start, end time.Time) (Window, error) {
	start, end = calendar.DateOnly(start), calendar.DateOnly(end)
	if end.Before(start) {
		return Window{}, domain.NewValidationError("end", fmt.Sprintf("must not be before start %s", calendar.Format(start)))
	}
	return Window{Start: start, End: end}, nil
}

// Contains reports whether d falls inside the window
func (w Window) Contains(d time.Time) bool {
	return calendar.InRange(d, w.Start, w.End)
}

func (w Window) String() string {
	return calendar.Format(w.Start) + ".." + calendar.Format(w.End)
}
