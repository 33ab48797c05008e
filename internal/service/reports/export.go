package reports

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/m04kA/SMC-LectureBooking/internal/calendar"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

// utf8BOM нужен, чтобы табличные редакторы распознали кодировку
const utf8BOM = "\ufeff"

// ExportHeader заголовок CSV выгрузки
var ExportHeader = []string{
	"Date", "Slot", "CourseName", "Org", "Contact", "City",
	"RatePerHour", "TotalFee", "Status", "PaymentReceived",
}

// ExportCSV пишет выгрузку в w в порядке rs. Поля с разделителем экранируются кавычками.
func ExportCSV(w io.Writer, rs []*domain.Reservation) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("export: write bom: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}

	for _, r := range rs {
		if err := cw.Write(exportRow(r)); err != nil {
			return fmt.Errorf("export: write row id=%s: %w", r.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}
	return nil
}

func exportRow(r *domain.Reservation) []string {
	paid := "no"
	if r.PaymentReceived {
		paid = "yes"
	}

	return []string{
		calendar.Format(r.Date),
		r.Slot.Label(),
		r.Details.CourseName,
		r.Details.Organization,
		r.Details.ContactName,
		r.Details.City,
		r.RatePerHour.String(),
		r.Fee().String(),
		string(r.Status),
		paid,
	}
}
