package get_dashboard

import (
	"github.com/m04kA/SMC-LectureBooking/internal/calendar"
	"github.com/m04kA/SMC-LectureBooking/internal/service/reports"
	"github.com/m04kA/SMC-LectureBooking/internal/service/reservations/models"
	buildReport "github.com/m04kA/SMC-LectureBooking/internal/usecase/build_report"
)

// DashboardResponse HTTP response model дашборда
type DashboardResponse struct {
	Today         string                       `json:"today"`
	MonthIncome   string                       `json:"monthIncome"`
	PendingCount  int                          `json:"pendingCount"`
	UpcomingCount int                          `json:"upcomingCount"`
	UnpaidAmount  string                       `json:"unpaidAmount"`
	Upcoming      []models.ReservationResponse `json:"upcoming"`
	Pending       []models.ReservationResponse `json:"pending"`
}

// DetailResponse HTTP response model списка карточки
type DetailResponse struct {
	Kind         string                       `json:"kind"`
	Reservations []models.ReservationResponse `json:"reservations"`
	Total        string                       `json:"total"`
}

// FromDashboard конвертирует дашборд в HTTP response
func FromDashboard(d *reports.Dashboard) *DashboardResponse {
	return &DashboardResponse{
		Today:         calendar.Format(d.Today),
		MonthIncome:   d.MonthIncome.String(),
		PendingCount:  d.PendingCount,
		UpcomingCount: d.UpcomingCount,
		UnpaidAmount:  d.UnpaidAmount.String(),
		Upcoming:      models.FromDomainReservationList(d.Upcoming),
		Pending:       models.FromDomainReservationList(d.Pending),
	}
}

// FromDetail конвертирует список карточки в HTTP response
func FromDetail(d *buildReport.DetailResponse) *DetailResponse {
	return &DetailResponse{
		Kind:         string(d.Kind),
		Reservations: models.FromDomainReservationList(d.Reservations),
		Total:        d.Total.String(),
	}
}
