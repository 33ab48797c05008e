package get_dashboard

import (
	"context"

	"github.com/m04kA/SMC-LectureBooking/internal/service/reports"
	buildReport "github.com/m04kA/SMC-LectureBooking/internal/usecase/build_report"
)

type DashboardUseCase interface {
	Dashboard(ctx context.Context) (*reports.Dashboard, error)
	Detail(ctx context.Context, kind string) (*buildReport.DetailResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
