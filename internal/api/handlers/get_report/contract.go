package get_report

import (
	"context"

	"github.com/m04kA/SMC-LectureBooking/internal/service/reports"
	buildReport "github.com/m04kA/SMC-LectureBooking/internal/usecase/build_report"
)

type BuildReportUseCase interface {
	Report(ctx context.Context, req *buildReport.Request) (*reports.Report, error)
	Export(ctx context.Context, req *buildReport.Request) (*buildReport.ExportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
