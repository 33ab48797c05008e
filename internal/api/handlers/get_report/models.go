package get_report

import (
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-LectureBooking/internal/calendar"
	"github.com/m04kA/SMC-LectureBooking/internal/service/reports"
	buildReport "github.com/m04kA/SMC-LectureBooking/internal/usecase/build_report"
)

// ReportResponse HTTP response model отчёта
type ReportResponse struct {
	Start          string   `json:"start"`
	End            string   `json:"end"`
	MonthlyRevenue []string `json:"monthlyRevenue"` // 12 значений, январь первым
	Categories     []Bucket `json:"categories"`
	Locations      []Bucket `json:"locations"`
	TotalRevenue   string   `json:"totalRevenue"`
	TotalCount     int      `json:"totalCount"`
	AverageRevenue string   `json:"averageRevenue"`
}

// Bucket элемент распределения
type Bucket struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ToUseCaseRequest формирует запрос use case из query параметров
func ToUseCaseRequest(query url.Values) (*buildReport.Request, error) {
	req := &buildReport.Request{
		Start:       query.Get("start"),
		End:         query.Get("end"),
		CategoryKey: query.Get("category"),
		Sort:        query.Get("sort"),
	}

	if yearStr := query.Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return nil, err
		}
		req.Year = year
	}

	return req, nil
}

// FromReport конвертирует отчёт в HTTP response
func FromReport(r *reports.Report) *ReportResponse {
	monthly := make([]string, len(r.MonthlyRevenue))
	for i, v := range r.MonthlyRevenue {
		monthly[i] = v.String()
	}

	return &ReportResponse{
		Start:          calendar.Format(r.Window.Start),
		End:            calendar.Format(r.Window.End),
		MonthlyRevenue: monthly,
		Categories:     fromBuckets(r.Categories),
		Locations:      fromBuckets(r.Locations),
		TotalRevenue:   r.TotalRevenue.String(),
		TotalCount:     r.TotalCount,
		AverageRevenue: r.AverageRevenue.String(),
	}
}

func fromBuckets(buckets []reports.Bucket) []Bucket {
	out := make([]Bucket, len(buckets))
	for i, b := range buckets {
		out[i] = Bucket{Name: b.Name, Count: b.Count}
	}
	return out
}
