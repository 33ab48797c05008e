package list_reservations

import (
	"net/url"

	"github.com/m04kA/SMC-LectureBooking/internal/service/reservations/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// Разбор значений выполняет сервис
func ToServiceRequest(query url.Values) *models.ListRequest {
	return &models.ListRequest{
		Month:        query.Get("month"),
		Status:       query.Get("status"),
		Organization: query.Get("organization"),
		CourseName:   query.Get("courseName"),
		Search:       query.Get("search"),
		Sort:         query.Get("sort"),
	}
}
