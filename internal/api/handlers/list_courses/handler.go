package list_courses

import (
	"net/http"

	"github.com/m04kA/SMC-LectureBooking/internal/api/handlers"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

type Logger interface {
	Info(format string, v ...interface{})
}

// CourseResponse HTTP response model курса каталога
type CourseResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Category       string `json:"category"`
	Duration       string `json:"duration"`
	Description    string `json:"description"`
	TargetAudience string `json:"targetAudience"`
}

type Handler struct {
	courses []CourseResponse
	logger  Logger
}

// NewHandler каталог неизменен после старта, ответ собирается один раз
func NewHandler(courses []domain.Course, logger Logger) *Handler {
	out := make([]CourseResponse, len(courses))
	for i, c := range courses {
		out[i] = CourseResponse{
			ID:             c.ID,
			Title:          c.Title,
			Category:       c.Category,
			Duration:       c.Duration,
			Description:    c.Description,
			TargetAudience: c.TargetAudience,
		}
	}
	return &Handler{
		courses: out,
		logger:  logger,
	}
}

// Handle GET /api/v1/courses
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("GET /courses - Catalog retrieved: count=%d", len(h.courses))
	handlers.RespondJSON(w, http.StatusOK, h.courses)
}
