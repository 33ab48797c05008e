package create_series

import (
	"time"

	"github.com/m04kA/SMC-LectureBooking/internal/calendar"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
	"github.com/m04kA/SMC-LectureBooking/internal/service/recurrence"
)

// plan результат разбора запроса серии
type plan struct {
	single   bool // Серия вырождается в одиночное бронирование
	rule     domain.RecurrenceRule
	template *domain.Reservation
	dates    []time.Time
}

// buildPlan валидирует запрос и раскрывает даты серии
func (uc *UseCase) buildPlan(req *Request) (*plan, error) {
	if req == nil {
		return nil, domain.NewValidationError("request", "is required")
	}

	rule, err := domain.ParseRule(req.Rule)
	if err != nil {
		return nil, domain.NewValidationError("rule", err.Error())
	}

	// Серия создаётся только оператором
	req.Template.Public = false

	template, err := uc.single.Prepare(&req.Template)
	if err != nil {
		return nil, err
	}

	if rule == domain.RuleNone || req.EndDate == "" {
		return &plan{
			single:   true,
			rule:     domain.RuleNone,
			template: template,
			dates:    []time.Time{template.Date},
		}, nil
	}

	end, err := calendar.ParseDate(req.EndDate)
	if err != nil {
		return nil, domain.NewValidationError("end_date", "must be a calendar date in YYYY-MM-DD format")
	}
	if end.Before(template.Date) {
		return nil, domain.NewValidationError("end_date", "must not be before the start date")
	}

	return &plan{
		rule:     rule,
		template: template,
		dates:    recurrence.Expand(template.Date, rule, end),
	}, nil
}
