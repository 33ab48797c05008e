package build_report

import "errors"

var (
	// ErrNoData возвращается, когда в выбранном периоде нет данных для экспорта
	ErrNoData = errors.New("build_report: no reservations in the selected window")
)
