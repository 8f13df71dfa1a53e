package handlers

import "github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"

// IntervalResponse интервал HH:MM
type IntervalResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WindowResponse окно доступности. Границы не передаются для недоступного окна
type WindowResponse struct {
	Start       *string           `json:"start,omitempty"`
	End         *string           `json:"end,omitempty"`
	IsException bool              `json:"isException"`
	IsLeave     bool              `json:"isLeave"`
	Available   bool              `json:"available"`
	Source      string            `json:"source"`
	Lunch       *IntervalResponse `json:"lunch,omitempty"`
}

// FromWindow конвертирует окно в HTTP модель
func FromWindow(window domain.Window) WindowResponse {
	resp := WindowResponse{
		IsException: window.IsException,
		IsLeave:     window.IsLeave,
		Available:   window.Available,
		Source:      string(window.Source),
	}

	if window.Available {
		start, end := window.Start.String(), window.End.String()
		resp.Start = &start
		resp.End = &end
	}

	if window.Lunch != nil {
		resp.Lunch = &IntervalResponse{Start: window.Lunch.Start.String(), End: window.Lunch.End.String()}
	}

	return resp
}
