package models

import (
	"time"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/types"
)

// Request модели

// CreateExceptionRequest запрос на создание исключения графика
// Для отпуска (leave) Start и End не задаются
type CreateExceptionRequest struct {
	Actor          domain.Actor
	ProfessionalID int64
	Date           time.Time
	Kind           domain.ExceptionKind
	Start          types.TimeString
	End            types.TimeString
	Reason         *string
}

// ListExceptionsRequest запрос на получение исключений специалиста за период (включительно)
type ListExceptionsRequest struct {
	ProfessionalID int64
	From           time.Time
	To             time.Time
}

// UpsertSaturdayProfessionalRequest запрос на создание или обновление субботних часов специалиста
// Date == nil означает "каждую субботу"
type UpsertSaturdayProfessionalRequest struct {
	Actor          domain.Actor
	ProfessionalID int64
	UnitID         int64
	Date           *time.Time
	Start          types.TimeString
	End            types.TimeString
	Active         bool
}

// UpsertSaturdayUnitRequest запрос на создание или обновление субботней вместимости юнита
type UpsertSaturdayUnitRequest struct {
	Actor           domain.Actor
	UnitID          int64
	Date            *time.Time
	CapacityPerHour int
	Active          bool
}

// Response модели

// ExceptionResponse ответ с данными исключения графика
type ExceptionResponse struct {
	ID             int64     `json:"id"`
	ProfessionalID int64     `json:"professionalId"`
	Date           string    `json:"date"`
	Kind           string    `json:"kind"`
	Start          *string   `json:"start,omitempty"`
	End            *string   `json:"end,omitempty"`
	Reason         *string   `json:"reason,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ExceptionListResponse ответ со списком исключений
type ExceptionListResponse struct {
	Exceptions []ExceptionResponse `json:"exceptions"`
}

// SaturdayProfessionalResponse ответ с субботними часами специалиста
type SaturdayProfessionalResponse struct {
	ID             int64     `json:"id"`
	ProfessionalID int64     `json:"professionalId"`
	UnitID         int64     `json:"unitId"`
	Scope          string    `json:"scope"` // "recurring" или дата
	Start          string    `json:"start"`
	End            string    `json:"end"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// SaturdayProfessionalListResponse ответ со списком субботних часов
type SaturdayProfessionalListResponse struct {
	Configs []SaturdayProfessionalResponse `json:"configs"`
}

// SaturdayUnitResponse ответ с субботней вместимостью юнита
type SaturdayUnitResponse struct {
	ID              int64     `json:"id"`
	UnitID          int64     `json:"unitId"`
	Scope           string    `json:"scope"`
	CapacityPerHour int       `json:"capacityPerHour"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// SaturdayUnitListResponse ответ со списком субботних настроек юнитов
type SaturdayUnitListResponse struct {
	Configs []SaturdayUnitResponse `json:"configs"`
}

// Методы конвертации

// ToDomainException конвертирует запрос в domain модель
func (r *CreateExceptionRequest) ToDomainException() *domain.ScheduleException {
	e := &domain.ScheduleException{
		ProfessionalID: r.ProfessionalID,
		Date:           r.Date,
		Kind:           r.Kind,
		Reason:         r.Reason,
	}
	if r.Kind != domain.ExceptionLeave {
		e.Start = r.Start
		e.End = r.End
	}
	return e
}

// ToDomainConfig конвертирует запрос в domain модель
func (r *UpsertSaturdayProfessionalRequest) ToDomainConfig() *domain.SaturdayProfessionalConfig {
	return &domain.SaturdayProfessionalConfig{
		ProfessionalID: r.ProfessionalID,
		UnitID:         r.UnitID,
		Scope:          scopeOf(r.Date),
		Start:          r.Start,
		End:            r.End,
		Active:         r.Active,
	}
}

// ToDomainConfig конвертирует запрос в domain модель
func (r *UpsertSaturdayUnitRequest) ToDomainConfig() *domain.SaturdayUnitConfig {
	return &domain.SaturdayUnitConfig{
		UnitID:          r.UnitID,
		Scope:           scopeOf(r.Date),
		CapacityPerHour: r.CapacityPerHour,
		Active:          r.Active,
	}
}

// FromDomainException конвертирует domain модель в DTO
func FromDomainException(e *domain.ScheduleException) *ExceptionResponse {
	if e == nil {
		return nil
	}

	resp := &ExceptionResponse{
		ID:             e.ID,
		ProfessionalID: e.ProfessionalID,
		Date:           e.Date.Format(domain.DateFormat),
		Kind:           string(e.Kind),
		Reason:         e.Reason,
		CreatedAt:      e.CreatedAt,
	}
	if !e.Start.IsZero() {
		start := e.Start.String()
		resp.Start = &start
	}
	if !e.End.IsZero() {
		end := e.End.String()
		resp.End = &end
	}

	return resp
}

// FromDomainExceptionList конвертирует список domain моделей в DTO
func FromDomainExceptionList(exceptions []domain.ScheduleException) *ExceptionListResponse {
	result := make([]ExceptionResponse, 0, len(exceptions))
	for i := range exceptions {
		result = append(result, *FromDomainException(&exceptions[i]))
	}
	return &ExceptionListResponse{Exceptions: result}
}

// FromDomainSaturdayProfessional конвертирует domain модель в DTO
func FromDomainSaturdayProfessional(c *domain.SaturdayProfessionalConfig) *SaturdayProfessionalResponse {
	if c == nil {
		return nil
	}

	return &SaturdayProfessionalResponse{
		ID:             c.ID,
		ProfessionalID: c.ProfessionalID,
		UnitID:         c.UnitID,
		Scope:          c.Scope.String(),
		Start:          c.Start.String(),
		End:            c.End.String(),
		Active:         c.Active,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// FromDomainSaturdayProfessionalList конвертирует список domain моделей в DTO
func FromDomainSaturdayProfessionalList(configs []domain.SaturdayProfessionalConfig) *SaturdayProfessionalListResponse {
	result := make([]SaturdayProfessionalResponse, 0, len(configs))
	for i := range configs {
		result = append(result, *FromDomainSaturdayProfessional(&configs[i]))
	}
	return &SaturdayProfessionalListResponse{Configs: result}
}

// FromDomainSaturdayUnit конвертирует domain модель в DTO
func FromDomainSaturdayUnit(c *domain.SaturdayUnitConfig) *SaturdayUnitResponse {
	if c == nil {
		return nil
	}

	return &SaturdayUnitResponse{
		ID:              c.ID,
		UnitID:          c.UnitID,
		Scope:           c.Scope.String(),
		CapacityPerHour: c.CapacityPerHour,
		Active:          c.Active,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// FromDomainSaturdayUnitList конвертирует список domain моделей в DTO
func FromDomainSaturdayUnitList(configs []domain.SaturdayUnitConfig) *SaturdayUnitListResponse {
	result := make([]SaturdayUnitResponse, 0, len(configs))
	for i := range configs {
		result = append(result, *FromDomainSaturdayUnit(&configs[i]))
	}
	return &SaturdayUnitListResponse{Configs: result}
}

func scopeOf(date *time.Time) domain.DateScope {
	if date == nil {
		return domain.Recurring()
	}
	return domain.OnDate(*date)
}
