package saturday_configs

import (
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/service/schedules/models"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/types"
)

// UpsertProfessionalRequest HTTP request model
// Без date настройка действует каждую субботу
type UpsertProfessionalRequest struct {
	ProfessionalID int64   `json:"professionalId" validate:"required,gt=0"`
	UnitID         int64   `json:"unitId" validate:"required,gt=0"`
	Date           *string `json:"date,omitempty" validate:"omitempty,isodate"`
	Start          string  `json:"start" validate:"required,hhmm"`
	End            string  `json:"end" validate:"required,hhmm"`
	Active         *bool   `json:"active,omitempty"`
}

// UpsertUnitRequest HTTP request model
type UpsertUnitRequest struct {
	UnitID          int64   `json:"unitId" validate:"required,gt=0"`
	Date            *string `json:"date,omitempty" validate:"omitempty,isodate"`
	CapacityPerHour int     `json:"capacityPerHour" validate:"gte=1,lte=100"`
	Active          *bool   `json:"active,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpsertProfessionalRequest) ToServiceRequest(actor domain.Actor) (*models.UpsertSaturdayProfessionalRequest, error) {
	date, err := handlers.ParseOptionalDate(r.Date)
	if err != nil {
		return nil, err
	}

	start, err := types.NewTimeStringFromString(r.Start)
	if err != nil {
		return nil, err
	}

	end, err := types.NewTimeStringFromString(r.End)
	if err != nil {
		return nil, err
	}

	return &models.UpsertSaturdayProfessionalRequest{
		Actor:          actor,
		ProfessionalID: r.ProfessionalID,
		UnitID:         r.UnitID,
		Date:           date,
		Start:          start,
		End:            end,
		Active:         activeOrDefault(r.Active),
	}, nil
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpsertUnitRequest) ToServiceRequest(actor domain.Actor) (*models.UpsertSaturdayUnitRequest, error) {
	date, err := handlers.ParseOptionalDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &models.UpsertSaturdayUnitRequest{
		Actor:           actor,
		UnitID:          r.UnitID,
		Date:            date,
		CapacityPerHour: r.CapacityPerHour,
		Active:          activeOrDefault(r.Active),
	}, nil
}

// activeOrDefault не переданный active означает включенную настройку
func activeOrDefault(active *bool) bool {
	if active == nil {
		return true
	}
	return *active
}
