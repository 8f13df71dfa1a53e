package schedule_exceptions

import (
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/service/schedules/models"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/types"
)

// CreateExceptionRequest HTTP request model
// Для отпуска (leave) start и end не передаются
type CreateExceptionRequest struct {
	Date   string  `json:"date" validate:"required,isodate"`
	Kind   string  `json:"kind" validate:"required,oneof=leave lunch custom"`
	Start  string  `json:"start,omitempty" validate:"omitempty,hhmm"`
	End    string  `json:"end,omitempty" validate:"omitempty,hhmm"`
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateExceptionRequest) ToServiceRequest(professionalID int64, actor domain.Actor) (*models.CreateExceptionRequest, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	req := &models.CreateExceptionRequest{
		Actor:          actor,
		ProfessionalID: professionalID,
		Date:           date,
		Kind:           domain.ExceptionKind(r.Kind),
		Reason:         r.Reason,
	}

	if r.Start != "" {
		if req.Start, err = types.NewTimeStringFromString(r.Start); err != nil {
			return nil, err
		}
	}
	if r.End != "" {
		if req.End, err = types.NewTimeStringFromString(r.End); err != nil {
			return nil, err
		}
	}

	return req, nil
}
