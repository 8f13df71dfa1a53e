package transition_booking

import (
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/service/bookings/models"
)

// TransitionRequest HTTP request model
type TransitionRequest struct {
	Status  string `json:"status" validate:"required,oneof=agendado confirmado ausencia cancelado concluido"`
	Version int    `json:"version" validate:"gte=0"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *TransitionRequest) ToServiceRequest(actor domain.Actor) *models.TransitionRequest {
	return &models.TransitionRequest{
		Actor:   actor,
		Status:  r.Status,
		Version: r.Version,
	}
}
