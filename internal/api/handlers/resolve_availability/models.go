package resolve_availability

import (
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	resolveAvailability "github.com/BongoShiny/agenda-pro-new-sub001/internal/usecase/resolve_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ProfessionalID int64  `json:"professionalId"`
	UnitID         int64  `json:"unitId"`
	Date           string `json:"date"`
	handlers.WindowResponse
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resolveAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		ProfessionalID: resp.ProfessionalID,
		UnitID:         resp.UnitID,
		Date:           resp.Date.Format(domain.DateFormat),
		WindowResponse: handlers.FromWindow(resp.Window),
	}
}
