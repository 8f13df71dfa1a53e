package resolve_availability

import (
	"errors"
	"net/http"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	resolveAvailability "github.com/BongoShiny/agenda-pro-new-sub001/internal/usecase/resolve_availability"
)

const (
	msgInvalidProfessionalID = "некорректный ID специалиста"
	msgInvalidUnitID         = "некорректный ID юнита"
	msgMissingDate           = "дата обязательна"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound              = "специалист или юнит не найден"
	msgInvalidData           = "некорректные данные расписания"
)

type Handler struct {
	useCase ResolveAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase ResolveAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/units/{unitId}/availability
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := handlers.PathID(r, "professionalId")
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/units/{id}/availability - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	unitID, err := handlers.PathID(r, "unitId")
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/units/{id}/availability - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /professionals/{id}/units/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/units/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &resolveAvailability.Request{
		ProfessionalID: professionalID,
		UnitID:         unitID,
		Date:           date,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("GET /professionals/{id}/units/{id}/availability - Not found: professional_id=%d, unit_id=%d",
				professionalID, unitID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /professionals/{id}/units/{id}/availability - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("GET /professionals/{id}/units/{id}/availability - Failed to resolve: professional_id=%d, unit_id=%d, error=%v",
				professionalID, unitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /professionals/{id}/units/{id}/availability - Window resolved: professional_id=%d, unit_id=%d, source=%s",
		professionalID, unitID, result.Window.Source)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
