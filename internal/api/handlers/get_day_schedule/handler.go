package get_day_schedule

import (
	"errors"
	"net/http"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
)

const (
	msgInvalidProfessionalID = "некорректный ID специалиста"
	msgInvalidUnitID         = "некорректный ID юнита"
	msgMissingDate           = "дата обязательна"
	msgInvalidParams         = "некорректная дата (YYYY-MM-DD) или шаг сетки"
	msgNotFound              = "специалист или юнит не найден"
	msgInvalidData           = "некорректные параметры сетки"
)

type Handler struct {
	useCase GetDayScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetDayScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/units/{unitId}/day-schedule
// Query params: date (required, YYYY-MM-DD), slotMinutes (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := handlers.PathID(r, "professionalId")
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/units/{id}/day-schedule - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	unitID, err := handlers.PathID(r, "unitId")
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/units/{id}/day-schedule - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /professionals/{id}/units/{id}/day-schedule - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(professionalID, unitID, dateStr, r.URL.Query().Get("slotMinutes"))
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/units/{id}/day-schedule - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("GET /professionals/{id}/units/{id}/day-schedule - Not found: professional_id=%d, unit_id=%d",
				professionalID, unitID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /professionals/{id}/units/{id}/day-schedule - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("GET /professionals/{id}/units/{id}/day-schedule - Failed to build schedule: professional_id=%d, unit_id=%d, error=%v",
				professionalID, unitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /professionals/{id}/units/{id}/day-schedule - Schedule built: professional_id=%d, unit_id=%d, slots_count=%d",
		professionalID, unitID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
