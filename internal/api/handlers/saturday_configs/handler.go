package saturday_configs

import (
	"errors"
	"net/http"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/api/middleware"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректные параметры запроса"
	msgInvalidDateTime    = "некорректная дата или время"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступно только администратору"
	msgNotFound           = "специалист или юнит не найден"
	msgInvalidConfig      = "некорректная субботняя настройка"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleUpsertProfessional PUT /api/v1/saturday/professionals
func (h *Handler) HandleUpsertProfessional(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /saturday/professionals - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpsertProfessionalRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /saturday/professionals - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if !handlers.ValidateRequest(w, &req) {
		h.logger.Warn("PUT /saturday/professionals - Validation failed")
		return
	}

	serviceReq, err := req.ToServiceRequest(actor)
	if err != nil {
		h.logger.Warn("PUT /saturday/professionals - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.service.UpsertSaturdayProfessional(r.Context(), serviceReq)
	if err != nil {
		h.respondError(w, "PUT /saturday/professionals", err)
		return
	}

	h.logger.Info("PUT /saturday/professionals - Config saved: id=%d, professional_id=%d, unit_id=%d, scope=%s",
		result.ID, result.ProfessionalID, result.UnitID, result.Scope)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleListProfessional GET /api/v1/saturday/professionals?professionalId=&unitId=
func (h *Handler) HandleListProfessional(w http.ResponseWriter, r *http.Request) {
	professionalID, err := handlers.QueryID(r, "professionalId")
	if err != nil {
		h.logger.Warn("GET /saturday/professionals - Invalid professionalId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	unitID, err := handlers.QueryID(r, "unitId")
	if err != nil {
		h.logger.Warn("GET /saturday/professionals - Invalid unitId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListSaturdayProfessional(r.Context(), professionalID, unitID)
	if err != nil {
		h.respondError(w, "GET /saturday/professionals", err)
		return
	}

	h.logger.Info("GET /saturday/professionals - Found %d configs", len(result.Configs))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpsertUnit PUT /api/v1/saturday/units
func (h *Handler) HandleUpsertUnit(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /saturday/units - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpsertUnitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /saturday/units - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if !handlers.ValidateRequest(w, &req) {
		h.logger.Warn("PUT /saturday/units - Validation failed")
		return
	}

	serviceReq, err := req.ToServiceRequest(actor)
	if err != nil {
		h.logger.Warn("PUT /saturday/units - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.service.UpsertSaturdayUnit(r.Context(), serviceReq)
	if err != nil {
		h.respondError(w, "PUT /saturday/units", err)
		return
	}

	h.logger.Info("PUT /saturday/units - Config saved: id=%d, unit_id=%d, scope=%s, capacity=%d",
		result.ID, result.UnitID, result.Scope, result.CapacityPerHour)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleListUnit GET /api/v1/saturday/units?unitId=
func (h *Handler) HandleListUnit(w http.ResponseWriter, r *http.Request) {
	unitID, err := handlers.QueryID(r, "unitId")
	if err != nil {
		h.logger.Warn("GET /saturday/units - Invalid unitId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListSaturdayUnit(r.Context(), unitID)
	if err != nil {
		h.respondError(w, "GET /saturday/units", err)
		return
	}

	h.logger.Info("GET /saturday/units - Found %d configs", len(result.Configs))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, domain.ErrNotFound):
		h.logger.Warn("%s - Not found: %v", route, err)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, domain.ErrValidation):
		h.logger.Warn("%s - Invalid data: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidConfig)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
