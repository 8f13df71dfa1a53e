package schedule_exceptions

import (
	"errors"
	"net/http"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/api/middleware"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/service/schedules/models"
)

const (
	msgInvalidProfessionalID = "некорректный ID специалиста"
	msgInvalidExceptionID    = "некорректный ID исключения"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidPeriod         = "некорректный период, ожидаются from и to в формате YYYY-MM-DD"
	msgInvalidDateTime       = "некорректная дата или время"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgForbidden             = "доступно только администратору"
	msgNotFound              = "специалист или исключение не найдено"
	msgInvalidException      = "некорректные данные исключения"
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

// HandleCreate POST /api/v1/professionals/{professionalId}/exceptions
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	professionalID, err := handlers.PathID(r, "professionalId")
	if err != nil {
		h.logger.Warn("POST /professionals/{id}/exceptions - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /professionals/{id}/exceptions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateExceptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /professionals/{id}/exceptions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if !handlers.ValidateRequest(w, &req) {
		h.logger.Warn("POST /professionals/{id}/exceptions - Validation failed: professional_id=%d", professionalID)
		return
	}

	serviceReq, err := req.ToServiceRequest(professionalID, actor)
	if err != nil {
		h.logger.Warn("POST /professionals/{id}/exceptions - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.service.CreateException(r.Context(), serviceReq)
	if err != nil {
		h.respondError(w, "POST /professionals/{id}/exceptions", professionalID, err)
		return
	}

	h.logger.Info("POST /professionals/{id}/exceptions - Exception created: professional_id=%d, exception_id=%d, kind=%s", professionalID, result.ID, result.Kind)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleList GET /api/v1/professionals/{professionalId}/exceptions?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	professionalID, err := handlers.PathID(r, "professionalId")
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/exceptions - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	query := r.URL.Query()
	from, err := handlers.ParseDate(query.Get("from"))
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/exceptions - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}
	to, err := handlers.ParseDate(query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/exceptions - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.service.ListExceptions(r.Context(), &models.ListExceptionsRequest{
		ProfessionalID: professionalID,
		From:           from,
		To:             to,
	})
	if err != nil {
		h.respondError(w, "GET /professionals/{id}/exceptions", professionalID, err)
		return
	}

	h.logger.Info("GET /professionals/{id}/exceptions - Found %d exceptions: professional_id=%d", len(result.Exceptions), professionalID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/professionals/{professionalId}/exceptions/{exceptionId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	professionalID, err := handlers.PathID(r, "professionalId")
	if err != nil {
		h.logger.Warn("DELETE /professionals/{id}/exceptions/{exceptionId} - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	exceptionID, err := handlers.PathID(r, "exceptionId")
	if err != nil {
		h.logger.Warn("DELETE /professionals/{id}/exceptions/{exceptionId} - Invalid exception ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExceptionID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /professionals/{id}/exceptions/{exceptionId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.DeleteException(r.Context(), actor, professionalID, exceptionID); err != nil {
		h.respondError(w, "DELETE /professionals/{id}/exceptions/{exceptionId}", professionalID, err)
		return
	}

	h.logger.Info("DELETE /professionals/{id}/exceptions/{exceptionId} - Exception deleted: professional_id=%d, exception_id=%d", professionalID, exceptionID)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, professionalID int64, err error) {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		h.logger.Warn("%s - Access denied: professional_id=%d", route, professionalID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, domain.ErrNotFound):
		h.logger.Warn("%s - Not found: professional_id=%d, error=%v", route, professionalID, err)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, domain.ErrValidation):
		h.logger.Warn("%s - Invalid data: professional_id=%d, error=%v", route, professionalID, err)
		handlers.RespondBadRequest(w, msgInvalidException)

	default:
		h.logger.Error("%s - Failed: professional_id=%d, error=%v", route, professionalID, err)
		handlers.RespondInternalError(w)
	}
}
