package create_booking

import (
	"errors"
	"net/http"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/api/middleware"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidData        = "некорректные данные бронирования"
	msgNotFound           = "специалист или юнит не найден"
	msgForbidden          = "блокировки может создавать только администратор"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if !handlers.ValidateRequest(w, &req) {
		h.logger.Warn("POST /bookings - Validation failed: user_id=%d", actor.UserID)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrConcurrency):
			h.logger.Warn("POST /bookings - Draft rejected: professional_id=%d, unit_id=%d, error=%v",
				req.ProfessionalID, req.UnitID, err)
			handlers.RespondConflict(w, err)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("POST /bookings - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("POST /bookings - Not found: professional_id=%d, unit_id=%d", req.ProfessionalID, req.UnitID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /bookings - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, status=%s",
		result.ID, actor.UserID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
