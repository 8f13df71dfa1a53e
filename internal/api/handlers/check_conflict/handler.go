package check_conflict

import (
	"errors"
	"net/http"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgNotFound           = "специалист или юнит не найден"
	msgInvalidData        = "некорректный интервал"
)

type Handler struct {
	useCase CheckConflictUseCase
	logger  Logger
}

func NewHandler(useCase CheckConflictUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/conflicts/check
// Отклоненный черновик возвращается с 200 и accepted=false: это ответ на вопрос, а не ошибка записи
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckConflictRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /conflicts/check - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if !handlers.ValidateRequest(w, &req) {
		h.logger.Warn("POST /conflicts/check - Validation failed")
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /conflicts/check - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("POST /conflicts/check - Not found: professional_id=%d, unit_id=%d", req.ProfessionalID, req.UnitID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /conflicts/check - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /conflicts/check - Failed to check draft: professional_id=%d, unit_id=%d, error=%v",
				req.ProfessionalID, req.UnitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /conflicts/check - Draft checked: professional_id=%d, unit_id=%d, accepted=%t, kind=%s",
		req.ProfessionalID, req.UnitID, result.Verdict.Accepted, result.Verdict.Kind)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
