package booking_conversion

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/api/middleware"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/service/conversions/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidVersion     = "некорректная версия бронирования"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidConversion  = "некорректные данные конверсии"
)

type Handler struct {
	service ConversionService
	logger  Logger
}

func NewHandler(service ConversionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleRecord PUT /api/v1/bookings/{bookingId}/conversion
func (h *Handler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PUT /bookings/{id}/conversion - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /bookings/{id}/conversion - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RecordConversionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id}/conversion - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if !handlers.ValidateRequest(w, &req) {
		h.logger.Warn("PUT /bookings/{id}/conversion - Validation failed: booking_id=%d", bookingID)
		return
	}

	result, err := h.service.Record(r.Context(), bookingID, req.ToServiceRequest(actor))
	if err != nil {
		h.respondError(w, "PUT", bookingID, err)
		return
	}

	h.logger.Info("PUT /bookings/{id}/conversion - Conversion recorded: booking_id=%d, outcome=%s", bookingID, req.Outcome)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleClear DELETE /api/v1/bookings/{bookingId}/conversion?version=N
func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("DELETE /bookings/{id}/conversion - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /bookings/{id}/conversion - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	version := 0
	if raw := r.URL.Query().Get("version"); raw != "" {
		version, err = strconv.Atoi(raw)
		if err != nil || version < 0 {
			h.logger.Warn("DELETE /bookings/{id}/conversion - Invalid version: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidVersion)
			return
		}
	}

	result, err := h.service.Clear(r.Context(), bookingID, &models.ClearConversionRequest{
		Actor:   actor,
		Version: version,
	})
	if err != nil {
		h.respondError(w, "DELETE", bookingID, err)
		return
	}

	h.logger.Info("DELETE /bookings/{id}/conversion - Conversion cleared: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, method string, bookingID int64, err error) {
	switch {
	case errors.Is(err, domain.ErrConcurrency):
		h.logger.Warn("%s /bookings/{id}/conversion - Stale version: booking_id=%d", method, bookingID)
		handlers.RespondConflict(w, err)

	case errors.Is(err, domain.ErrValidation):
		h.logger.Warn("%s /bookings/{id}/conversion - Rejected: booking_id=%d, error=%v", method, bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidConversion)

	default:
		h.logger.Error("%s /bookings/{id}/conversion - Failed: booking_id=%d, error=%v", method, bookingID, err)
		handlers.RespondInternalError(w)
	}
}
