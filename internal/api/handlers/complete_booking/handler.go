package complete_booking

import (
	"errors"
	"net/http"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgCannotComplete   = "бронирование нельзя завершить"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/clinical-note-completion
// Вызывается при сохранении клинической заметки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/clinical-note-completion - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.CompleteFromClinicalNote(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConcurrency):
			h.logger.Warn("POST /bookings/{id}/clinical-note-completion - Concurrent update: booking_id=%d", bookingID)
			handlers.RespondConflict(w, err)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /bookings/{id}/clinical-note-completion - Rejected: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgCannotComplete)

		default:
			h.logger.Error("POST /bookings/{id}/clinical-note-completion - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/clinical-note-completion - Booking completed: booking_id=%d, status=%s", bookingID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
