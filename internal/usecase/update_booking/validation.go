package update_booking

import (
	"fmt"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.ProfessionalID <= 0 || req.UnitID <= 0 {
		return fmt.Errorf("%w: professionalID and unitID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if req.Type != "" && !req.Type.IsValid() {
		return fmt.Errorf("%w: unknown booking type %q", ErrInvalidInput, req.Type)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are longer than %d", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.Installments != nil && (*req.Installments < 1 || *req.Installments > domain.MaxInstallments) {
		return fmt.Errorf("%w: installments must be in [1, %d]", ErrInvalidInput, domain.MaxInstallments)
	}

	return nil
}

// validateTarget проверяет, что бронирование можно редактировать
func validateTarget(req *Request, current *domain.Booking) error {
	if current.IsCancelled() {
		return fmt.Errorf("%w: booking id=%d is cancelled", ErrInvalidInput, current.ID)
	}

	if current.IsBlock() {
		if !req.Actor.IsAdmin() {
			return ErrAccessDenied
		}
		return nil
	}

	if req.ClientID == nil || *req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}

	return nil
}
