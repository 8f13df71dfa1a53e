package create_booking

import (
	"fmt"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}

	if req.UnitID <= 0 {
		return fmt.Errorf("%w: unitID must be positive", ErrInvalidInput)
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

	if req.Block {
		// Блокировка не привязана к клиенту
		if req.ClientID != nil {
			return fmt.Errorf("%w: block must not have a client", ErrInvalidInput)
		}
	} else if req.ClientID == nil || *req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}

	if req.Type != "" && !req.Type.IsValid() {
		return fmt.Errorf("%w: unknown booking type %q", ErrInvalidInput, req.Type)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are longer than %d", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.OutstandingBalance.IsNegative() {
		return fmt.Errorf("%w: outstandingBalance must not be negative", ErrInvalidInput)
	}

	if req.Installments != nil && (*req.Installments < 1 || *req.Installments > domain.MaxInstallments) {
		return fmt.Errorf("%w: installments must be in [1, %d]", ErrInvalidInput, domain.MaxInstallments)
	}

	return nil
}
