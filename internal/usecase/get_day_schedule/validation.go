package get_day_schedule

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

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.SlotMinutes != 0 && (req.SlotMinutes < domain.MinSlotMinutes || req.SlotMinutes > domain.MaxSlotMinutes) {
		return fmt.Errorf("%w: slotMinutes must be in [%d, %d]", ErrInvalidInput, domain.MinSlotMinutes, domain.MaxSlotMinutes)
	}

	return nil
}
