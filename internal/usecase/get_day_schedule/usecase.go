package get_day_schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/scheduling"
)

// UseCase use case для получения сетки дня
type UseCase struct {
	dayLoader          DayLoader
	defaultSlotMinutes int
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
// defaultSlotMinutes <= 0 заменяется на domain.DefaultSlotMinutes
func NewUseCase(dayLoader DayLoader, defaultSlotMinutes int, logger Logger) *UseCase {
	if defaultSlotMinutes <= 0 {
		defaultSlotMinutes = domain.DefaultSlotMinutes
	}
	return &UseCase{
		dayLoader:          dayLoader,
		defaultSlotMinutes: defaultSlotMinutes,
		logger:             logger,
	}
}

// Execute выполняет use case получения сетки дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySchedule: professional=%d, unit=%d, date=%s, slotMinutes=%d",
		req.ProfessionalID, req.UnitID, req.Date.Format(domain.DateFormat), req.SlotMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDaySchedule: validation failed: %v", err)
		return nil, err
	}

	slotMinutes := req.SlotMinutes
	if slotMinutes == 0 {
		slotMinutes = uc.defaultSlotMinutes
	}

	// 2. Снимок дня
	inputs, err := uc.dayLoader.LoadDay(ctx, req.ProfessionalID, req.UnitID, req.Date)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
			uc.logger.Warn("GetDaySchedule: day snapshot rejected: %v", err)
			return nil, err
		}
		uc.logger.Error("GetDaySchedule: failed to load day: %v", err)
		return nil, fmt.Errorf("%w: failed to load day: %v", ErrInternal, err)
	}

	// 3. Сетка с метками тем же детектором, что и при записи
	slots, window, err := scheduling.BuildDaySchedule(*inputs, slotMinutes)
	if err != nil {
		uc.logger.Warn("GetDaySchedule: failed to build schedule: %v", err)
		return nil, err
	}

	resp := &Response{
		ProfessionalID: req.ProfessionalID,
		UnitID:         req.UnitID,
		Date:           req.Date,
		SlotMinutes:    slotMinutes,
		Window:         window,
		Slots:          slots,
	}

	uc.logger.Info("GetDaySchedule: generated %d slots (%d free) for professional=%d, unit=%d, date=%s",
		len(slots), resp.FreeCount(), req.ProfessionalID, req.UnitID, req.Date.Format(domain.DateFormat))

	return resp, nil
}
