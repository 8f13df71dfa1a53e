package resolve_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/scheduling"
)

// UseCase use case для получения окна доступности
type UseCase struct {
	dayLoader DayLoader
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(dayLoader DayLoader, logger Logger) *UseCase {
	return &UseCase{
		dayLoader: dayLoader,
		logger:    logger,
	}
}

// Execute выполняет use case получения окна доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ResolveAvailability: professional=%d, unit=%d, date=%s",
		req.ProfessionalID, req.UnitID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ResolveAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Снимок дня
	inputs, err := uc.dayLoader.LoadDay(ctx, req.ProfessionalID, req.UnitID, req.Date)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
			uc.logger.Warn("ResolveAvailability: day snapshot rejected: %v", err)
			return nil, err
		}
		uc.logger.Error("ResolveAvailability: failed to load day: %v", err)
		return nil, fmt.Errorf("%w: failed to load day: %v", ErrInternal, err)
	}

	// 3. Окно доступности
	window, err := scheduling.ResolveWindow(*inputs)
	if err != nil {
		uc.logger.Warn("ResolveAvailability: malformed schedule data: %v", err)
		return nil, err
	}

	uc.logger.Info("ResolveAvailability: professional=%d, unit=%d, date=%s, source=%s, available=%t",
		req.ProfessionalID, req.UnitID, req.Date.Format(domain.DateFormat), window.Source, window.Available)

	return &Response{
		ProfessionalID: req.ProfessionalID,
		UnitID:         req.UnitID,
		Date:           req.Date,
		Window:         window,
	}, nil
}
