package check_conflict

import (
	"context"
	"errors"
	"fmt"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/scheduling"
)

// UseCase use case для проверки черновика бронирования
// Результат не резервирует слот: запись проверяется повторно в транзакции создания
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

// Execute выполняет use case проверки черновика
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckConflict: professional=%d, unit=%d, date=%s, time=%s-%s, block=%t",
		req.ProfessionalID, req.UnitID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.Block)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckConflict: validation failed: %v", err)
		return nil, err
	}

	// 2. Снимок дня
	inputs, err := uc.dayLoader.LoadDay(ctx, req.ProfessionalID, req.UnitID, req.Date)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
			uc.logger.Warn("CheckConflict: day snapshot rejected: %v", err)
			return nil, err
		}
		uc.logger.Error("CheckConflict: failed to load day: %v", err)
		return nil, fmt.Errorf("%w: failed to load day: %v", ErrInternal, err)
	}

	// 3. Детектор конфликтов
	verdict, err := scheduling.DetectConflict(req.Draft(), *inputs)
	if err != nil {
		uc.logger.Warn("CheckConflict: draft rejected as malformed: %v", err)
		return nil, err
	}

	if verdict.Accepted {
		uc.logger.Info("CheckConflict: draft accepted")
	} else {
		uc.logger.Info("CheckConflict: draft rejected with %s", verdict.Kind)
	}

	return &Response{Verdict: verdict}, nil
}
