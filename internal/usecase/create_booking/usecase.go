package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/infra/lock"
	bookingRepo "github.com/BongoShiny/agenda-pro-new-sub001/internal/infra/storage/booking"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/scheduling"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/service/bookings/models"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo BookingRepository
	dayLoader   DayLoader
	locker      Locker
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	dayLoader DayLoader,
	locker Locker,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		dayLoader:   dayLoader,
		locker:      locker,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка конфликтов и запись выполняются в одной сериализуемой транзакции
// под блокировкой ключа (специалист, юнит, дата)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("CreateBooking: user=%d, professional=%d, unit=%d, date=%s, time=%s-%s, block=%t",
		req.Actor.UserID, req.ProfessionalID, req.UnitID, req.Date.Format(domain.DateFormat),
		req.StartTime, req.EndTime, req.Block)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Блокировки создают только администраторы
	if req.Block && !req.Actor.IsAdmin() {
		uc.logger.Warn("CreateBooking: user=%d is not allowed to create blocks", req.Actor.UserID)
		return nil, ErrAccessDenied
	}

	draft := req.Draft()
	keys := draft.LockKeys()

	// 3. Распределенная блокировка ключей в фиксированном порядке
	release, err := uc.acquire(ctx, keys)
	if err != nil {
		return nil, err
	}
	defer release()

	var result *domain.Booking

	// 4. Проверка и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Advisory lock на те же ключи
		for _, key := range keys {
			if err := uc.bookingRepo.LockKey(txCtx, key); err != nil {
				uc.logger.Error("CreateBooking: failed to lock %s: %v", key, err)
				return fmt.Errorf("%w: failed to lock day: %v", ErrInternal, err)
			}
		}

		// 4.2. Снимок дня (бронирования юнита читаются FOR UPDATE)
		inputs, err := uc.dayLoader.LoadDay(txCtx, req.ProfessionalID, req.UnitID, req.Date)
		if err != nil {
			return uc.loadError(err)
		}

		// 4.3. Проверка конфликтов
		verdict, err := scheduling.DetectConflict(draft, *inputs)
		if err != nil {
			uc.logger.Warn("CreateBooking: draft rejected as invalid: %v", err)
			return err
		}
		if !verdict.Accepted {
			uc.logger.Warn("CreateBooking: conflict %s for professional=%d on %s %s-%s",
				verdict.Kind, req.ProfessionalID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)
			uc.metrics.IncConflict(string(verdict.Kind))
			return verdict.Err()
		}

		// 4.4. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, req.ToDomainBooking())
		if err != nil {
			if errors.Is(err, bookingRepo.ErrOverlap) {
				uc.logger.Warn("CreateBooking: overlap rejected by database: %v", err)
				return fmt.Errorf("%w: %v", ErrConcurrentBooking, err)
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateBooking: serialization failure: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrConcurrentBooking, err)
		}
		if errors.Is(err, txmanager.ErrBeginTx) || errors.Is(err, txmanager.ErrCommit) {
			uc.logger.Error("CreateBooking: transaction error: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.metrics.IncBookingCreated(string(result.Status))
	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return models.FromDomainBooking(result), nil
}

// acquire берет распределенные блокировки и возвращает функцию их освобождения в обратном порядке
func (uc *UseCase) acquire(ctx context.Context, keys []string) (func(), error) {
	unlocks := make([]lock.Unlock, 0, len(keys))

	release := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			if err := unlocks[i](context.Background()); err != nil {
				uc.logger.Warn("CreateBooking: failed to release lock: %v", err)
			}
		}
	}

	for _, key := range keys {
		unlock, err := uc.locker.Acquire(ctx, key)
		if err != nil {
			release()
			if errors.Is(err, lock.ErrLockNotAcquired) {
				uc.logger.Warn("CreateBooking: key %s is busy", key)
				return nil, fmt.Errorf("%w: %v", ErrConcurrentBooking, err)
			}
			uc.logger.Error("CreateBooking: failed to acquire lock %s: %v", key, err)
			return nil, fmt.Errorf("%w: failed to acquire lock: %v", ErrInternal, err)
		}
		unlocks = append(unlocks, unlock)
	}

	return release, nil
}

// loadError пропускает доменные ошибки снимка дня и оборачивает остальные
func (uc *UseCase) loadError(err error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
		uc.logger.Warn("CreateBooking: day snapshot rejected: %v", err)
		return err
	}
	uc.logger.Error("CreateBooking: failed to load day: %v", err)
	return fmt.Errorf("%w: failed to load day: %v", ErrInternal, err)
}
