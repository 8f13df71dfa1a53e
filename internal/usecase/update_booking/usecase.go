package update_booking

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

// UseCase use case для редактирования бронирования
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

// Execute выполняет use case редактирования бронирования
// Новый интервал проверяется на конфликты без учета самого бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("UpdateBooking: booking id=%d by user=%d, professional=%d, unit=%d, date=%s, time=%s-%s",
		req.BookingID, req.Actor.UserID, req.ProfessionalID, req.UnitID,
		req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Блокировка ключей нового дня
	keys := (&domain.Draft{ProfessionalID: req.ProfessionalID, UnitID: req.UnitID, Date: req.Date}).LockKeys()
	release, err := uc.acquire(ctx, keys)
	if err != nil {
		return nil, err
	}
	defer release()

	var result *domain.Booking

	// 3. Чтение, проверка и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		for _, key := range keys {
			if err := uc.bookingRepo.LockKey(txCtx, key); err != nil {
				uc.logger.Error("UpdateBooking: failed to lock %s: %v", key, err)
				return fmt.Errorf("%w: failed to lock day: %v", ErrInternal, err)
			}
		}

		// 3.1. Текущее состояние бронирования (FOR UPDATE)
		current, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if req.Version != 0 && current.Version != req.Version {
			uc.logger.Warn("UpdateBooking: booking id=%d version %d, client has %d",
				req.BookingID, current.Version, req.Version)
			return fmt.Errorf("%w: stale version", ErrConcurrentUpdate)
		}

		if err := validateTarget(req, current); err != nil {
			uc.logger.Warn("UpdateBooking: booking id=%d cannot be edited: %v", req.BookingID, err)
			return err
		}

		// 3.2. Снимок нового дня
		inputs, err := uc.dayLoader.LoadDay(txCtx, req.ProfessionalID, req.UnitID, req.Date)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
				uc.logger.Warn("UpdateBooking: day snapshot rejected: %v", err)
				return err
			}
			uc.logger.Error("UpdateBooking: failed to load day: %v", err)
			return fmt.Errorf("%w: failed to load day: %v", ErrInternal, err)
		}

		// 3.3. Проверка конфликтов с исключением самого бронирования
		verdict, err := scheduling.DetectConflict(req.Draft(current), *inputs)
		if err != nil {
			return err
		}
		if !verdict.Accepted {
			uc.logger.Warn("UpdateBooking: conflict %s for booking id=%d", verdict.Kind, req.BookingID)
			uc.metrics.IncConflict(string(verdict.Kind))
			return verdict.Err()
		}

		// 3.4. Сохраняем
		updated := req.Apply(*current)
		if err := uc.bookingRepo.Update(txCtx, &updated); err != nil {
			if errors.Is(err, bookingRepo.ErrVersionMismatch) || errors.Is(err, bookingRepo.ErrOverlap) {
				uc.logger.Warn("UpdateBooking: concurrent change of booking id=%d: %v", req.BookingID, err)
				return fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
			}
			uc.logger.Error("UpdateBooking: failed to update booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		result = &updated
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("UpdateBooking: serialization failure: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
		}
		if errors.Is(err, txmanager.ErrBeginTx) || errors.Is(err, txmanager.ErrCommit) {
			uc.logger.Error("UpdateBooking: transaction error: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("UpdateBooking: successfully updated booking id=%d, version=%d", result.ID, result.Version)
	return models.FromDomainBooking(result), nil
}

// acquire берет распределенные блокировки и возвращает функцию их освобождения в обратном порядке
func (uc *UseCase) acquire(ctx context.Context, keys []string) (func(), error) {
	unlocks := make([]lock.Unlock, 0, len(keys))

	release := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			if err := unlocks[i](context.Background()); err != nil {
				uc.logger.Warn("UpdateBooking: failed to release lock: %v", err)
			}
		}
	}

	for _, key := range keys {
		unlock, err := uc.locker.Acquire(ctx, key)
		if err != nil {
			release()
			if errors.Is(err, lock.ErrLockNotAcquired) {
				uc.logger.Warn("UpdateBooking: key %s is busy", key)
				return nil, fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
			}
			uc.logger.Error("UpdateBooking: failed to acquire lock %s: %v", key, err)
			return nil, fmt.Errorf("%w: failed to acquire lock: %v", ErrInternal, err)
		}
		unlocks = append(unlocks, unlock)
	}

	return release, nil
}
