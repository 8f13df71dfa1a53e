package conversions

import (
	"context"
	"errors"
	"fmt"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	bookingRepo "github.com/BongoShiny/agenda-pro-new-sub001/internal/infra/storage/booking"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/scheduling"
	bookingModels "github.com/BongoShiny/agenda-pro-new-sub001/internal/service/bookings/models"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/service/conversions/models"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/txmanager"
)

// Service сервис финансовых записей бронирований (конверсия продаж)
type Service struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса конверсий
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Record записывает результат продажи и переводит бронирование в concluido
func (s *Service) Record(ctx context.Context, bookingID int64, req *models.RecordConversionRequest) (*bookingModels.BookingResponse, error) {
	s.logger.Info("Record: outcome=%s for booking id=%d by user=%d", req.Outcome, bookingID, req.Actor.UserID)

	// 1. Валидация до открытия транзакции
	input := req.ToLedgerInput()
	if err := scheduling.ValidateConversionInput(input); err != nil {
		s.logger.Warn("Record: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var from domain.BookingStatus
	var result *domain.Booking

	// 2. Читаем, пересчитываем и сохраняем в одной транзакции
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.load(txCtx, "Record", bookingID, req.Version)
		if err != nil {
			return err
		}
		from = current.Status

		next, err := scheduling.ApplyConversion(*current, input, s.timeProvider.Now())
		if err != nil {
			s.logger.Warn("Record: rejected for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if err := s.bookingRepo.UpdateConversion(txCtx, &next); err != nil {
			return s.mapWriteError("Record", bookingID, err)
		}

		result = &next
		return nil
	})
	if err != nil {
		return nil, s.mapTxError("Record", err)
	}

	// 3. Метрики
	s.metrics.IncConversion(string(result.Conversion.Outcome))
	if from != result.Status {
		s.metrics.IncTransition(string(from), string(result.Status))
	}

	s.logger.Info("Record: booking id=%d balance=%s remaining=%s", bookingID,
		result.OutstandingBalance.StringFixed(2), result.Conversion.RemainingDue.StringFixed(2))
	return bookingModels.FromDomainBooking(result), nil
}

// Clear сбрасывает запись конверсии
// Статус и расписание не меняются, вычтенная оплата возвращается в остаток долга
func (s *Service) Clear(ctx context.Context, bookingID int64, req *models.ClearConversionRequest) (*bookingModels.BookingResponse, error) {
	s.logger.Info("Clear: booking id=%d by user=%d", bookingID, req.Actor.UserID)

	var result *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.load(txCtx, "Clear", bookingID, req.Version)
		if err != nil {
			return err
		}

		next, err := scheduling.ClearConversion(*current)
		if err != nil {
			s.logger.Warn("Clear: rejected for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if err := s.bookingRepo.UpdateConversion(txCtx, &next); err != nil {
			return s.mapWriteError("Clear", bookingID, err)
		}

		result = &next
		return nil
	})
	if err != nil {
		return nil, s.mapTxError("Clear", err)
	}

	s.metrics.IncConversion(string(domain.OutcomeUnset))
	s.logger.Info("Clear: conversion of booking id=%d cleared", bookingID)
	return bookingModels.FromDomainBooking(result), nil
}

func (s *Service) load(ctx context.Context, op string, bookingID int64, version int) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d does not exist", op, bookingID)
			return nil, fmt.Errorf("%w: booking id=%d does not exist", ErrInvalidInput, bookingID)
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if version != 0 && booking.Version != version {
		s.logger.Warn("%s: booking id=%d version %d, client has %d", op, bookingID, booking.Version, version)
		return nil, ErrStaleVersion
	}

	return booking, nil
}

func (s *Service) mapWriteError(op string, bookingID int64, err error) error {
	if errors.Is(err, bookingRepo.ErrVersionMismatch) {
		s.logger.Warn("%s: booking id=%d changed concurrently", op, bookingID)
		return fmt.Errorf("%w: %v", ErrStaleVersion, err)
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func (s *Service) mapTxError(op string, err error) error {
	switch {
	case errors.Is(err, txmanager.ErrSerialization):
		s.logger.Warn("%s: serialization failure: %v", op, err)
		return fmt.Errorf("%w: %v", ErrStaleVersion, err)
	case errors.Is(err, txmanager.ErrBeginTx), errors.Is(err, txmanager.ErrCommit):
		s.logger.Error("%s: transaction error: %v", op, err)
		return fmt.Errorf("%w: %s - transaction error: %v", ErrInternal, op, err)
	default:
		return err
	}
}
