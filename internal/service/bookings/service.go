package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	bookingRepo "github.com/BongoShiny/agenda-pro-new-sub001/internal/infra/storage/booking"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/scheduling"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/service/bookings/models"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/txmanager"
)

// Service сервис для работы с бронированиями: чтение, переходы статусов и удаление
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования с фильтрацией по специалисту, юниту, периоду и статусу
// Отмененные бронирования исключаются, если не запрошены явно
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := "List: fetching bookings"
	if req.ProfessionalID != nil {
		logMsg += fmt.Sprintf(", professional=%d", *req.ProfessionalID)
	}
	if req.UnitID != nil {
		logMsg += fmt.Sprintf(", unit=%d", *req.UnitID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: period end is before period start", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, ErrInvalidStatus
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Transition переводит бронирование в новый статус
// Бронирование читается FOR UPDATE, версия сверяется с версией клиента (если передана)
func (s *Service) Transition(ctx context.Context, bookingID int64, req *models.TransitionRequest) (*models.BookingResponse, error) {
	s.logger.Info("Transition: booking id=%d to status=%s by user=%d", bookingID, req.Status, req.Actor.UserID)

	to, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("Transition: invalid status=%s", req.Status)
		return nil, ErrInvalidStatus
	}

	var from domain.BookingStatus
	var result *domain.Booking

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.loadForUpdate(txCtx, "Transition", bookingID, req.Version)
		if err != nil {
			return err
		}
		from = current.Status

		next, err := scheduling.Transition(*current, to)
		if err != nil {
			s.logger.Warn("Transition: rejected for booking id=%d: %v", bookingID, err)
			return err
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, &next); err != nil {
			return s.mapWriteError("Transition", bookingID, err)
		}

		result = &next
		return nil
	})
	if err != nil {
		return nil, s.mapTxError("Transition", err)
	}

	s.metrics.IncTransition(string(from), string(result.Status))
	s.logger.Info("Transition: booking id=%d moved %s -> %s", bookingID, from, result.Status)
	return models.FromDomainBooking(result), nil
}

// CompleteFromClinicalNote переводит бронирование в concluido при записи клинической заметки
// Повторный вызов для concluido ничего не меняет
func (s *Service) CompleteFromClinicalNote(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	s.logger.Info("CompleteFromClinicalNote: booking id=%d", bookingID)

	var from domain.BookingStatus
	var result *domain.Booking
	changed := false

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.loadForUpdate(txCtx, "CompleteFromClinicalNote", bookingID, 0)
		if err != nil {
			return err
		}
		from = current.Status

		next, err := scheduling.CompleteFromClinicalNote(*current)
		if err != nil {
			s.logger.Warn("CompleteFromClinicalNote: rejected for booking id=%d: %v", bookingID, err)
			return err
		}

		if next.Status != current.Status {
			if err := s.bookingRepo.UpdateStatus(txCtx, &next); err != nil {
				return s.mapWriteError("CompleteFromClinicalNote", bookingID, err)
			}
			changed = true
		}

		result = &next
		return nil
	})
	if err != nil {
		return nil, s.mapTxError("CompleteFromClinicalNote", err)
	}

	if changed {
		s.metrics.IncTransition(string(from), string(result.Status))
	}
	return models.FromDomainBooking(result), nil
}

// Delete удаляет бронирование
// Блокировки (bloqueio) удаляют только администраторы
func (s *Service) Delete(ctx context.Context, bookingID int64, actor domain.Actor) error {
	s.logger.Info("Delete: deleting booking id=%d by user=%d", bookingID, actor.UserID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Delete: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("Delete: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		if booking.IsBlock() && !actor.IsAdmin() {
			s.logger.Warn("Delete: user=%d is not allowed to delete block id=%d", actor.UserID, bookingID)
			return ErrAccessDenied
		}

		if err := s.bookingRepo.Delete(txCtx, bookingID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Delete: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return s.mapTxError("Delete", err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", bookingID)
	return nil
}

// Вспомогательные методы

// loadForUpdate читает бронирование для изменения статуса
// Отсутствующее бронирование для перехода статуса считается ошибкой валидации
func (s *Service) loadForUpdate(ctx context.Context, op string, bookingID int64, version int) (*domain.Booking, error) {
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
