package schedules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	directoryRepo "github.com/BongoShiny/agenda-pro-new-sub001/internal/infra/storage/directory"
	exceptionRepo "github.com/BongoShiny/agenda-pro-new-sub001/internal/infra/storage/exception"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/scheduling"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/service/schedules/models"
)

// Service сервис графиков: снимок дня для движка расписания и администрирование исключений и суббот
type Service struct {
	directoryRepo DirectoryRepository
	exceptionRepo ExceptionRepository
	saturdayRepo  SaturdayRepository
	bookingRepo   BookingRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса графиков
func NewService(
	directoryRepo DirectoryRepository,
	exceptionRepo ExceptionRepository,
	saturdayRepo SaturdayRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *Service {
	return &Service{
		directoryRepo: directoryRepo,
		exceptionRepo: exceptionRepo,
		saturdayRepo:  saturdayRepo,
		bookingRepo:   bookingRepo,
		logger:        logger,
	}
}

// LoadDay собирает снимок дня (специалист, юнит, дата) для движка расписания
// Внутри транзакции бронирования юнита читаются FOR UPDATE
// Субботние настройки читаются только для суббот
func (s *Service) LoadDay(ctx context.Context, professionalID, unitID int64, date time.Time) (*scheduling.DayInputs, error) {
	// 1. Специалист
	professional, err := s.directoryRepo.GetProfessional(ctx, professionalID)
	if err != nil {
		if errors.Is(err, directoryRepo.ErrProfessionalNotFound) {
			s.logger.Warn("LoadDay: professional id=%d not found", professionalID)
			return nil, ErrProfessionalNotFound
		}
		s.logger.Error("LoadDay: failed to get professional id=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: LoadDay - get professional: %v", ErrInternal, err)
	}

	// 2. Юнит и привязка специалиста к нему
	if _, err := s.directoryRepo.GetUnit(ctx, unitID); err != nil {
		if errors.Is(err, directoryRepo.ErrUnitNotFound) {
			s.logger.Warn("LoadDay: unit id=%d not found", unitID)
			return nil, ErrUnitNotFound
		}
		s.logger.Error("LoadDay: failed to get unit id=%d: %v", unitID, err)
		return nil, fmt.Errorf("%w: LoadDay - get unit: %v", ErrInternal, err)
	}

	assigned, err := s.directoryRepo.IsAssigned(ctx, professionalID, unitID)
	if err != nil {
		s.logger.Error("LoadDay: failed to check assignment: %v", err)
		return nil, fmt.Errorf("%w: LoadDay - check assignment: %v", ErrInternal, err)
	}
	if !assigned {
		s.logger.Warn("LoadDay: professional id=%d is not assigned to unit id=%d", professionalID, unitID)
		return nil, fmt.Errorf("%w: professional %d, unit %d", ErrNotAssigned, professionalID, unitID)
	}

	inputs := &scheduling.DayInputs{
		Date:         date,
		Professional: *professional,
		UnitID:       unitID,
	}

	// 3. Исключения графика на дату
	inputs.Exceptions, err = s.exceptionRepo.ListForDate(ctx, professionalID, date)
	if err != nil {
		s.logger.Error("LoadDay: failed to list exceptions: %v", err)
		return nil, fmt.Errorf("%w: LoadDay - list exceptions: %v", ErrInternal, err)
	}

	// 4. Субботние настройки
	if scheduling.IsSaturday(date) {
		inputs.SaturdayProfessional, err = s.saturdayRepo.ListProfessionalForDate(ctx, professionalID, unitID, date)
		if err != nil {
			s.logger.Error("LoadDay: failed to list saturday professional configs: %v", err)
			return nil, fmt.Errorf("%w: LoadDay - list saturday professional configs: %v", ErrInternal, err)
		}

		inputs.SaturdayUnit, err = s.saturdayRepo.ListUnitForDate(ctx, unitID, date)
		if err != nil {
			s.logger.Error("LoadDay: failed to list saturday unit configs: %v", err)
			return nil, fmt.Errorf("%w: LoadDay - list saturday unit configs: %v", ErrInternal, err)
		}
	}

	// 5. Бронирования юнита на дату (все специалисты, включая отмененные)
	inputs.Bookings, err = s.bookingRepo.ListUnitDay(ctx, unitID, date)
	if err != nil {
		s.logger.Error("LoadDay: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: LoadDay - list bookings: %v", ErrInternal, err)
	}

	return inputs, nil
}

// CreateException создает исключение графика специалиста
// Доступно только администраторам
func (s *Service) CreateException(ctx context.Context, req *models.CreateExceptionRequest) (*models.ExceptionResponse, error) {
	s.logger.Info("CreateException: creating %s exception for professional=%d on %s by user=%d",
		req.Kind, req.ProfessionalID, req.Date.Format(domain.DateFormat), req.Actor.UserID)

	// 1. Проверяем права доступа
	if !req.Actor.IsAdmin() {
		s.logger.Warn("CreateException: user=%d is not an admin", req.Actor.UserID)
		return nil, ErrAccessDenied
	}

	// 2. Валидируем входные данные
	if err := validateException(req); err != nil {
		s.logger.Warn("CreateException: validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем существование специалиста
	if err := s.ensureProfessional(ctx, "CreateException", req.ProfessionalID); err != nil {
		return nil, err
	}

	// 4. Создаем исключение
	created, err := s.exceptionRepo.Create(ctx, req.ToDomainException())
	if err != nil {
		s.logger.Error("CreateException: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateException: successfully created exception id=%d", created.ID)
	return models.FromDomainException(created), nil
}

// ListExceptions получает исключения специалиста за период
// Публичный метод - доступен всем
func (s *Service) ListExceptions(ctx context.Context, req *models.ListExceptionsRequest) (*models.ExceptionListResponse, error) {
	if req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: period end is before period start", ErrInvalidInput)
	}

	if err := s.ensureProfessional(ctx, "ListExceptions", req.ProfessionalID); err != nil {
		return nil, err
	}

	exceptions, err := s.exceptionRepo.ListByProfessional(ctx, req.ProfessionalID, req.From, req.To)
	if err != nil {
		s.logger.Error("ListExceptions: repository error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: ListExceptions - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainExceptionList(exceptions), nil
}

// DeleteException удаляет исключение графика
// Доступно только администраторам
func (s *Service) DeleteException(ctx context.Context, actor domain.Actor, professionalID, exceptionID int64) error {
	s.logger.Info("DeleteException: deleting exception id=%d of professional=%d by user=%d",
		exceptionID, professionalID, actor.UserID)

	if !actor.IsAdmin() {
		s.logger.Warn("DeleteException: user=%d is not an admin", actor.UserID)
		return ErrAccessDenied
	}

	if err := s.exceptionRepo.Delete(ctx, professionalID, exceptionID); err != nil {
		if errors.Is(err, exceptionRepo.ErrExceptionNotFound) {
			s.logger.Warn("DeleteException: exception id=%d not found", exceptionID)
			return ErrExceptionNotFound
		}
		s.logger.Error("DeleteException: repository error: %v", err)
		return fmt.Errorf("%w: DeleteException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteException: successfully deleted exception id=%d", exceptionID)
	return nil
}

// UpsertSaturdayProfessional создает или обновляет субботние часы специалиста в юните
// Доступно только администраторам
func (s *Service) UpsertSaturdayProfessional(ctx context.Context, req *models.UpsertSaturdayProfessionalRequest) (*models.SaturdayProfessionalResponse, error) {
	cfg := req.ToDomainConfig()
	s.logger.Info("UpsertSaturdayProfessional: professional=%d, unit=%d, scope=%s by user=%d",
		req.ProfessionalID, req.UnitID, cfg.Scope, req.Actor.UserID)

	// 1. Проверяем права доступа
	if !req.Actor.IsAdmin() {
		s.logger.Warn("UpsertSaturdayProfessional: user=%d is not an admin", req.Actor.UserID)
		return nil, ErrAccessDenied
	}

	// 2. Валидируем входные данные
	if err := validateSaturdayDate(req.Date); err != nil {
		return nil, err
	}
	if !(domain.Interval{Start: req.Start, End: req.End}).IsValid() {
		s.logger.Warn("UpsertSaturdayProfessional: invalid interval %s-%s", req.Start, req.End)
		return nil, fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}

	// 3. Проверяем специалиста и юнит
	if err := s.ensureProfessional(ctx, "UpsertSaturdayProfessional", req.ProfessionalID); err != nil {
		return nil, err
	}
	if err := s.ensureUnit(ctx, "UpsertSaturdayProfessional", req.UnitID); err != nil {
		return nil, err
	}

	// 4. Сохраняем
	saved, err := s.saturdayRepo.UpsertProfessional(ctx, cfg)
	if err != nil {
		s.logger.Error("UpsertSaturdayProfessional: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpsertSaturdayProfessional - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertSaturdayProfessional: successfully saved config id=%d", saved.ID)
	return models.FromDomainSaturdayProfessional(saved), nil
}

// ListSaturdayProfessional получает субботние часы с опциональной фильтрацией
func (s *Service) ListSaturdayProfessional(ctx context.Context, professionalID, unitID *int64) (*models.SaturdayProfessionalListResponse, error) {
	configs, err := s.saturdayRepo.ListProfessional(ctx, professionalID, unitID)
	if err != nil {
		s.logger.Error("ListSaturdayProfessional: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSaturdayProfessional - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSaturdayProfessionalList(configs), nil
}

// UpsertSaturdayUnit создает или обновляет субботнюю вместимость юнита
// Доступно только администраторам
func (s *Service) UpsertSaturdayUnit(ctx context.Context, req *models.UpsertSaturdayUnitRequest) (*models.SaturdayUnitResponse, error) {
	cfg := req.ToDomainConfig()
	s.logger.Info("UpsertSaturdayUnit: unit=%d, scope=%s, capacity=%d by user=%d",
		req.UnitID, cfg.Scope, req.CapacityPerHour, req.Actor.UserID)

	if !req.Actor.IsAdmin() {
		s.logger.Warn("UpsertSaturdayUnit: user=%d is not an admin", req.Actor.UserID)
		return nil, ErrAccessDenied
	}

	if err := validateSaturdayDate(req.Date); err != nil {
		return nil, err
	}
	if req.CapacityPerHour < domain.MinCapacityPerHour || req.CapacityPerHour > domain.MaxCapacityPerHour {
		s.logger.Warn("UpsertSaturdayUnit: invalid capacity %d", req.CapacityPerHour)
		return nil, fmt.Errorf("%w: capacity per hour must be between %d and %d",
			ErrInvalidInput, domain.MinCapacityPerHour, domain.MaxCapacityPerHour)
	}

	if err := s.ensureUnit(ctx, "UpsertSaturdayUnit", req.UnitID); err != nil {
		return nil, err
	}

	saved, err := s.saturdayRepo.UpsertUnit(ctx, cfg)
	if err != nil {
		s.logger.Error("UpsertSaturdayUnit: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpsertSaturdayUnit - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertSaturdayUnit: successfully saved config id=%d", saved.ID)
	return models.FromDomainSaturdayUnit(saved), nil
}

// ListSaturdayUnit получает субботние настройки юнитов
func (s *Service) ListSaturdayUnit(ctx context.Context, unitID *int64) (*models.SaturdayUnitListResponse, error) {
	configs, err := s.saturdayRepo.ListUnit(ctx, unitID)
	if err != nil {
		s.logger.Error("ListSaturdayUnit: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSaturdayUnit - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSaturdayUnitList(configs), nil
}

// Вспомогательные методы

func (s *Service) ensureProfessional(ctx context.Context, op string, professionalID int64) error {
	if _, err := s.directoryRepo.GetProfessional(ctx, professionalID); err != nil {
		if errors.Is(err, directoryRepo.ErrProfessionalNotFound) {
			s.logger.Warn("%s: professional id=%d not found", op, professionalID)
			return ErrProfessionalNotFound
		}
		s.logger.Error("%s: failed to get professional id=%d: %v", op, professionalID, err)
		return fmt.Errorf("%w: %s - get professional: %v", ErrInternal, op, err)
	}
	return nil
}

func (s *Service) ensureUnit(ctx context.Context, op string, unitID int64) error {
	if _, err := s.directoryRepo.GetUnit(ctx, unitID); err != nil {
		if errors.Is(err, directoryRepo.ErrUnitNotFound) {
			s.logger.Warn("%s: unit id=%d not found", op, unitID)
			return ErrUnitNotFound
		}
		s.logger.Error("%s: failed to get unit id=%d: %v", op, unitID, err)
		return fmt.Errorf("%w: %s - get unit: %v", ErrInternal, op, err)
	}
	return nil
}

// validateException проверяет интервал исключения
// leave без интервала, lunch и custom с интервалом start < end
func validateException(req *models.CreateExceptionRequest) error {
	if !req.Kind.IsValid() {
		return fmt.Errorf("%w: unknown exception kind %q", ErrInvalidInput, req.Kind)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason is longer than %d", ErrInvalidInput, domain.MaxReasonLength)
	}
	if req.Kind == domain.ExceptionLeave {
		return nil
	}
	if !(domain.Interval{Start: req.Start, End: req.End}).IsValid() {
		return fmt.Errorf("%w: %s exception requires start before end", ErrInvalidInput, req.Kind)
	}
	return nil
}

func validateSaturdayDate(date *time.Time) error {
	if date != nil && !scheduling.IsSaturday(*date) {
		return fmt.Errorf("%w: %s is not a saturday", ErrInvalidInput, date.Format(domain.DateFormat))
	}
	return nil
}
