package schedules

import (
	"context"
	"time"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
)

// DirectoryRepository справочник специалистов и юнитов
type DirectoryRepository interface {
	GetProfessional(ctx context.Context, id int64) (*domain.Professional, error)
	GetUnit(ctx context.Context, id int64) (*domain.Unit, error)
	IsAssigned(ctx context.Context, professionalID, unitID int64) (bool, error)
}

// ExceptionRepository интерфейс репозитория исключений графика
type ExceptionRepository interface {
	Create(ctx context.Context, exception *domain.ScheduleException) (*domain.ScheduleException, error)
	ListByProfessional(ctx context.Context, professionalID int64, from, to time.Time) ([]domain.ScheduleException, error)
	ListForDate(ctx context.Context, professionalID int64, date time.Time) ([]domain.ScheduleException, error)
	Delete(ctx context.Context, professionalID, id int64) error
}

// SaturdayRepository интерфейс репозитория субботних настроек
type SaturdayRepository interface {
	UpsertProfessional(ctx context.Context, cfg *domain.SaturdayProfessionalConfig) (*domain.SaturdayProfessionalConfig, error)
	UpsertUnit(ctx context.Context, cfg *domain.SaturdayUnitConfig) (*domain.SaturdayUnitConfig, error)
	ListProfessionalForDate(ctx context.Context, professionalID, unitID int64, date time.Time) ([]domain.SaturdayProfessionalConfig, error)
	ListProfessional(ctx context.Context, professionalID, unitID *int64) ([]domain.SaturdayProfessionalConfig, error)
	ListUnitForDate(ctx context.Context, unitID int64, date time.Time) ([]domain.SaturdayUnitConfig, error)
	ListUnit(ctx context.Context, unitID *int64) ([]domain.SaturdayUnitConfig, error)
}

// BookingRepository интерфейс чтения снимка дня
type BookingRepository interface {
	ListUnitDay(ctx context.Context, unitID int64, date time.Time) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
