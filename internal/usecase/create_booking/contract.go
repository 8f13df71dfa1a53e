package create_booking

import (
	"context"
	"time"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/infra/lock"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/scheduling"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	LockKey(ctx context.Context, key string) error
}

// DayLoader источник снимка дня для движка расписания
type DayLoader interface {
	LoadDay(ctx context.Context, professionalID, unitID int64, date time.Time) (*scheduling.DayInputs, error)
}

// Locker распределенная блокировка ключа дня между репликами
type Locker interface {
	Acquire(ctx context.Context, key string) (lock.Unlock, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики созданных бронирований и отклоненных черновиков
type Metrics interface {
	IncBookingCreated(status string)
	IncConflict(kind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
