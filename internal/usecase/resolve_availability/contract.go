package resolve_availability

import (
	"context"
	"time"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/scheduling"
)

// DayLoader собирает снимок расписания на дату
type DayLoader interface {
	LoadDay(ctx context.Context, professionalID, unitID int64, date time.Time) (*scheduling.DayInputs, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
