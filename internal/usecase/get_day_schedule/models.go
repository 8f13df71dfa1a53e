package get_day_schedule

import (
	"time"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
)

// Request модель запроса сетки дня
type Request struct {
	ProfessionalID int64
	UnitID         int64
	Date           time.Time
	SlotMinutes    int // 0 - шаг из конфигурации
}

// Response сетка дня специалиста в юните
type Response struct {
	ProfessionalID int64
	UnitID         int64
	Date           time.Time
	SlotMinutes    int
	Window         domain.Window
	Slots          []domain.DaySlot
}

// FreeCount количество свободных слотов
func (r *Response) FreeCount() int {
	count := 0
	for i := range r.Slots {
		if r.Slots[i].IsBookable() {
			count++
		}
	}
	return count
}
