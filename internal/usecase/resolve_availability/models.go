package resolve_availability

import (
	"time"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
)

// Request модель запроса окна доступности
type Request struct {
	ProfessionalID int64
	UnitID         int64
	Date           time.Time
}

// Response окно доступности специалиста в юните на дату
type Response struct {
	ProfessionalID int64
	UnitID         int64
	Date           time.Time
	Window         domain.Window
}
