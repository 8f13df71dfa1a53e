package check_conflict

import (
	"time"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/types"
)

// Request модель запроса проверки черновика бронирования без записи
type Request struct {
	ProfessionalID int64
	UnitID         int64
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	SelfID         *int64 // редактируемое бронирование, исключается из проверки
	Block          bool
}

// Draft черновик для детектора конфликтов
func (r *Request) Draft() domain.Draft {
	kind := domain.DraftAppointment
	if r.Block {
		kind = domain.DraftBlock
	}
	return domain.Draft{
		ProfessionalID: r.ProfessionalID,
		UnitID:         r.UnitID,
		Date:           r.Date,
		Start:          r.StartTime,
		End:            r.EndTime,
		SelfID:         r.SelfID,
		Kind:           kind,
	}
}

// Response результат проверки
type Response struct {
	Verdict domain.Verdict
}
