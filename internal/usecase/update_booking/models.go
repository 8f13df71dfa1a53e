package update_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/types"
)

// Request модель запроса на редактирование бронирования
// Поля расписания и оплаты заменяются целиком, статус и конверсия не меняются
type Request struct {
	Actor     domain.Actor
	BookingID int64
	Version   int // 0 - не сверять версию

	ProfessionalID int64
	UnitID         int64
	ClientID       *int64
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	Type           domain.BookingType
	Notes          *string

	OutstandingBalance decimal.Decimal
	PaymentMethod      *string
	Installments       *int
}

// Draft черновик для проверки конфликтов, текущее бронирование исключается из проверки
func (r *Request) Draft(current *domain.Booking) domain.Draft {
	kind := domain.DraftAppointment
	if current.IsBlock() {
		kind = domain.DraftBlock
	}
	selfID := current.ID
	return domain.Draft{
		ProfessionalID: r.ProfessionalID,
		UnitID:         r.UnitID,
		Date:           r.Date,
		Start:          r.StartTime,
		End:            r.EndTime,
		SelfID:         &selfID,
		Kind:           kind,
	}
}

// Apply возвращает копию бронирования с полями из запроса
func (r *Request) Apply(current domain.Booking) domain.Booking {
	current.ProfessionalID = r.ProfessionalID
	current.UnitID = r.UnitID
	current.BookingDate = r.Date
	current.StartTime = r.StartTime
	current.EndTime = r.EndTime
	current.Notes = r.Notes
	current.PaymentMethod = r.PaymentMethod
	current.Installments = r.Installments

	if !current.IsBlock() {
		current.ClientID = r.ClientID
		current.Type = r.Type
		current.OutstandingBalance = r.OutstandingBalance
	}

	return current
}
