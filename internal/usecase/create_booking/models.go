package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/types"
)

// Request модель запроса на создание бронирования или блокировки
type Request struct {
	Actor          domain.Actor
	ProfessionalID int64
	UnitID         int64
	ClientID       *int64           // Не задается для блокировки
	Date           time.Time        // Дата бронирования (без времени)
	StartTime      types.TimeString // Начало интервала, например "10:00"
	EndTime        types.TimeString // Конец интервала (не включается)
	Block          bool             // Административная блокировка (bloqueio)
	Type           domain.BookingType
	Notes          *string

	OutstandingBalance decimal.Decimal
	PaymentMethod      *string
	Installments       *int
}

// Draft черновик для проверки конфликтов
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
		Kind:           kind,
	}
}

// ToDomainBooking конвертирует запрос в domain модель
// Новое бронирование получает статус agendado, блокировка - bloqueio
func (r *Request) ToDomainBooking() *domain.Booking {
	status := domain.StatusScheduled
	if r.Block {
		status = domain.StatusBlock
	}

	return &domain.Booking{
		ProfessionalID:     r.ProfessionalID,
		UnitID:             r.UnitID,
		ClientID:           r.ClientID,
		BookingDate:        r.Date,
		StartTime:          r.StartTime,
		EndTime:            r.EndTime,
		Status:             status,
		Type:               r.Type,
		Notes:              r.Notes,
		OutstandingBalance: r.OutstandingBalance,
		PaymentMethod:      r.PaymentMethod,
		Installments:       r.Installments,
		Conversion:         domain.EmptyConversion(),
	}
}
