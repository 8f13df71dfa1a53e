package create_booking

import (
	"github.com/shopspring/decimal"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	createBooking "github.com/BongoShiny/agenda-pro-new-sub001/internal/usecase/create_booking"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ProfessionalID     int64            `json:"professionalId" validate:"required,gt=0"`
	UnitID             int64            `json:"unitId" validate:"required,gt=0"`
	ClientID           *int64           `json:"clientId,omitempty" validate:"omitempty,gt=0"`
	BookingDate        string           `json:"bookingDate" validate:"required,isodate"` // "2025-03-05"
	StartTime          string           `json:"startTime" validate:"required,hhmm"`      // "10:00"
	EndTime            string           `json:"endTime" validate:"required,hhmm"`
	Block              bool             `json:"block"`
	Type               string           `json:"type,omitempty" validate:"omitempty,oneof=consulta pacote avulsa retorno avaliacao"`
	Notes              *string          `json:"notes,omitempty" validate:"omitempty,max=1000"`
	OutstandingBalance *decimal.Decimal `json:"outstandingBalance,omitempty"`
	PaymentMethod      *string          `json:"paymentMethod,omitempty" validate:"omitempty,max=50"`
	Installments       *int             `json:"installments,omitempty" validate:"omitempty,gte=1,lte=48"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) (*createBooking.Request, error) {
	bookingDate, err := handlers.ParseDate(r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	balance := decimal.Zero
	if r.OutstandingBalance != nil {
		balance = *r.OutstandingBalance
	}

	return &createBooking.Request{
		Actor:              actor,
		ProfessionalID:     r.ProfessionalID,
		UnitID:             r.UnitID,
		ClientID:           r.ClientID,
		Date:               bookingDate,
		StartTime:          startTime,
		EndTime:            endTime,
		Block:              r.Block,
		Type:               domain.BookingType(r.Type),
		Notes:              r.Notes,
		OutstandingBalance: balance,
		PaymentMethod:      r.PaymentMethod,
		Installments:       r.Installments,
	}, nil
}
