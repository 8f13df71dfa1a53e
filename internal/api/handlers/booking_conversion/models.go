package booking_conversion

import (
	"github.com/shopspring/decimal"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/service/conversions/models"
)

// RecordConversionRequest HTTP request model
// Денежные поля принимаются строкой или числом
type RecordConversionRequest struct {
	Version int    `json:"version" validate:"gte=0"`
	Outcome string `json:"outcome" validate:"required,oneof=unset converted not_converted"`

	OriginalPrice   decimal.Decimal `json:"originalPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	DownPayment     decimal.Decimal `json:"downPayment"`
	SecondPayment   decimal.Decimal `json:"secondPayment"`
	ClosedByStaffID *int64          `json:"closedByStaffId,omitempty" validate:"omitempty,gt=0"`
	ProfessionalID  *int64          `json:"professionalId,omitempty" validate:"omitempty,gt=0"`
	ClosingReasons  []string        `json:"closingReasons,omitempty" validate:"omitempty,dive,max=200"`

	AmountPaid       decimal.Decimal `json:"amountPaid"`
	NonClosingReason *string         `json:"nonClosingReason,omitempty" validate:"omitempty,max=500"`
	PaymentMethod    *string         `json:"paymentMethod,omitempty" validate:"omitempty,max=50"`
	Installments     *int            `json:"installments,omitempty" validate:"omitempty,gte=1,lte=48"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RecordConversionRequest) ToServiceRequest(actor domain.Actor) *models.RecordConversionRequest {
	return &models.RecordConversionRequest{
		Actor:            actor,
		Version:          r.Version,
		Outcome:          domain.ConversionOutcome(r.Outcome),
		OriginalPrice:    r.OriginalPrice,
		DiscountPercent:  r.DiscountPercent,
		DownPayment:      r.DownPayment,
		SecondPayment:    r.SecondPayment,
		ClosedByStaffID:  r.ClosedByStaffID,
		ProfessionalID:   r.ProfessionalID,
		ClosingReasons:   r.ClosingReasons,
		AmountPaid:       r.AmountPaid,
		NonClosingReason: r.NonClosingReason,
		PaymentMethod:    r.PaymentMethod,
		Installments:     r.Installments,
	}
}
