package models

import (
	"github.com/shopspring/decimal"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/scheduling"
)

// RecordConversionRequest запрос на запись результата продажи
// Запись заменяет предыдущую целиком. Version - версия бронирования у клиента (0 - не сверять)
type RecordConversionRequest struct {
	Actor   domain.Actor
	Version int

	Outcome domain.ConversionOutcome

	// Продажа состоялась
	OriginalPrice   decimal.Decimal
	DiscountPercent decimal.Decimal
	DownPayment     decimal.Decimal
	SecondPayment   decimal.Decimal
	ClosedByStaffID *int64
	ProfessionalID  *int64
	ClosingReasons  []string

	// Продажа не состоялась
	AmountPaid       decimal.Decimal
	NonClosingReason *string
	PaymentMethod    *string
	Installments     *int
}

// ClearConversionRequest запрос на сброс записи конверсии
type ClearConversionRequest struct {
	Actor   domain.Actor
	Version int
}

// ToLedgerInput конвертирует запрос во входные данные движка
func (r *RecordConversionRequest) ToLedgerInput() scheduling.ConversionInput {
	return scheduling.ConversionInput{
		Outcome:          r.Outcome,
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
