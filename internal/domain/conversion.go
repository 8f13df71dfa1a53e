package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionOutcome is the recorded sales outcome of a booking
type ConversionOutcome string

const (
	OutcomeUnset        ConversionOutcome = "unset"
	OutcomeConverted    ConversionOutcome = "converted"
	OutcomeNotConverted ConversionOutcome = "not_converted"
)

// IsValid reports whether the outcome is one of the known values
func (o ConversionOutcome) IsValid() bool {
	return o == OutcomeUnset || o == OutcomeConverted || o == OutcomeNotConverted
}

// Conversion is the financial record embedded in a booking.
// Money fields are decimal currency units rounded to two places.
type Conversion struct {
	Outcome ConversionOutcome

	// Converted path
	OriginalPrice   decimal.Decimal // valor_original
	DiscountPercent decimal.Decimal // desconto, in [0, 100]
	FinalPrice      decimal.Decimal // valor_final, computed
	DownPayment     decimal.Decimal // sinal
	SecondPayment   decimal.Decimal // recebimento_2
	RemainingDue    decimal.Decimal // valor_falta_pagar, computed
	ClosedByStaffID *int64
	ProfessionalID  *int64
	ClosingReasons  []string

	// Not converted path
	AmountPaid       decimal.Decimal // valor_pago
	NonClosingReason *string
	PaymentMethod    *string
	Installments     *int
	// BalanceBefore is the outstanding balance before AmountPaid was deducted
	BalanceBefore decimal.Decimal

	RecordedAt *time.Time
}

// IsSet returns true if a conversion outcome has been recorded
func (c *Conversion) IsSet() bool {
	return c.Outcome == OutcomeConverted || c.Outcome == OutcomeNotConverted
}

// EmptyConversion returns a conversion with every field unset
func EmptyConversion() Conversion {
	return Conversion{Outcome: OutcomeUnset}
}
