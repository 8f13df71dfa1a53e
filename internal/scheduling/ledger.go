package scheduling

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
)

// moneyPlaces количество знаков после запятой при хранении сумм
const moneyPlaces = 2

var (
	hundred = decimal.NewFromInt(100)
)

// ConversionInput is the full set of fields of a conversion record.
// Recording replaces the previous record wholesale.
type ConversionInput struct {
	Outcome domain.ConversionOutcome

	OriginalPrice   decimal.Decimal
	DiscountPercent decimal.Decimal
	DownPayment     decimal.Decimal
	SecondPayment   decimal.Decimal
	ClosedByStaffID *int64
	ProfessionalID  *int64
	ClosingReasons  []string

	AmountPaid       decimal.Decimal
	NonClosingReason *string
	PaymentMethod    *string
	Installments     *int
}

// RoundMoney rounds to two places, half away from zero
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}

// ApplyConversion records a conversion outcome on a copy of the booking and forces it to concluido.
//
// Converted:     final = original * (1 - discount/100); remaining = max(0, final - (down + second))
// Not converted: balance = balanceBefore - paid (may go negative)
//
// The balance baseline is the balance before any previous not-converted record, so
// re-applying the same input yields the same booking.
func ApplyConversion(b domain.Booking, in ConversionInput, now time.Time) (domain.Booking, error) {
	if err := checkLedgerTarget(b); err != nil {
		return domain.Booking{}, err
	}
	if err := ValidateConversionInput(in); err != nil {
		return domain.Booking{}, err
	}

	b = undoConversion(b)
	recordedAt := now

	switch in.Outcome {
	case domain.OutcomeConverted:
		original := RoundMoney(in.OriginalPrice)
		final := RoundMoney(original.Mul(decimal.NewFromInt(1).Sub(in.DiscountPercent.Div(hundred))))
		paid := in.DownPayment.Add(in.SecondPayment)
		remaining := RoundMoney(decimal.Max(decimal.Zero, final.Sub(paid)))

		b.Conversion = domain.Conversion{
			Outcome:         domain.OutcomeConverted,
			OriginalPrice:   original,
			DiscountPercent: RoundMoney(in.DiscountPercent),
			FinalPrice:      final,
			DownPayment:     RoundMoney(in.DownPayment),
			SecondPayment:   RoundMoney(in.SecondPayment),
			RemainingDue:    remaining,
			ClosedByStaffID: in.ClosedByStaffID,
			ProfessionalID:  in.ProfessionalID,
			ClosingReasons:  copyReasons(in.ClosingReasons),
			RecordedAt:      &recordedAt,
		}

	case domain.OutcomeNotConverted:
		before := RoundMoney(b.OutstandingBalance)
		paid := RoundMoney(in.AmountPaid)

		b.OutstandingBalance = RoundMoney(before.Sub(paid))
		b.Conversion = domain.Conversion{
			Outcome:          domain.OutcomeNotConverted,
			AmountPaid:       paid,
			NonClosingReason: in.NonClosingReason,
			PaymentMethod:    in.PaymentMethod,
			Installments:     in.Installments,
			BalanceBefore:    before,
			RecordedAt:       &recordedAt,
		}
	}

	b.Status = domain.StatusCompleted
	return b, nil
}

// ClearConversion resets the conversion record on a copy of the booking.
// A cleared not-converted record gives its deduction back to the outstanding balance.
// Status and schedule fields are left untouched.
func ClearConversion(b domain.Booking) (domain.Booking, error) {
	if err := checkLedgerTarget(b); err != nil {
		return domain.Booking{}, err
	}
	return undoConversion(b), nil
}

// ValidateConversionInput checks outcome, discount range and non-negative amounts
func ValidateConversionInput(in ConversionInput) error {
	switch in.Outcome {
	case domain.OutcomeConverted, domain.OutcomeNotConverted:
	default:
		return fmt.Errorf("%w: outcome must be %q or %q", domain.ErrValidation,
			domain.OutcomeConverted, domain.OutcomeNotConverted)
	}

	if in.DiscountPercent.IsNegative() || in.DiscountPercent.GreaterThan(hundred) {
		return fmt.Errorf("%w: discount %s must be in [0, 100]", domain.ErrValidation, in.DiscountPercent)
	}

	amounts := map[string]decimal.Decimal{
		"originalPrice": in.OriginalPrice,
		"downPayment":   in.DownPayment,
		"secondPayment": in.SecondPayment,
		"amountPaid":    in.AmountPaid,
	}
	for name, amount := range amounts {
		if amount.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative", domain.ErrValidation, name)
		}
	}

	if in.Installments != nil && (*in.Installments < 1 || *in.Installments > domain.MaxInstallments) {
		return fmt.Errorf("%w: installments must be in [1, %d]", domain.ErrValidation, domain.MaxInstallments)
	}
	if len(in.ClosingReasons) > domain.MaxClosingReasons {
		return fmt.Errorf("%w: at most %d closing reasons", domain.ErrValidation, domain.MaxClosingReasons)
	}
	if in.NonClosingReason != nil && len(*in.NonClosingReason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: nonClosingReason is too long", domain.ErrValidation)
	}

	return nil
}

func checkLedgerTarget(b domain.Booking) error {
	if b.IsBlock() {
		return fmt.Errorf("%w: block id=%d has no conversion record", domain.ErrValidation, b.ID)
	}
	if b.IsCancelled() {
		return fmt.Errorf("%w: booking id=%d is cancelled", domain.ErrValidation, b.ID)
	}
	return nil
}

func undoConversion(b domain.Booking) domain.Booking {
	if b.Conversion.Outcome == domain.OutcomeNotConverted {
		b.OutstandingBalance = b.Conversion.BalanceBefore
	}
	b.Conversion = domain.EmptyConversion()
	return b
}

func copyReasons(reasons []string) []string {
	if len(reasons) == 0 {
		return []string{}
	}
	out := make([]string, len(reasons))
	copy(out, reasons)
	return out
}
