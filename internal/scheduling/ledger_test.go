package scheduling

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
)

var recordedAt = time.Date(2025, 3, 5, 15, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestApplyConversion_Converted(t *testing.T) {
	b := *booking(1, wednesday, "10:00", "11:00", domain.StatusConfirmed)
	in := ConversionInput{
		Outcome:         domain.OutcomeConverted,
		OriginalPrice:   dec("1000"),
		DiscountPercent: dec("10"),
		DownPayment:     dec("300"),
		SecondPayment:   dec("200"),
		ClosingReasons:  []string{"price"},
	}

	got, err := ApplyConversion(b, in, recordedAt)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, got.Status)
	assert.Equal(t, domain.OutcomeConverted, got.Conversion.Outcome)
	assert.Equal(t, "900.00", got.Conversion.FinalPrice.StringFixed(2))
	assert.Equal(t, "400.00", got.Conversion.RemainingDue.StringFixed(2))
	assert.Equal(t, []string{"price"}, got.Conversion.ClosingReasons)
	require.NotNil(t, got.Conversion.RecordedAt)
	assert.Equal(t, recordedAt, *got.Conversion.RecordedAt)

	again, err := ApplyConversion(got, in, recordedAt)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestApplyConversion_RemainingNeverNegative(t *testing.T) {
	b := *booking(1, wednesday, "10:00", "11:00", domain.StatusScheduled)
	in := ConversionInput{
		Outcome:       domain.OutcomeConverted,
		OriginalPrice: dec("500"),
		DownPayment:   dec("400"),
		SecondPayment: dec("300"),
	}

	got, err := ApplyConversion(b, in, recordedAt)
	require.NoError(t, err)
	assert.Equal(t, "0.00", got.Conversion.RemainingDue.StringFixed(2))
}

func TestApplyConversion_Rounding(t *testing.T) {
	b := *booking(1, wednesday, "10:00", "11:00", domain.StatusScheduled)
	in := ConversionInput{
		Outcome:         domain.OutcomeConverted,
		OriginalPrice:   dec("99.99"),
		DiscountPercent: dec("15"),
	}

	got, err := ApplyConversion(b, in, recordedAt)
	require.NoError(t, err)
	// 99.99 * 0.85 = 84.9915
	assert.Equal(t, "84.99", got.Conversion.FinalPrice.StringFixed(2))
}

func TestApplyConversion_NotConverted(t *testing.T) {
	b := *booking(1, wednesday, "10:00", "11:00", domain.StatusConfirmed)
	b.OutstandingBalance = dec("500")
	reason := "sem orçamento"
	in := ConversionInput{
		Outcome:          domain.OutcomeNotConverted,
		AmountPaid:       dec("200"),
		NonClosingReason: &reason,
	}

	got, err := ApplyConversion(b, in, recordedAt)
	require.NoError(t, err)
	assert.Equal(t, "300.00", got.OutstandingBalance.StringFixed(2))
	assert.Equal(t, "500.00", got.Conversion.BalanceBefore.StringFixed(2))
	assert.Equal(t, domain.StatusCompleted, got.Status)

	again, err := ApplyConversion(got, in, recordedAt)
	require.NoError(t, err)
	assert.Equal(t, "300.00", again.OutstandingBalance.StringFixed(2), "re-recording does not deduct twice")
}

func TestApplyConversion_NotConvertedMayGoNegative(t *testing.T) {
	b := *booking(1, wednesday, "10:00", "11:00", domain.StatusConfirmed)
	b.OutstandingBalance = dec("100")

	got, err := ApplyConversion(b, ConversionInput{Outcome: domain.OutcomeNotConverted, AmountPaid: dec("150")}, recordedAt)
	require.NoError(t, err)
	assert.Equal(t, "-50.00", got.OutstandingBalance.StringFixed(2))
}

func TestApplyConversion_SwitchOutcome(t *testing.T) {
	b := *booking(1, wednesday, "10:00", "11:00", domain.StatusConfirmed)
	b.OutstandingBalance = dec("500")

	notConverted, err := ApplyConversion(b, ConversionInput{Outcome: domain.OutcomeNotConverted, AmountPaid: dec("200")}, recordedAt)
	require.NoError(t, err)

	converted, err := ApplyConversion(notConverted, ConversionInput{Outcome: domain.OutcomeConverted, OriginalPrice: dec("100")}, recordedAt)
	require.NoError(t, err)
	assert.Equal(t, "500.00", converted.OutstandingBalance.StringFixed(2))
	assert.True(t, converted.Conversion.AmountPaid.IsZero())
}

func TestClearConversion(t *testing.T) {
	b := *booking(1, wednesday, "10:00", "11:00", domain.StatusConfirmed)
	b.OutstandingBalance = dec("500")

	recorded, err := ApplyConversion(b, ConversionInput{Outcome: domain.OutcomeNotConverted, AmountPaid: dec("200")}, recordedAt)
	require.NoError(t, err)

	cleared, err := ClearConversion(recorded)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUnset, cleared.Conversion.Outcome)
	assert.False(t, cleared.Conversion.IsSet())
	assert.Equal(t, "500.00", cleared.OutstandingBalance.StringFixed(2))
	assert.Equal(t, domain.StatusCompleted, cleared.Status, "status is left untouched")
}

func TestApplyConversion_RejectedTargets(t *testing.T) {
	in := ConversionInput{Outcome: domain.OutcomeConverted, OriginalPrice: dec("100")}

	for _, status := range []domain.BookingStatus{domain.StatusBlock, domain.StatusCancelled} {
		b := *booking(1, wednesday, "10:00", "11:00", status)

		_, err := ApplyConversion(b, in, recordedAt)
		assert.ErrorIs(t, err, domain.ErrValidation, status)

		_, err = ClearConversion(b)
		assert.ErrorIs(t, err, domain.ErrValidation, status)
	}
}

func TestValidateConversionInput(t *testing.T) {
	zero := 0
	tests := []struct {
		name string
		in   ConversionInput
	}{
		{name: "unset outcome", in: ConversionInput{Outcome: domain.OutcomeUnset}},
		{name: "discount over 100", in: ConversionInput{Outcome: domain.OutcomeConverted, DiscountPercent: dec("101")}},
		{name: "negative discount", in: ConversionInput{Outcome: domain.OutcomeConverted, DiscountPercent: dec("-1")}},
		{name: "negative price", in: ConversionInput{Outcome: domain.OutcomeConverted, OriginalPrice: dec("-10")}},
		{name: "negative paid", in: ConversionInput{Outcome: domain.OutcomeNotConverted, AmountPaid: dec("-1")}},
		{name: "zero installments", in: ConversionInput{Outcome: domain.OutcomeNotConverted, Installments: &zero}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, ValidateConversionInput(tt.in), domain.ErrValidation)
		})
	}
}
