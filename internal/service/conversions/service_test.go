package conversions

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	bookingRepo "github.com/BongoShiny/agenda-pro-new-sub001/internal/infra/storage/booking"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/service/conversions/models"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/logger"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/metrics"
)

var (
	recordedAt = time.Date(2025, 3, 5, 18, 30, 0, 0, time.UTC)
	staff      = domain.Actor{UserID: 2, Role: domain.RoleStaff}
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockRepo) UpdateConversion(ctx context.Context, b *domain.Booking) error {
	return m.Called(ctx, b).Error(0)
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{}

func (fixedTime) Now() time.Time {
	return recordedAt
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newService(repo *mockRepo) (*Service, *metrics.Metrics) {
	m := metrics.NewWithRegistry("agenda", prometheus.NewRegistry())
	return NewService(repo, inlineTx{}, m, fixedTime{}, logger.NewNop()), m
}

func booking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:                 1,
		ProfessionalID:     10,
		UnitID:             20,
		BookingDate:        time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		StartTime:          "10:00",
		EndTime:            "11:00",
		Status:             status,
		OutstandingBalance: dec("500"),
		Conversion:         domain.EmptyConversion(),
		Version:            4,
	}
}

func TestService_RecordConverted(t *testing.T) {
	repo := &mockRepo{}
	svc, m := newService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(1)).Return(booking(domain.StatusConfirmed), nil)
	repo.On("UpdateConversion", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Status == domain.StatusCompleted && b.Conversion.FinalPrice.Equal(dec("900")) && b.Version == 4
	})).Return(nil)

	resp, err := svc.Record(ctx, 1, &models.RecordConversionRequest{
		Actor:           staff,
		Version:         4,
		Outcome:         domain.OutcomeConverted,
		OriginalPrice:   dec("1000"),
		DiscountPercent: dec("10"),
		DownPayment:     dec("300"),
		SecondPayment:   dec("200"),
		ClosingReasons:  []string{"preço"},
	})
	require.NoError(t, err)

	assert.Equal(t, "concluido", resp.Status)
	assert.Equal(t, "converted", resp.Conversion.Outcome)
	assert.Equal(t, "900.00", resp.Conversion.FinalPrice)
	assert.Equal(t, "400.00", resp.Conversion.RemainingDue)
	require.NotNil(t, resp.Conversion.RecordedAt)
	assert.Equal(t, recordedAt, *resp.Conversion.RecordedAt)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConversionsRecorded.WithLabelValues("converted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StatusTransitions.WithLabelValues("confirmado", "concluido")))
	repo.AssertExpectations(t)
}

func TestService_RecordNotConverted(t *testing.T) {
	repo := &mockRepo{}
	svc, _ := newService(repo)
	ctx := context.Background()
	reason := "sem orçamento"

	repo.On("GetByID", ctx, int64(1)).Return(booking(domain.StatusScheduled), nil)
	repo.On("UpdateConversion", ctx, mock.Anything).Return(nil)

	resp, err := svc.Record(ctx, 1, &models.RecordConversionRequest{
		Actor:            staff,
		Outcome:          domain.OutcomeNotConverted,
		AmountPaid:       dec("200"),
		NonClosingReason: &reason,
	})
	require.NoError(t, err)
	assert.Equal(t, "300.00", resp.OutstandingBalance)
	assert.Equal(t, "500.00", resp.Conversion.BalanceBefore)
}

func TestService_RecordRejected(t *testing.T) {
	ctx := context.Background()

	t.Run("discount out of range never opens transaction", func(t *testing.T) {
		repo := &mockRepo{}
		svc, _ := newService(repo)

		_, err := svc.Record(ctx, 1, &models.RecordConversionRequest{
			Actor: staff, Outcome: domain.OutcomeConverted, OriginalPrice: dec("100"), DiscountPercent: dec("120"),
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("cancelled booking", func(t *testing.T) {
		repo := &mockRepo{}
		svc, _ := newService(repo)
		repo.On("GetByID", ctx, int64(1)).Return(booking(domain.StatusCancelled), nil)

		_, err := svc.Record(ctx, 1, &models.RecordConversionRequest{Actor: staff, Outcome: domain.OutcomeNotConverted})
		assert.ErrorIs(t, err, domain.ErrValidation)
		repo.AssertNotCalled(t, "UpdateConversion", mock.Anything, mock.Anything)
	})

	t.Run("missing booking", func(t *testing.T) {
		repo := &mockRepo{}
		svc, _ := newService(repo)
		repo.On("GetByID", ctx, int64(1)).Return(nil, bookingRepo.ErrBookingNotFound)

		_, err := svc.Record(ctx, 1, &models.RecordConversionRequest{Actor: staff, Outcome: domain.OutcomeNotConverted})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("stale version", func(t *testing.T) {
		repo := &mockRepo{}
		svc, _ := newService(repo)
		repo.On("GetByID", ctx, int64(1)).Return(booking(domain.StatusScheduled), nil)
		repo.On("UpdateConversion", ctx, mock.Anything).Return(bookingRepo.ErrVersionMismatch)

		_, err := svc.Record(ctx, 1, &models.RecordConversionRequest{Actor: staff, Outcome: domain.OutcomeNotConverted})
		assert.ErrorIs(t, err, domain.ErrConcurrency)
	})
}

func TestService_Clear(t *testing.T) {
	repo := &mockRepo{}
	svc, _ := newService(repo)
	ctx := context.Background()

	recorded := booking(domain.StatusCompleted)
	recorded.OutstandingBalance = dec("300")
	recorded.Conversion = domain.Conversion{
		Outcome:       domain.OutcomeNotConverted,
		AmountPaid:    dec("200"),
		BalanceBefore: dec("500"),
		RecordedAt:    &recordedAt,
	}

	repo.On("GetByID", ctx, int64(1)).Return(recorded, nil)
	repo.On("UpdateConversion", ctx, mock.Anything).Return(nil)

	resp, err := svc.Clear(ctx, 1, &models.ClearConversionRequest{Actor: staff, Version: 4})
	require.NoError(t, err)
	assert.Equal(t, "500.00", resp.OutstandingBalance)
	assert.Equal(t, "unset", resp.Conversion.Outcome)
	assert.Equal(t, "concluido", resp.Status)
	assert.Nil(t, resp.Conversion.RecordedAt)

	_, err = svc.Clear(ctx, 1, &models.ClearConversionRequest{Actor: staff, Version: 3})
	assert.ErrorIs(t, err, ErrStaleVersion)
}
