package update_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/infra/lock"
	bookingRepo "github.com/BongoShiny/agenda-pro-new-sub001/internal/infra/storage/booking"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/scheduling"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/logger"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/metrics"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/ptr"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/types"
)

var (
	wednesday = time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	staff     = domain.Actor{UserID: 2, Role: domain.RoleStaff}
	admin     = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, b *domain.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockRepo) LockKey(ctx context.Context, key string) error {
	return nil
}

type stubLoader struct {
	inputs *scheduling.DayInputs
}

func (l *stubLoader) LoadDay(ctx context.Context, professionalID, unitID int64, date time.Time) (*scheduling.DayInputs, error) {
	return l.inputs, nil
}

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func stored(id int64, start, end string, status domain.BookingStatus) *domain.Booking {
	b := &domain.Booking{
		ID: id, ProfessionalID: 10, UnitID: 20, BookingDate: wednesday,
		StartTime: types.TimeString(start), EndTime: types.TimeString(end), Status: status,
		OutstandingBalance: decimal.NewFromInt(150),
		Conversion:         domain.EmptyConversion(),
		Version:            2,
	}
	if status != domain.StatusBlock {
		b.ClientID = ptr.Ptr(int64(77))
	}
	return b
}

func day(bookings ...*domain.Booking) *scheduling.DayInputs {
	return &scheduling.DayInputs{
		Date:         wednesday,
		Professional: domain.Professional{ID: 10, DefaultStart: "08:00", DefaultEnd: "18:00", Active: true},
		UnitID:       20,
		Bookings:     bookings,
	}
}

func request(start, end string) *Request {
	return &Request{
		Actor:              staff,
		BookingID:          1,
		ProfessionalID:     10,
		UnitID:             20,
		ClientID:           ptr.Ptr(int64(77)),
		Date:               wednesday,
		StartTime:          types.TimeString(start),
		EndTime:            types.TimeString(end),
		Type:               domain.TypeReturn,
		OutstandingBalance: decimal.NewFromInt(200),
	}
}

func newUseCase(repo *mockRepo, inputs *scheduling.DayInputs) *UseCase {
	return NewUseCase(repo, &stubLoader{inputs: inputs}, lock.NoopLocker{}, inlineTx{},
		metrics.NewWithRegistry("agenda", prometheus.NewRegistry()), logger.NewNop())
}

func TestExecute_ShiftWithinOwnInterval(t *testing.T) {
	self := stored(1, "10:00", "11:00", domain.StatusConfirmed)
	repo := &mockRepo{}
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(1)).Return(self, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.StartTime == "10:30" && b.EndTime == "11:30" &&
			b.Status == domain.StatusConfirmed && b.Type == domain.TypeReturn &&
			b.OutstandingBalance.Equal(decimal.NewFromInt(200))
	})).Return(nil)

	// Бронирование не конфликтует само с собой
	resp, err := newUseCase(repo, day(self)).Execute(ctx, request("10:30", "11:30"))
	require.NoError(t, err)
	assert.Equal(t, "10:30", resp.StartTime)
	assert.Equal(t, "confirmado", resp.Status)
	repo.AssertExpectations(t)
}

func TestExecute_OverlapWithAnother(t *testing.T) {
	self := stored(1, "10:00", "11:00", domain.StatusScheduled)
	other := stored(2, "11:00", "12:00", domain.StatusScheduled)
	repo := &mockRepo{}
	repo.On("GetByID", mock.Anything, int64(1)).Return(self, nil)

	_, err := newUseCase(repo, day(self, other)).Execute(context.Background(), request("10:30", "11:30"))

	var conflictErr *domain.ConflictError
	require.True(t, errors.As(err, &conflictErr))
	assert.Equal(t, domain.ConflictOccupied, conflictErr.Kind)
	assert.Equal(t, int64(2), conflictErr.Booking.ID)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestExecute_Targets(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("GetByID", ctx, int64(1)).Return(nil, bookingRepo.ErrBookingNotFound)

		_, err := newUseCase(repo, day()).Execute(ctx, request("10:00", "11:00"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("cancelled", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("GetByID", ctx, int64(1)).Return(stored(1, "10:00", "11:00", domain.StatusCancelled), nil)

		_, err := newUseCase(repo, day()).Execute(ctx, request("10:00", "11:00"))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("block by staff", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("GetByID", ctx, int64(1)).Return(stored(1, "10:00", "11:00", domain.StatusBlock), nil)

		_, err := newUseCase(repo, day()).Execute(ctx, request("10:00", "11:00"))
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("block by admin keeps block fields", func(t *testing.T) {
		repo := &mockRepo{}
		block := stored(1, "10:00", "11:00", domain.StatusBlock)
		repo.On("GetByID", ctx, int64(1)).Return(block, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.IsBlock() && b.ClientID == nil && b.StartTime == "18:00"
		})).Return(nil)

		req := request("18:00", "20:00")
		req.Actor = admin
		_, err := newUseCase(repo, day(block)).Execute(ctx, req)
		require.NoError(t, err)
	})

	t.Run("stale version", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("GetByID", ctx, int64(1)).Return(stored(1, "10:00", "11:00", domain.StatusScheduled), nil)

		req := request("10:00", "11:00")
		req.Version = 1
		_, err := newUseCase(repo, day()).Execute(ctx, req)
		assert.ErrorIs(t, err, domain.ErrConcurrency)
	})

	t.Run("version mismatch on write", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("GetByID", ctx, int64(1)).Return(stored(1, "10:00", "11:00", domain.StatusScheduled), nil)
		repo.On("Update", ctx, mock.Anything).Return(bookingRepo.ErrVersionMismatch)

		_, err := newUseCase(repo, day()).Execute(ctx, request("10:00", "11:00"))
		assert.ErrorIs(t, err, ErrConcurrentUpdate)
	})
}

func TestValidateRequest(t *testing.T) {
	req := request("11:00", "10:00")
	assert.ErrorIs(t, validateRequest(req), domain.ErrValidation)

	req = request("10:00", "11:00")
	req.BookingID = 0
	assert.ErrorIs(t, validateRequest(req), domain.ErrValidation)

	assert.NoError(t, validateRequest(request("10:00", "11:00")))
}
