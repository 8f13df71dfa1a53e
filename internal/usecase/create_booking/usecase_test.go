package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
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
	saturday  = time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	staff     = domain.Actor{UserID: 2, Role: domain.RoleStaff}
	admin     = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
)

type mockRepo struct {
	mock.Mock
	locked []string
}

func (m *mockRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockRepo) LockKey(ctx context.Context, key string) error {
	m.locked = append(m.locked, key)
	return nil
}

type stubLoader struct {
	inputs *scheduling.DayInputs
	err    error
}

func (l *stubLoader) LoadDay(ctx context.Context, professionalID, unitID int64, date time.Time) (*scheduling.DayInputs, error) {
	return l.inputs, l.err
}

// recordingLocker запоминает порядок взятия и освобождения ключей
type recordingLocker struct {
	busy     string
	acquired []string
	released []string
}

func (l *recordingLocker) Acquire(ctx context.Context, key string) (lock.Unlock, error) {
	if key == l.busy {
		return nil, lock.ErrLockNotAcquired
	}
	l.acquired = append(l.acquired, key)
	return func(ctx context.Context) error {
		l.released = append(l.released, key)
		return nil
	}, nil
}

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func dayInputs(date time.Time, bookings ...*domain.Booking) *scheduling.DayInputs {
	return &scheduling.DayInputs{
		Date: date,
		Professional: domain.Professional{
			ID: 10, DefaultStart: "08:00", DefaultEnd: "18:00", Active: true,
		},
		UnitID:   20,
		Bookings: bookings,
	}
}

func existing(id int64, date time.Time, start, end string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID: id, ProfessionalID: 10, UnitID: 20, BookingDate: date,
		StartTime: types.TimeString(start), EndTime: types.TimeString(end), Status: status,
	}
}

func request(date time.Time, start, end string) *Request {
	return &Request{
		Actor:          staff,
		ProfessionalID: 10,
		UnitID:         20,
		ClientID:       ptr.Ptr(int64(77)),
		Date:           date,
		StartTime:      types.TimeString(start),
		EndTime:        types.TimeString(end),
		Type:           domain.TypeConsultation,
	}
}

type fixture struct {
	repo    *mockRepo
	loader  *stubLoader
	locker  *recordingLocker
	metrics *metrics.Metrics
	uc      *UseCase
}

func newFixture(inputs *scheduling.DayInputs) *fixture {
	f := &fixture{
		repo:    &mockRepo{},
		loader:  &stubLoader{inputs: inputs},
		locker:  &recordingLocker{},
		metrics: metrics.NewWithRegistry("agenda", prometheus.NewRegistry()),
	}
	f.uc = NewUseCase(f.repo, f.loader, f.locker, inlineTx{}, f.metrics, logger.NewNop())
	return f
}

func TestExecute_Accepted(t *testing.T) {
	f := newFixture(dayInputs(wednesday))
	ctx := context.Background()

	f.repo.On("Create", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Status == domain.StatusScheduled && b.StartTime == "10:00" && b.EndTime == "11:00" &&
			b.Conversion.Outcome == domain.OutcomeUnset
	})).Return(&domain.Booking{
		ID: 1, ProfessionalID: 10, UnitID: 20, BookingDate: wednesday,
		StartTime: "10:00", EndTime: "11:00", Status: domain.StatusScheduled, Version: 1,
	}, nil)

	resp, err := f.uc.Execute(ctx, request(wednesday, "10:00", "11:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "agendado", resp.Status)

	assert.Equal(t, []string{"agenda:day:10:20:2025-03-05"}, f.locker.acquired)
	assert.Equal(t, f.locker.acquired, f.locker.released)
	assert.Equal(t, f.locker.acquired, f.repo.locked)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.BookingsCreated.WithLabelValues("agendado")))
	f.repo.AssertExpectations(t)
}

func TestExecute_Occupied(t *testing.T) {
	a := existing(5, wednesday, "10:00", "11:00", domain.StatusScheduled)
	f := newFixture(dayInputs(wednesday, a))

	_, err := f.uc.Execute(context.Background(), request(wednesday, "10:30", "11:30"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)

	var conflictErr *domain.ConflictError
	require.True(t, errors.As(err, &conflictErr))
	assert.Equal(t, domain.ConflictOccupied, conflictErr.Kind)
	assert.Equal(t, int64(5), conflictErr.Booking.ID)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ConflictsDetected.WithLabelValues("occupied")))
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	// Блокировка освобождается и при отказе
	assert.Equal(t, f.locker.acquired, f.locker.released)
}

func TestExecute_CancelledFreesSlot(t *testing.T) {
	a := existing(5, wednesday, "10:00", "11:00", domain.StatusCancelled)
	f := newFixture(dayInputs(wednesday, a))
	f.repo.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{ID: 6, Status: domain.StatusScheduled}, nil)

	_, err := f.uc.Execute(context.Background(), request(wednesday, "10:30", "11:30"))
	require.NoError(t, err)
}

func TestExecute_Block(t *testing.T) {
	ctx := context.Background()

	t.Run("staff cannot create blocks", func(t *testing.T) {
		f := newFixture(dayInputs(wednesday))
		req := request(wednesday, "10:00", "11:00")
		req.ClientID = nil
		req.Block = true

		_, err := f.uc.Execute(ctx, req)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Empty(t, f.locker.acquired)
	})

	t.Run("admin block outside working hours", func(t *testing.T) {
		f := newFixture(dayInputs(wednesday))
		f.repo.On("Create", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.Status == domain.StatusBlock && b.ClientID == nil
		})).Return(&domain.Booking{ID: 9, Status: domain.StatusBlock}, nil)

		req := request(wednesday, "19:00", "20:00")
		req.Actor = admin
		req.ClientID = nil
		req.Block = true

		resp, err := f.uc.Execute(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "bloqueio", resp.Status)
	})

	t.Run("appointment inside a block is blocked", func(t *testing.T) {
		block := existing(3, wednesday, "09:00", "12:00", domain.StatusBlock)
		f := newFixture(dayInputs(wednesday, block))

		_, err := f.uc.Execute(ctx, request(wednesday, "10:00", "11:00"))
		var conflictErr *domain.ConflictError
		require.True(t, errors.As(err, &conflictErr))
		assert.Equal(t, domain.ConflictBlocked, conflictErr.Kind)
	})
}

func TestExecute_SaturdayLocksUnitFirst(t *testing.T) {
	inputs := dayInputs(saturday)
	inputs.SaturdayProfessional = []domain.SaturdayProfessionalConfig{{
		ID: 1, ProfessionalID: 10, UnitID: 20, Scope: domain.Recurring(), Start: "08:00", End: "12:00", Active: true,
	}}
	f := newFixture(inputs)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{ID: 1, Status: domain.StatusScheduled}, nil)

	_, err := f.uc.Execute(context.Background(), request(saturday, "09:00", "10:00"))
	require.NoError(t, err)

	assert.Equal(t, []string{"agenda:unit:20:2025-03-08", "agenda:day:10:20:2025-03-08"}, f.locker.acquired)
	assert.Equal(t, []string{"agenda:day:10:20:2025-03-08", "agenda:unit:20:2025-03-08"}, f.locker.released)
	assert.Equal(t, f.locker.acquired, f.repo.locked)
}

func TestExecute_Concurrency(t *testing.T) {
	ctx := context.Background()

	t.Run("lock busy", func(t *testing.T) {
		f := newFixture(dayInputs(wednesday))
		f.locker.busy = "agenda:day:10:20:2025-03-05"

		_, err := f.uc.Execute(ctx, request(wednesday, "10:00", "11:00"))
		assert.ErrorIs(t, err, domain.ErrConcurrency)
	})

	t.Run("exclusion constraint", func(t *testing.T) {
		f := newFixture(dayInputs(wednesday))
		f.repo.On("Create", ctx, mock.Anything).Return(nil, bookingRepo.ErrOverlap)

		_, err := f.uc.Execute(ctx, request(wednesday, "10:00", "11:00"))
		assert.ErrorIs(t, err, ErrConcurrentBooking)
		assert.ErrorIs(t, err, domain.ErrConcurrency)
	})
}

func TestExecute_LoadDayErrors(t *testing.T) {
	f := newFixture(nil)
	f.loader.err = fmt.Errorf("schedules.service: professional %w", domain.ErrNotFound)

	_, err := f.uc.Execute(context.Background(), request(wednesday, "10:00", "11:00"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	f.loader.err = errors.New("connection reset")
	_, err = f.uc.Execute(context.Background(), request(wednesday, "10:00", "11:00"))
	assert.ErrorIs(t, err, ErrInternal)
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *Request)
	}{
		{name: "missing professional", modify: func(r *Request) { r.ProfessionalID = 0 }},
		{name: "missing date", modify: func(r *Request) { r.Date = time.Time{} }},
		{name: "bad start", modify: func(r *Request) { r.StartTime = "25:00" }},
		{name: "start equals end", modify: func(r *Request) { r.EndTime = r.StartTime }},
		{name: "end before start", modify: func(r *Request) { r.StartTime, r.EndTime = "11:00", "10:00" }},
		{name: "appointment without client", modify: func(r *Request) { r.ClientID = nil }},
		{name: "block with client", modify: func(r *Request) { r.Block = true }},
		{name: "unknown type", modify: func(r *Request) { r.Type = "massage" }},
		{name: "zero installments", modify: func(r *Request) { r.Installments = ptr.Ptr(0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request(wednesday, "10:00", "11:00")
			tt.modify(req)
			assert.ErrorIs(t, validateRequest(req), domain.ErrValidation)
		})
	}

	assert.NoError(t, validateRequest(request(wednesday, "10:00", "11:00")))
}
