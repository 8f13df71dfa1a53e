package resolve_availability

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/scheduling"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/logger"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/types"
)

var wednesday = time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

type stubLoader struct {
	inputs *scheduling.DayInputs
	err    error
}

func (l *stubLoader) LoadDay(ctx context.Context, professionalID, unitID int64, date time.Time) (*scheduling.DayInputs, error) {
	return l.inputs, l.err
}

func day(exceptions ...domain.ScheduleException) *scheduling.DayInputs {
	return &scheduling.DayInputs{
		Date:         wednesday,
		Professional: domain.Professional{ID: 10, DefaultStart: "08:00", DefaultEnd: "18:00", Active: true},
		UnitID:       20,
		Exceptions:   exceptions,
	}
}

func request() *Request {
	return &Request{ProfessionalID: 10, UnitID: 20, Date: wednesday}
}

func TestExecute_DefaultHours(t *testing.T) {
	uc := NewUseCase(&stubLoader{inputs: day()}, logger.NewNop())

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)
	assert.True(t, resp.Window.Available)
	assert.Equal(t, domain.SourceDefault, resp.Window.Source)
	assert.Equal(t, types.TimeString("08:00"), resp.Window.Start)
	assert.Equal(t, types.TimeString("18:00"), resp.Window.End)
}

func TestExecute_LeaveAndLunch(t *testing.T) {
	t.Run("leave", func(t *testing.T) {
		uc := NewUseCase(&stubLoader{inputs: day(domain.ScheduleException{
			ID: 1, ProfessionalID: 10, Date: wednesday, Kind: domain.ExceptionLeave,
		})}, logger.NewNop())

		resp, err := uc.Execute(context.Background(), request())
		require.NoError(t, err)
		assert.True(t, resp.Window.IsLeave)
		assert.False(t, resp.Window.Available)
	})

	t.Run("lunch carve-out", func(t *testing.T) {
		uc := NewUseCase(&stubLoader{inputs: day(domain.ScheduleException{
			ID: 1, ProfessionalID: 10, Date: wednesday, Kind: domain.ExceptionLunch, Start: "12:00", End: "13:00",
		})}, logger.NewNop())

		resp, err := uc.Execute(context.Background(), request())
		require.NoError(t, err)
		require.NotNil(t, resp.Window.Lunch)
		assert.Equal(t, types.TimeString("12:00"), resp.Window.Lunch.Start)
		assert.True(t, resp.Window.Available)
	})
}

func TestExecute_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewUseCase(&stubLoader{}, logger.NewNop()).Execute(ctx, &Request{UnitID: 20, Date: wednesday})
	assert.ErrorIs(t, err, domain.ErrValidation)

	notFound := fmt.Errorf("schedules.service: professional %w", domain.ErrNotFound)
	_, err = NewUseCase(&stubLoader{err: notFound}, logger.NewNop()).Execute(ctx, request())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = NewUseCase(&stubLoader{err: errors.New("db down")}, logger.NewNop()).Execute(ctx, request())
	assert.ErrorIs(t, err, ErrInternal)

	broken := day(domain.ScheduleException{
		ID: 1, ProfessionalID: 10, Date: wednesday, Kind: domain.ExceptionCustom, Start: "12:00", End: "09:00",
	})
	_, err = NewUseCase(&stubLoader{inputs: broken}, logger.NewNop()).Execute(ctx, request())
	assert.ErrorIs(t, err, domain.ErrValidation)
}
