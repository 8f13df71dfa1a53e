package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
)

func statesOf(slots []domain.DaySlot) map[string]domain.SlotState {
	states := make(map[string]domain.SlotState, len(slots))
	for _, s := range slots {
		states[s.StartTime.String()] = s.State
	}
	return states
}

func TestBuildDaySchedule_Labels(t *testing.T) {
	in := dayInputs(wednesday)
	in.Exceptions = []domain.ScheduleException{exception(1, wednesday, domain.ExceptionLunch, "12:00", "13:00")}
	in.Bookings = []*domain.Booking{
		booking(1, wednesday, "09:00", "10:00", domain.StatusConfirmed),
		booking(2, wednesday, "15:00", "17:00", domain.StatusBlock),
		booking(3, wednesday, "10:00", "11:00", domain.StatusCancelled),
	}

	slots, window, err := BuildDaySchedule(in, 60)
	require.NoError(t, err)
	assert.True(t, window.Available)
	require.Len(t, slots, 10)

	states := statesOf(slots)
	assert.Equal(t, domain.SlotFree, states["08:00"])
	assert.Equal(t, domain.SlotOccupied, states["09:00"])
	assert.Equal(t, domain.SlotFree, states["10:00"], "cancelled booking frees the slot")
	assert.Equal(t, domain.SlotLunch, states["12:00"])
	assert.Equal(t, domain.SlotBlocked, states["15:00"])
	assert.Equal(t, domain.SlotBlocked, states["16:00"])

	require.NotNil(t, slots[1].BookingID)
	assert.Equal(t, int64(1), *slots[1].BookingID)
	assert.True(t, slots[0].IsBookable())
	assert.False(t, slots[1].IsBookable())
}

func TestBuildDaySchedule_LeaveShowsClosedDefaultHours(t *testing.T) {
	in := dayInputs(wednesday)
	in.Exceptions = []domain.ScheduleException{exception(1, wednesday, domain.ExceptionLeave, "", "")}

	slots, window, err := BuildDaySchedule(in, 30)
	require.NoError(t, err)
	assert.True(t, window.IsLeave)
	require.Len(t, slots, 20)
	for _, s := range slots {
		assert.Equal(t, domain.SlotClosed, s.State)
	}
}

func TestBuildDaySchedule_SaturdayFull(t *testing.T) {
	in := dayInputs(saturday)
	in.SaturdayProfessional = []domain.SaturdayProfessionalConfig{
		saturdayProfessional(1, domain.Recurring(), "08:00", "12:00", true),
	}
	in.SaturdayUnit = []domain.SaturdayUnitConfig{saturdayUnit(1, domain.Recurring(), 1)}

	other := booking(1, saturday, "08:00", "09:00", domain.StatusScheduled)
	other.ProfessionalID = otherProfID
	in.Bookings = []*domain.Booking{other}

	slots, _, err := BuildDaySchedule(in, 60)
	require.NoError(t, err)
	require.Len(t, slots, 4)

	states := statesOf(slots)
	assert.Equal(t, domain.SlotFull, states["08:00"])
	assert.Equal(t, domain.SlotFree, states["09:00"])
}

func TestBuildDaySchedule_SlotDoesNotCrossEnd(t *testing.T) {
	in := dayInputs(wednesday)
	in.Exceptions = []domain.ScheduleException{exception(1, wednesday, domain.ExceptionCustom, "09:00", "10:30")}

	slots, _, err := BuildDaySchedule(in, 60)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, ts("09:00"), slots[0].StartTime)
}

func TestBuildDaySchedule_InvalidSlotSize(t *testing.T) {
	_, _, err := BuildDaySchedule(dayInputs(wednesday), 0)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, _, err = BuildDaySchedule(dayInputs(wednesday), 600)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
