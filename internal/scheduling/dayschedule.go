package scheduling

import (
	"fmt"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/types"
)

// BuildDaySchedule splits the view bounds of the day into slots of slotMinutes and labels
// each one with the verdict the detector would give an appointment draft for it.
// View bounds are the window when available, else the professional's default hours.
func BuildDaySchedule(in DayInputs, slotMinutes int) ([]domain.DaySlot, domain.Window, error) {
	if slotMinutes < domain.MinSlotMinutes || slotMinutes > domain.MaxSlotMinutes {
		return nil, domain.Window{}, fmt.Errorf("%w: slotMinutes must be in [%d, %d]",
			domain.ErrValidation, domain.MinSlotMinutes, domain.MaxSlotMinutes)
	}

	window, err := ResolveWindow(in)
	if err != nil {
		return nil, domain.Window{}, err
	}

	bounds := viewBounds(in, window)
	slots := make([]domain.DaySlot, 0)

	current := bounds.Start
	for current.IsBefore(bounds.End) {
		// Слот не должен выходить за границу дня
		slotEnd, err := current.AddMinutes(slotMinutes)
		if err != nil || slotEnd.IsAfter(bounds.End) {
			break
		}

		draft := domain.Draft{
			ProfessionalID: in.Professional.ID,
			UnitID:         in.UnitID,
			Date:           in.Date,
			Start:          current,
			End:            slotEnd,
			Kind:           domain.DraftAppointment,
		}

		slots = append(slots, labelSlot(draft, in, window))
		current = slotEnd
	}

	return slots, window, nil
}

func labelSlot(draft domain.Draft, in DayInputs, window domain.Window) domain.DaySlot {
	slot := domain.DaySlot{StartTime: draft.Start, EndTime: draft.End, State: domain.SlotFree}

	verdict, done := checkBookings(draft, in)
	if !done {
		verdict = checkHours(draft, in, window)
	}
	if verdict.Accepted {
		return slot
	}

	if verdict.Conflicting != nil {
		id := verdict.Conflicting.ID
		slot.BookingID = &id
	}

	switch verdict.Kind {
	case domain.ConflictBlocked:
		slot.State = domain.SlotBlocked
	case domain.ConflictOccupied:
		slot.State = domain.SlotOccupied
	case domain.ConflictCapacityReached:
		slot.State = domain.SlotFull
	case domain.ConflictOutOfHours:
		slot.State = domain.SlotClosed
		if window.Available && window.Lunch != nil && window.Lunch.Overlaps(draft.Interval()) &&
			draft.Interval().Within(window.Interval()) {
			slot.State = domain.SlotLunch
		}
	}

	return slot
}

func viewBounds(in DayInputs, window domain.Window) domain.Interval {
	if window.Available {
		return window.Interval()
	}

	defaults := domain.Interval{Start: in.Professional.DefaultStart, End: in.Professional.DefaultEnd}
	if defaults.IsValid() {
		return defaults
	}

	return domain.Interval{
		Start: types.TimeString(domain.DefaultViewStart),
		End:   types.TimeString(domain.DefaultViewEnd),
	}
}
