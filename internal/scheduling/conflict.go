package scheduling

import (
	"fmt"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/types"
)

// DetectConflict checks a draft against the day snapshot. First failure wins:
//
//	blocked -> occupied -> out_of_hours -> capacity_reached
//
// Block drafts run only the first two checks, so a block may sit outside working hours
// but never over another block or an active booking.
// Malformed drafts and malformed schedule data are returned as domain.ErrValidation.
func DetectConflict(draft domain.Draft, in DayInputs) (domain.Verdict, error) {
	if err := ValidateDraft(draft); err != nil {
		return domain.Verdict{}, err
	}

	if verdict, done := checkBookings(draft, in); done {
		return verdict, nil
	}

	if draft.Kind == domain.DraftBlock {
		return domain.Accept(), nil
	}

	window, err := ResolveWindow(in)
	if err != nil {
		return domain.Verdict{}, err
	}

	return checkHours(draft, in, window), nil
}

// ValidateDraft rejects drafts with unparsable times or start >= end
func ValidateDraft(draft domain.Draft) error {
	if draft.ProfessionalID <= 0 || draft.UnitID <= 0 {
		return fmt.Errorf("%w: professionalId and unitId must be positive", domain.ErrValidation)
	}
	if draft.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if err := draft.Start.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start %q: %v", domain.ErrValidation, draft.Start, err)
	}
	if err := draft.End.Validate(); err != nil {
		return fmt.Errorf("%w: invalid end %q: %v", domain.ErrValidation, draft.End, err)
	}
	if !draft.Start.IsBefore(draft.End) {
		return fmt.Errorf("%w: start %s must be before end %s", domain.ErrValidation, draft.Start, draft.End)
	}
	if draft.Kind != domain.DraftAppointment && draft.Kind != domain.DraftBlock {
		return fmt.Errorf("%w: unknown draft kind %q", domain.ErrValidation, draft.Kind)
	}
	return nil
}

// checkBookings runs the blocked and occupied checks
func checkBookings(draft domain.Draft, in DayInputs) (domain.Verdict, bool) {
	candidate := draft.Interval()

	for _, b := range in.Bookings {
		if !in.sameKey(b) || draft.IsSelf(b) || !b.IsBlock() {
			continue
		}
		if b.Interval().Overlaps(candidate) {
			return domain.Reject(domain.ConflictBlocked, b), true
		}
	}

	for _, b := range in.Bookings {
		if !in.sameKey(b) || draft.IsSelf(b) || !b.OccupiesSlot() {
			continue
		}
		if b.Interval().Overlaps(candidate) {
			return domain.Reject(domain.ConflictOccupied, b), true
		}
	}

	return domain.Verdict{}, false
}

// checkHours runs the out-of-hours and capacity checks against a resolved window
func checkHours(draft domain.Draft, in DayInputs, window domain.Window) domain.Verdict {
	candidate := draft.Interval()

	if !window.Available || !candidate.Within(window.Interval()) {
		return domain.Reject(domain.ConflictOutOfHours, nil)
	}
	if window.Lunch != nil && window.Lunch.Overlaps(candidate) {
		return domain.Reject(domain.ConflictOutOfHours, nil)
	}

	// Вместимость проверяется только для субботы без исключения
	if !IsSaturday(in.Date) || window.IsException {
		return domain.Accept()
	}

	cfg := pickSaturdayUnit(in.SaturdayUnit, in.UnitID, in.Date)
	if cfg == nil {
		return domain.Accept()
	}

	for _, h := range GridPoints(candidate) {
		if countContaining(draft, in, h) >= cfg.CapacityPerHour {
			point := h
			return domain.Verdict{Kind: domain.ConflictCapacityReached, GridPoint: &point}
		}
	}

	return domain.Accept()
}

// GridPoints returns the whole hours h with start <= h < end.
// An interval that crosses no whole hour has no grid points and is never capacity-limited.
func GridPoints(interval domain.Interval) []types.TimeString {
	start := interval.Start.Minutes()
	end := interval.End.Minutes()
	if start < 0 || end < 0 {
		return nil
	}

	points := make([]types.TimeString, 0, 2)
	first := (start + 59) / 60 * 60
	for m := first; m < end; m += 60 {
		point, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			break
		}
		points = append(points, point)
	}

	return points
}

// countContaining counts unit bookings (any professional) occupying the grid point
func countContaining(draft domain.Draft, in DayInputs, h types.TimeString) int {
	count := 0
	for _, b := range in.Bookings {
		if !in.sameUnitDay(b) || draft.IsSelf(b) || !b.OccupiesSlot() {
			continue
		}
		if b.Interval().ContainsTime(h) {
			count++
		}
	}
	return count
}
