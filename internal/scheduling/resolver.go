package scheduling

import (
	"fmt"
	"time"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/types"
)

// ResolveWindow computes the professional's bookable window for in.Date.
//
// Priority:
//  1. non-lunch exception for the date (leave or custom hours), most recent wins
//  2. on Saturdays, the professional config for the unit (date-specific before recurring);
//     if the chosen config is inactive or missing, the professional does not work that Saturday
//  3. the professional's default hours
//
// A lunch exception is attached as a carve-out when the window is available.
func ResolveWindow(in DayInputs) (domain.Window, error) {
	window, err := resolveBase(in)
	if err != nil {
		return domain.Window{}, err
	}

	if !window.Available {
		return window, nil
	}

	if lunch := latestException(in.Exceptions, in.Professional.ID, in.Date, true); lunch != nil {
		interval := lunch.Interval()
		if !interval.IsValid() {
			return domain.Window{}, fmt.Errorf("%w: lunch exception id=%d has end %q not after start %q",
				domain.ErrValidation, lunch.ID, lunch.End, lunch.Start)
		}
		window.Lunch = &interval
	}

	return window, nil
}

func resolveBase(in DayInputs) (domain.Window, error) {
	if !in.Professional.Active {
		return domain.Window{Source: domain.SourceClosed}, nil
	}

	if exception := latestException(in.Exceptions, in.Professional.ID, in.Date, false); exception != nil {
		if exception.Kind == domain.ExceptionLeave {
			return domain.Window{
				IsException: true,
				IsLeave:     true,
				Source:      domain.SourceLeave,
			}, nil
		}
		return buildWindow(exception.Start, exception.End, domain.SourceException,
			fmt.Sprintf("exception id=%d", exception.ID))
	}

	if IsSaturday(in.Date) {
		cfg := pickSaturdayProfessional(in.SaturdayProfessional, in.Professional.ID, in.UnitID, in.Date)
		if cfg == nil {
			return domain.Window{Source: domain.SourceClosed}, nil
		}
		return buildWindow(cfg.Start, cfg.End, domain.SourceSaturday,
			fmt.Sprintf("saturday config id=%d", cfg.ID))
	}

	return buildWindow(in.Professional.DefaultStart, in.Professional.DefaultEnd, domain.SourceDefault,
		fmt.Sprintf("professional id=%d default hours", in.Professional.ID))
}

func buildWindow(start, end types.TimeString, source domain.WindowSource, origin string) (domain.Window, error) {
	interval := domain.Interval{Start: start, End: end}
	if !interval.IsValid() {
		return domain.Window{}, fmt.Errorf("%w: %s has end %q not after start %q",
			domain.ErrValidation, origin, end, start)
	}
	return domain.Window{
		Start:       start,
		End:         end,
		IsException: source == domain.SourceException,
		Available:   true,
		Source:      source,
	}, nil
}

// latestException returns the exception with the highest id matching the date,
// either the lunch exception or the window-defining one
func latestException(exceptions []domain.ScheduleException, professionalID int64, date time.Time, lunch bool) *domain.ScheduleException {
	var found *domain.ScheduleException
	for i := range exceptions {
		e := &exceptions[i]
		if e.ProfessionalID != professionalID || !domain.SameDay(e.Date, date) {
			continue
		}
		if (e.Kind == domain.ExceptionLunch) != lunch {
			continue
		}
		if found == nil || e.ID > found.ID {
			found = e
		}
	}
	return found
}

// pickSaturdayProfessional chooses the scope before looking at Active, so an
// inactive config for the date overrides a recurring one and closes that Saturday.
func pickSaturdayProfessional(configs []domain.SaturdayProfessionalConfig, professionalID, unitID int64, date time.Time) *domain.SaturdayProfessionalConfig {
	var recurring, chosen *domain.SaturdayProfessionalConfig
	for i := range configs {
		c := &configs[i]
		if c.ProfessionalID != professionalID || c.UnitID != unitID {
			continue
		}
		if c.Scope.IsRecurring() {
			if recurring == nil {
				recurring = c
			}
			continue
		}
		if c.Scope.Matches(date) {
			chosen = c
			break
		}
	}
	if chosen == nil {
		chosen = recurring
	}
	if chosen == nil || !chosen.Active {
		return nil
	}
	return chosen
}

// pickSaturdayUnit follows the same precedence. A nil result means no capacity limit.
func pickSaturdayUnit(configs []domain.SaturdayUnitConfig, unitID int64, date time.Time) *domain.SaturdayUnitConfig {
	var recurring, chosen *domain.SaturdayUnitConfig
	for i := range configs {
		c := &configs[i]
		if c.UnitID != unitID {
			continue
		}
		if c.Scope.IsRecurring() {
			if recurring == nil {
				recurring = c
			}
			continue
		}
		if c.Scope.Matches(date) {
			chosen = c
			break
		}
	}
	if chosen == nil {
		chosen = recurring
	}
	if chosen == nil || !chosen.Active {
		return nil
	}
	return chosen
}
