package scheduling

import (
	"time"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/types"
)

const (
	professionalID int64 = 10
	otherProfID    int64 = 11
	unitID         int64 = 20
)

var (
	wednesday = time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	saturday  = time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
)

func ts(s string) types.TimeString {
	return types.MustTimeString(s)
}

func professional() domain.Professional {
	return domain.Professional{
		ID:           professionalID,
		Name:         "Ana",
		DefaultStart: ts("08:00"),
		DefaultEnd:   ts("18:00"),
		Active:       true,
	}
}

func dayInputs(date time.Time) DayInputs {
	return DayInputs{
		Date:         date,
		Professional: professional(),
		UnitID:       unitID,
	}
}

func booking(id int64, date time.Time, start, end string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:             id,
		ProfessionalID: professionalID,
		UnitID:         unitID,
		BookingDate:    date,
		StartTime:      ts(start),
		EndTime:        ts(end),
		Status:         status,
		Type:           domain.TypeConsultation,
		Conversion:     domain.EmptyConversion(),
	}
}

func draft(date time.Time, start, end string) domain.Draft {
	return domain.Draft{
		ProfessionalID: professionalID,
		UnitID:         unitID,
		Date:           date,
		Start:          ts(start),
		End:            ts(end),
		Kind:           domain.DraftAppointment,
	}
}

func exception(id int64, date time.Time, kind domain.ExceptionKind, start, end string) domain.ScheduleException {
	e := domain.ScheduleException{ID: id, ProfessionalID: professionalID, Date: date, Kind: kind}
	if start != "" {
		e.Start = ts(start)
		e.End = ts(end)
	}
	return e
}

func saturdayProfessional(id int64, scope domain.DateScope, start, end string, active bool) domain.SaturdayProfessionalConfig {
	return domain.SaturdayProfessionalConfig{
		ID:             id,
		ProfessionalID: professionalID,
		UnitID:         unitID,
		Scope:          scope,
		Start:          ts(start),
		End:            ts(end),
		Active:         active,
	}
}

func saturdayUnit(id int64, scope domain.DateScope, capacity int) domain.SaturdayUnitConfig {
	return domain.SaturdayUnitConfig{
		ID:              id,
		UnitID:          unitID,
		Scope:           scope,
		CapacityPerHour: capacity,
		Active:          true,
	}
}
