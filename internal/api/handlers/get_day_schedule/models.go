package get_day_schedule

import (
	"strconv"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	getDaySchedule "github.com/BongoShiny/agenda-pro-new-sub001/internal/usecase/get_day_schedule"
)

// DayScheduleResponse HTTP response model
type DayScheduleResponse struct {
	ProfessionalID int64                   `json:"professionalId"`
	UnitID         int64                   `json:"unitId"`
	Date           string                  `json:"date"`
	SlotMinutes    int                     `json:"slotMinutes"`
	Window         handlers.WindowResponse `json:"window"`
	Slots          []DaySlot               `json:"slots"`
}

// DaySlot модель слота сетки
type DaySlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	State     string `json:"state"`
	BookingID *int64 `json:"bookingId,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySchedule.Response) *DayScheduleResponse {
	slots := make([]DaySlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = DaySlot{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			State:     string(slot.State),
			BookingID: slot.BookingID,
		}
	}

	return &DayScheduleResponse{
		ProfessionalID: resp.ProfessionalID,
		UnitID:         resp.UnitID,
		Date:           resp.Date.Format(domain.DateFormat),
		SlotMinutes:    resp.SlotMinutes,
		Window:         handlers.FromWindow(resp.Window),
		Slots:          slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров
func ToUseCaseRequest(professionalID, unitID int64, dateStr, slotMinutesStr string) (*getDaySchedule.Request, error) {
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	slotMinutes := 0
	if slotMinutesStr != "" {
		slotMinutes, err = strconv.Atoi(slotMinutesStr)
		if err != nil {
			return nil, err
		}
	}

	return &getDaySchedule.Request{
		ProfessionalID: professionalID,
		UnitID:         unitID,
		Date:           date,
		SlotMinutes:    slotMinutes,
	}, nil
}
