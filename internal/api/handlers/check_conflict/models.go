package check_conflict

import (
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers"
	bookingModels "github.com/BongoShiny/agenda-pro-new-sub001/internal/service/bookings/models"
	checkConflict "github.com/BongoShiny/agenda-pro-new-sub001/internal/usecase/check_conflict"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/types"
)

// CheckConflictRequest HTTP request model
type CheckConflictRequest struct {
	ProfessionalID int64  `json:"professionalId" validate:"required,gt=0"`
	UnitID         int64  `json:"unitId" validate:"required,gt=0"`
	Date           string `json:"date" validate:"required,isodate"`
	StartTime      string `json:"startTime" validate:"required,hhmm"`
	EndTime        string `json:"endTime" validate:"required,hhmm"`
	SelfID         *int64 `json:"selfId,omitempty" validate:"omitempty,gt=0"`
	Block          bool   `json:"block"`
}

// CheckConflictResponse HTTP response model
type CheckConflictResponse struct {
	Accepted           bool                           `json:"accepted"`
	Kind               string                         `json:"kind,omitempty"`
	ConflictingBooking *bookingModels.BookingResponse `json:"conflictingBooking,omitempty"`
	GridPoint          *string                        `json:"gridPoint,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckConflictRequest) ToUseCaseRequest() (*checkConflict.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &checkConflict.Request{
		ProfessionalID: r.ProfessionalID,
		UnitID:         r.UnitID,
		Date:           date,
		StartTime:      start,
		EndTime:        end,
		SelfID:         r.SelfID,
		Block:          r.Block,
	}, nil
}

// FromUseCaseResponse конвертирует вердикт в HTTP response
func FromUseCaseResponse(resp *checkConflict.Response) *CheckConflictResponse {
	verdict := resp.Verdict
	out := &CheckConflictResponse{
		Accepted:           verdict.Accepted,
		Kind:               string(verdict.Kind),
		ConflictingBooking: bookingModels.FromDomainBooking(verdict.Conflicting),
	}
	if verdict.GridPoint != nil {
		point := verdict.GridPoint.String()
		out.GridPoint = &point
	}
	return out
}
