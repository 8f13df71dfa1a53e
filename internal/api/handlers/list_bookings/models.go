package list_bookings

import (
	"net/url"
	"strconv"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/service/bookings/models"
)

// ToServiceRequest создает запрос сервиса из query параметров
// date задает один день, from/to задают период включительно. date имеет приоритет
func ToServiceRequest(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if raw := query.Get("professionalId"); raw != "" {
		id, err := handlers.ParseID(raw)
		if err != nil {
			return nil, err
		}
		req.ProfessionalID = &id
	}

	if raw := query.Get("unitId"); raw != "" {
		id, err := handlers.ParseID(raw)
		if err != nil {
			return nil, err
		}
		req.UnitID = &id
	}

	if raw := query.Get("date"); raw != "" {
		date, err := handlers.ParseDate(raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	} else {
		from := query.Get("from")
		start, err := handlers.ParseOptionalDate(&from)
		if err != nil {
			return nil, err
		}
		to := query.Get("to")
		end, err := handlers.ParseOptionalDate(&to)
		if err != nil {
			return nil, err
		}
		req.StartDate = start
		req.EndDate = end
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	if raw := query.Get("includeCancelled"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.IncludeCancelled = include
	}

	return req, nil
}
