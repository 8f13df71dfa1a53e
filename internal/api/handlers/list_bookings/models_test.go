package list_bookings

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
)

func TestToServiceRequest(t *testing.T) {
	req, err := ToServiceRequest(url.Values{
		"professionalId":   {"10"},
		"unitId":           {"20"},
		"date":             {"2025-03-05"},
		"includeCancelled": {"true"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), *req.ProfessionalID)
	assert.Equal(t, int64(20), *req.UnitID)
	assert.Equal(t, "2025-03-05", req.StartDate.Format(domain.DateFormat))
	assert.Equal(t, req.StartDate, req.EndDate)
	assert.True(t, req.IncludeCancelled)
	assert.Nil(t, req.Status)

	req, err = ToServiceRequest(url.Values{"from": {"2025-03-01"}, "status": {"confirmado"}})
	require.NoError(t, err)
	assert.NotNil(t, req.StartDate)
	assert.Nil(t, req.EndDate)
	assert.Equal(t, "confirmado", *req.Status)

	_, err = ToServiceRequest(url.Values{"includeCancelled": {"maybe"}})
	assert.Error(t, err)

	_, err = ToServiceRequest(url.Values{"unitId": {"-1"}})
	assert.Error(t, err)
}
