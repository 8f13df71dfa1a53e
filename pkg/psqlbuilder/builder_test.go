package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id").
		From("bookings").
		Where(squirrel.Eq{"professional_id": 1, "unit_id": 2}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM bookings WHERE professional_id = $1 AND unit_id = $2", query)
	assert.Equal(t, []interface{}{1, 2}, args)
}

func TestUpdate_UsesDollarPlaceholders(t *testing.T) {
	query, _, err := Update("bookings").
		Set("status", "cancelado").
		Where(squirrel.Eq{"id": 5}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE bookings SET status = $1 WHERE id = $2", query)
}
