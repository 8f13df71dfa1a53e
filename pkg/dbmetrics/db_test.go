package dbmetrics

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/metrics"
)

func TestGetExecutor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)

	ctx := context.Background()
	assert.False(t, IsInTransaction(ctx))
	assert.Equal(t, DBExecutor(db), GetExecutor(ctx, db))

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, DBExecutor(tx), GetExecutor(txCtx, db))
}

func TestDB_ObservesQueries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry("agenda", reg)
	wrapped := Wrap(db, m)

	mock.ExpectExec("DELETE FROM bookings").WillReturnResult(sqlmock.NewResult(0, 1))

	_, err = wrapped.ExecContext(context.Background(), "DELETE FROM bookings WHERE id = $1", 1)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, 1, testutil.CollectAndCount(m.DBQueryDuration))
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("  SELECT id FROM bookings"))
	assert.Equal(t, "unknown", operation(""))
}
