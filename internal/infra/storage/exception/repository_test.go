package exception

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/types"
)

var testDate = time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

func TestRepository_CreateLeave(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO schedule_exceptions (professional_id,exception_date,kind,start_time,end_time,reason) VALUES ($1,$2,$3,$4,$5,$6) RETURNING id, created_at")).
		WithArgs(int64(10), testDate, "leave", nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))

	created, err := repo.Create(context.Background(), &domain.ScheduleException{
		ProfessionalID: 10,
		Date:           testDate,
		Kind:           domain.ExceptionLeave,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListForDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	rows := sqlmock.NewRows([]string{"id", "professional_id", "exception_date", "kind", "start_time", "end_time", "reason", "created_at"}).
		AddRow(int64(1), int64(10), testDate, "lunch", "12:00:00", "13:00:00", nil, testDate).
		AddRow(int64(2), int64(10), testDate, "leave", nil, nil, "férias", testDate)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE professional_id = $1 AND exception_date >= $2 AND exception_date <= $3 ORDER BY exception_date ASC, id ASC")).
		WithArgs(int64(10), testDate, testDate).
		WillReturnRows(rows)

	exceptions, err := repo.ListForDate(context.Background(), 10, testDate)
	require.NoError(t, err)
	require.Len(t, exceptions, 2)

	assert.Equal(t, domain.ExceptionLunch, exceptions[0].Kind)
	assert.Equal(t, types.TimeString("12:00"), exceptions[0].Start)
	assert.Equal(t, domain.ExceptionLeave, exceptions[1].Kind)
	assert.True(t, exceptions[1].Start.IsZero())
	require.NotNil(t, exceptions[1].Reason)
	assert.Equal(t, "férias", *exceptions[1].Reason)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedule_exceptions WHERE id = $1 AND professional_id = $2")).
		WithArgs(int64(3), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), 10, 3)
	assert.ErrorIs(t, err, ErrExceptionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
