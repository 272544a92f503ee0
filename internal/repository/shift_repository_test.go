package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sica-labs/sica-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestShiftRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewShiftRepository(db)

	rows := sqlmock.NewRows([]string{"id", "booking_id", "advisor_id", "room", "day_of_week", "slot_label", "metadata", "created_at"}).
		AddRow("cell-1", "blk-1", "adv-1", "SC1", "MON", "10:00-10:30", nil, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, booking_id, advisor_id, room, day_of_week, slot_label, metadata, created_at FROM advisor_shifts WHERE 1=1 AND room = $1 AND day_of_week = $2 ORDER BY day_of_week ASC, slot_label ASC")).
		WithArgs("SC1", "MON").
		WillReturnRows(rows)

	shifts, err := repo.List(context.Background(), models.ShiftFilter{Room: "SC1", DayOfWeek: "MON"})
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, "blk-1", shifts[0].BookingID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepositoryBulkCreateIsTransactional(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewShiftRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO advisor_shifts").
		WithArgs(sqlmock.AnyArg(), "blk-1", "adv-1", "SC1", "MON", "10:00-10:30", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO advisor_shifts").
		WithArgs(sqlmock.AnyArg(), "blk-1", "adv-1", "SC1", "WED", "10:00-10:30", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	shifts := []models.Shift{
		{BookingID: "blk-1", AdvisorID: "adv-1", Room: "SC1", DayOfWeek: "MON", SlotLabel: "10:00-10:30"},
		{BookingID: "blk-1", AdvisorID: "adv-1", Room: "SC1", DayOfWeek: "WED", SlotLabel: "10:00-10:30"},
	}
	require.NoError(t, repo.BulkCreate(context.Background(), shifts))
	assert.NotEmpty(t, shifts[0].ID, "generated ids are written back")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepositoryDeleteByBookingID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewShiftRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM advisor_shifts WHERE booking_id = $1")).
		WithArgs("blk-1").
		WillReturnResult(sqlmock.NewResult(0, 4))

	removed, err := repo.DeleteByBookingID(context.Background(), "blk-1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
