package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sica-labs/sica-api/internal/models"
)

func TestAttendanceRepositoryLatestOnDateUsesTimestampRange(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	date := time.Date(2026, 3, 2, 15, 45, 0, 0, time.UTC)
	dayStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	rows := sqlmock.NewRows([]string{"id", "account_id", "event_type", "occurred_at", "created_at"}).
		AddRow("evt-1", "acc-1", "CHECK_IN", date, date)
	mock.ExpectQuery("SELECT id, account_id, event_type, occurred_at, created_at FROM attendance_events").
		WithArgs("acc-1", dayStart, dayEnd).
		WillReturnRows(rows)

	event, err := repo.LatestOnDate(context.Background(), "acc-1", date)
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, models.AttendanceCheckIn, event.Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryLatestOnDateNoRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectQuery("SELECT id, account_id, event_type, occurred_at, created_at FROM attendance_events").
		WithArgs("acc-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "event_type", "occurred_at", "created_at"}))

	event, err := repo.LatestOnDate(context.Background(), "acc-1", time.Now())
	require.NoError(t, err)
	assert.Nil(t, event)
}

func TestAttendanceRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO attendance_events")).
		WithArgs(sqlmock.AnyArg(), "acc-1", "CHECK_IN", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	event := &models.AttendanceEvent{AccountID: "acc-1", Type: models.AttendanceCheckIn}
	require.NoError(t, repo.Create(context.Background(), event))
	assert.NotEmpty(t, event.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
