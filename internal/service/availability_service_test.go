package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sica-labs/sica-api/internal/models"
	appErrors "github.com/sica-labs/sica-api/pkg/errors"
)

type mockAdvisorReader struct {
	advisors map[string]models.Advisor
}

func (m *mockAdvisorReader) FindByIDs(ctx context.Context, ids []string) ([]models.Advisor, error) {
	var out []models.Advisor
	for _, id := range ids {
		if advisor, ok := m.advisors[id]; ok {
			out = append(out, advisor)
		}
	}
	return out, nil
}

type mockAttendanceReader struct {
	latest map[string]*models.AttendanceEvent
}

func (m *mockAttendanceReader) LatestOnDate(ctx context.Context, accountID string, date time.Time) (*models.AttendanceEvent, error) {
	return m.latest[accountID], nil
}

func availabilityFixture() (*mockShiftRepo, *mockAdvisorReader, *mockAttendanceReader) {
	shifts := &mockShiftRepo{rows: []models.Shift{
		storedCell("cell-1", "blk-1", "adv-1", "SC1", "MON", "10:00-10:30"),
		storedCell("cell-2", "blk-1", "adv-1", "SC1", "MON", "10:30-11:00"),
		storedCell("cell-3", "blk-2", "adv-2", "SC1", "MON", "09:30-10:00"),
		storedCell("cell-4", "blk-3", "adv-3", "SC1", "MON", "10:00-10:30"),
	}}
	advisors := &mockAdvisorReader{advisors: map[string]models.Advisor{
		"adv-1": {ID: "adv-1", AccountID: "acc-1", FullName: "Advisor One"},
		"adv-2": {ID: "adv-2", AccountID: "acc-2", FullName: "Advisor Two"},
		"adv-3": {ID: "adv-3", AccountID: "acc-3", FullName: "Advisor Three"},
	}}
	attendance := &mockAttendanceReader{latest: map[string]*models.AttendanceEvent{
		"acc-1": {AccountID: "acc-1", Type: models.AttendanceCheckIn},
		"acc-2": {AccountID: "acc-2", Type: models.AttendanceCheckOut},
	}}
	return shifts, advisors, attendance
}

func TestAvailabilityFindBySlot(t *testing.T) {
	shifts, advisors, attendance := availabilityFixture()
	service := NewAvailabilityService(shifts, advisors, attendance, nil, zap.NewNop())

	entries, err := service.FindBySlot(context.Background(), "SC1", "MON", "10:00-10:30")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "adv-1", entries[0].AdvisorID)
	assert.Equal(t, "Advisor One", entries[0].AdvisorName)
	assert.Equal(t, "adv-3", entries[1].AdvisorID)
}

func TestAvailabilityFindBySlotPresence(t *testing.T) {
	shifts, advisors, attendance := availabilityFixture()
	service := NewAvailabilityService(shifts, advisors, attendance, nil, zap.NewNop())

	entries, err := service.FindBySlot(context.Background(), "SC1", "MON", "09:30-10:00")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Present, "latest event is a check-out")

	entries, err = service.FindBySlot(context.Background(), "SC1", "MON", "10:30-11:00")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Present, "latest event is a check-in")
}

func TestAvailabilityFindBySlotNoEventMeansAbsent(t *testing.T) {
	shifts, advisors, attendance := availabilityFixture()
	service := NewAvailabilityService(shifts, advisors, attendance, nil, zap.NewNop())

	entries, err := service.FindBySlot(context.Background(), "SC1", "MON", "10:00-10:30")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.False(t, entries[1].Present, "adv-3 has no attendance event today")
}

func TestAvailabilityFindByRangeBoundaryIsExclusive(t *testing.T) {
	shifts, advisors, attendance := availabilityFixture()
	service := NewAvailabilityService(shifts, advisors, attendance, nil, zap.NewNop())

	entries, err := service.FindByRange(context.Background(), "SC1", "MON", "10:00", "11:00")
	require.NoError(t, err)
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.AdvisorID)
	}
	// adv-2 ends exactly at 10:00, so a touching boundary is not a match.
	assert.Equal(t, []string{"adv-1", "adv-3"}, ids)
}

func TestAvailabilityFindByRangeDeduplicatesAdvisor(t *testing.T) {
	shifts, advisors, attendance := availabilityFixture()
	service := NewAvailabilityService(shifts, advisors, attendance, nil, zap.NewNop())

	entries, err := service.FindByRange(context.Background(), "SC1", "MON", "09:30", "11:00")
	require.NoError(t, err)
	// adv-1 holds two cells in the window but appears once.
	require.Len(t, entries, 3)
}

func TestAvailabilityFindByRangeRejectsInvertedRange(t *testing.T) {
	shifts, advisors, attendance := availabilityFixture()
	service := NewAvailabilityService(shifts, advisors, attendance, nil, zap.NewNop())

	_, err := service.FindByRange(context.Background(), "SC1", "MON", "11:00", "10:00")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidRange.Code, appErrors.FromError(err).Code)
}

func TestAvailabilityEmptyResultIsNotAnError(t *testing.T) {
	shifts, advisors, attendance := availabilityFixture()
	service := NewAvailabilityService(shifts, advisors, attendance, nil, zap.NewNop())

	entries, err := service.FindByRange(context.Background(), "SC3", "MON", "10:00", "11:00")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAvailabilityRejectsUnknownWeekday(t *testing.T) {
	shifts, advisors, attendance := availabilityFixture()
	service := NewAvailabilityService(shifts, advisors, attendance, nil, zap.NewNop())

	_, err := service.FindBySlot(context.Background(), "SC1", "SUN", "10:00-10:30")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
