package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sica-labs/sica-api/internal/models"
	appErrors "github.com/sica-labs/sica-api/pkg/errors"
)

var testRooms = []string{"SC1", "SC2", "SC3"}

type mockShiftRepo struct {
	rows    []models.Shift
	listErr error
}

func (m *mockShiftRepo) List(ctx context.Context, filter models.ShiftFilter) ([]models.Shift, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []models.Shift
	for _, row := range m.rows {
		if filter.Room != "" && row.Room != filter.Room {
			continue
		}
		if filter.DayOfWeek != "" && row.DayOfWeek != filter.DayOfWeek {
			continue
		}
		if filter.AdvisorID != "" && row.AdvisorID != filter.AdvisorID {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (m *mockShiftRepo) FindByID(ctx context.Context, id string) (*models.Shift, error) {
	for _, row := range m.rows {
		if row.ID == id {
			cp := row
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockShiftRepo) BulkCreate(ctx context.Context, shifts []models.Shift) error {
	for i := range shifts {
		if shifts[i].ID == "" {
			shifts[i].ID = fmt.Sprintf("cell-%d", len(m.rows)+i+1)
		}
		m.rows = append(m.rows, shifts[i])
	}
	return nil
}

func (m *mockShiftRepo) DeleteByBookingID(ctx context.Context, bookingID string) (int64, error) {
	var kept []models.Shift
	var removed int64
	for _, row := range m.rows {
		if row.BookingID == bookingID {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	m.rows = kept
	return removed, nil
}

func storedCell(id, bookingID, advisorID, room, day, slot string) models.Shift {
	return models.Shift{ID: id, BookingID: bookingID, AdvisorID: advisorID, Room: room, DayOfWeek: day, SlotLabel: slot}
}

func TestShiftServiceCreateBlock(t *testing.T) {
	repo := &mockShiftRepo{}
	service := NewShiftService(repo, testRooms, validator.New(), zap.NewNop())

	result, err := service.CreateBlock(context.Background(), CreateShiftBlockRequest{
		AdvisorID: "adv-1",
		Room:      "SC1",
		Days:      []string{"MON", "WED"},
		Slots:     []string{"10:00", "10:30"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.BookingID)
	assert.Len(t, result.Cells, 4)
	assert.Len(t, repo.rows, 4)
	for _, cell := range result.Cells {
		assert.Equal(t, result.BookingID, cell.BookingID)
	}
}

func TestShiftServiceCreateBlockConflictStoresNothing(t *testing.T) {
	repo := &mockShiftRepo{rows: []models.Shift{
		storedCell("cell-1", "blk-1", "adv-1", "SC1", "MON", "10:00-10:30"),
	}}
	service := NewShiftService(repo, testRooms, validator.New(), zap.NewNop())

	_, err := service.CreateBlock(context.Background(), CreateShiftBlockRequest{
		AdvisorID: "adv-2",
		Room:      "SC1",
		Days:      []string{"MON"},
		Slots:     []string{"09:30", "10:00"},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Len(t, repo.rows, 1, "a rejected placement must not store any cell")
}

func TestShiftServiceCreateBlockOtherRoomDoesNotConflict(t *testing.T) {
	repo := &mockShiftRepo{rows: []models.Shift{
		storedCell("cell-1", "blk-1", "adv-1", "SC2", "MON", "10:00-10:30"),
	}}
	service := NewShiftService(repo, testRooms, validator.New(), zap.NewNop())

	_, err := service.CreateBlock(context.Background(), CreateShiftBlockRequest{
		AdvisorID: "adv-2",
		Room:      "SC1",
		Days:      []string{"MON"},
		Slots:     []string{"10:00"},
	})
	require.NoError(t, err)
}

func TestShiftServiceCreateBlockRejectsOffGridSlot(t *testing.T) {
	repo := &mockShiftRepo{}
	service := NewShiftService(repo, testRooms, validator.New(), zap.NewNop())

	_, err := service.CreateBlock(context.Background(), CreateShiftBlockRequest{
		AdvisorID: "adv-1",
		Room:      "SC1",
		Days:      []string{"MON"},
		Slots:     []string{"10:15"},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidRange.Code, appErrors.FromError(err).Code)
}

func TestShiftServiceCreateBlockRejectsUnknownRoom(t *testing.T) {
	repo := &mockShiftRepo{}
	service := NewShiftService(repo, testRooms, validator.New(), zap.NewNop())

	_, err := service.CreateBlock(context.Background(), CreateShiftBlockRequest{
		AdvisorID: "adv-1",
		Room:      "SC9",
		Days:      []string{"MON"},
		Slots:     []string{"10:00"},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestShiftServiceDeleteBlockRemovesWholeBlock(t *testing.T) {
	repo := &mockShiftRepo{rows: []models.Shift{
		storedCell("cell-1", "blk-1", "adv-1", "SC1", "MON", "10:00-10:30"),
		storedCell("cell-2", "blk-1", "adv-1", "SC1", "WED", "10:00-10:30"),
		storedCell("cell-3", "blk-2", "adv-2", "SC1", "FRI", "10:00-10:30"),
	}}
	service := NewShiftService(repo, testRooms, validator.New(), zap.NewNop())

	cell, err := service.DeleteBlock(context.Background(), "cell-2")
	require.NoError(t, err)
	assert.Equal(t, "SC1", cell.Room)
	require.Len(t, repo.rows, 1)
	assert.Equal(t, "blk-2", repo.rows[0].BookingID)
}

func TestShiftServiceDeleteBlockUnknownCell(t *testing.T) {
	repo := &mockShiftRepo{}
	service := NewShiftService(repo, testRooms, validator.New(), zap.NewNop())

	_, err := service.DeleteBlock(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestShiftServiceWeekViewMergesAdjacentCells(t *testing.T) {
	repo := &mockShiftRepo{rows: []models.Shift{
		storedCell("cell-1", "blk-1", "adv-1", "SC1", "MON", "10:00-10:30"),
		storedCell("cell-2", "blk-1", "adv-1", "SC1", "MON", "10:30-11:00"),
		storedCell("cell-3", "blk-1", "adv-1", "SC1", "MON", "11:00-11:30"),
		storedCell("cell-4", "blk-2", "adv-2", "SC1", "MON", "13:00-13:30"),
	}}
	service := NewShiftService(repo, testRooms, validator.New(), zap.NewNop())

	cells, err := service.WeekView(context.Background(), "SC1", "MON")
	require.NoError(t, err)
	require.Len(t, cells, 2)
	assert.Equal(t, "10:00", cells[0].StartTime)
	assert.Equal(t, "11:30", cells[0].EndTime)
	assert.Equal(t, 3, cells[0].SlotCount)
	assert.Equal(t, "blk-1", cells[0].BookingID)
	assert.Equal(t, "13:00", cells[1].StartTime)
}

func TestShiftServiceWeekViewSplitsNonAdjacentCells(t *testing.T) {
	repo := &mockShiftRepo{rows: []models.Shift{
		storedCell("cell-1", "blk-1", "adv-1", "SC1", "TUE", "08:00-08:30"),
		storedCell("cell-2", "blk-1", "adv-1", "SC1", "TUE", "09:00-09:30"),
	}}
	service := NewShiftService(repo, testRooms, validator.New(), zap.NewNop())

	cells, err := service.WeekView(context.Background(), "SC1", "TUE")
	require.NoError(t, err)
	require.Len(t, cells, 2)
	assert.Equal(t, "08:00", cells[0].StartTime)
	assert.Equal(t, "09:00", cells[1].StartTime)
}
