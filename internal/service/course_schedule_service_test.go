package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sica-labs/sica-api/internal/models"
	appErrors "github.com/sica-labs/sica-api/pkg/errors"
)

type mockCourseScheduleRepo struct {
	rows []models.CourseSchedule
}

func (m *mockCourseScheduleRepo) List(ctx context.Context, filter models.CourseScheduleFilter) ([]models.CourseSchedule, error) {
	var out []models.CourseSchedule
	for _, row := range m.rows {
		if filter.TermID != "" && row.TermID != filter.TermID {
			continue
		}
		if filter.Room != "" && row.Room != filter.Room {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (m *mockCourseScheduleRepo) FindByID(ctx context.Context, id string) (*models.CourseSchedule, error) {
	for _, row := range m.rows {
		if row.ID == id {
			cp := row
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockCourseScheduleRepo) Create(ctx context.Context, block *models.CourseSchedule) error {
	if block.ID == "" {
		block.ID = fmt.Sprintf("blk-%d", len(m.rows)+1)
	}
	m.rows = append(m.rows, *block)
	return nil
}

func (m *mockCourseScheduleRepo) Delete(ctx context.Context, id string) error {
	var kept []models.CourseSchedule
	for _, row := range m.rows {
		if row.ID != id {
			kept = append(kept, row)
		}
	}
	m.rows = kept
	return nil
}

func (m *mockCourseScheduleRepo) DeleteByRoomTerm(ctx context.Context, room, termID string) (int64, error) {
	var kept []models.CourseSchedule
	var removed int64
	for _, row := range m.rows {
		if row.Room == room && row.TermID == termID {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	m.rows = kept
	return removed, nil
}

func storedCourseBlock(id, termID, course, room string, days []string, start, end string) models.CourseSchedule {
	return models.CourseSchedule{
		ID: id, TermID: termID, Course: course, Room: room,
		Days: pq.StringArray(days), StartTime: start, EndTime: end,
	}
}

func TestCourseScheduleCreate(t *testing.T) {
	repo := &mockCourseScheduleRepo{}
	service := NewCourseScheduleService(repo, testRooms, validator.New(), zap.NewNop())

	block, err := service.Create(context.Background(), CreateCourseBlockRequest{
		TermID:    "2026-1",
		Course:    "Numerical Methods",
		Room:      "SC1",
		Days:      []string{"MON", "WED"},
		StartTime: "08:00",
		EndTime:   "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, pq.StringArray{"MON", "WED"}, block.Days)
	assert.Equal(t, "08:00", block.StartTime)
	assert.Equal(t, "10:00", block.EndTime)
	assert.Len(t, repo.rows, 1)
}

func TestCourseScheduleCreateConflict(t *testing.T) {
	repo := &mockCourseScheduleRepo{rows: []models.CourseSchedule{
		storedCourseBlock("blk-1", "2026-1", "Databases", "SC1", []string{"MON"}, "09:00", "11:00"),
	}}
	service := NewCourseScheduleService(repo, testRooms, validator.New(), zap.NewNop())

	_, err := service.Create(context.Background(), CreateCourseBlockRequest{
		TermID:    "2026-1",
		Course:    "Numerical Methods",
		Room:      "SC1",
		Days:      []string{"MON"},
		StartTime: "10:30",
		EndTime:   "12:00",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Len(t, repo.rows, 1)
}

func TestCourseScheduleCreateAdjacentBlocksDoNotConflict(t *testing.T) {
	repo := &mockCourseScheduleRepo{rows: []models.CourseSchedule{
		storedCourseBlock("blk-1", "2026-1", "Databases", "SC1", []string{"MON"}, "09:00", "11:00"),
	}}
	service := NewCourseScheduleService(repo, testRooms, validator.New(), zap.NewNop())

	_, err := service.Create(context.Background(), CreateCourseBlockRequest{
		TermID:    "2026-1",
		Course:    "Numerical Methods",
		Room:      "SC1",
		Days:      []string{"MON"},
		StartTime: "11:00",
		EndTime:   "12:00",
	})
	require.NoError(t, err)
}

func TestCourseScheduleCreateOtherTermDoesNotConflict(t *testing.T) {
	repo := &mockCourseScheduleRepo{rows: []models.CourseSchedule{
		storedCourseBlock("blk-1", "2025-2", "Databases", "SC1", []string{"MON"}, "09:00", "11:00"),
	}}
	service := NewCourseScheduleService(repo, testRooms, validator.New(), zap.NewNop())

	_, err := service.Create(context.Background(), CreateCourseBlockRequest{
		TermID:    "2026-1",
		Course:    "Numerical Methods",
		Room:      "SC1",
		Days:      []string{"MON"},
		StartTime: "09:00",
		EndTime:   "10:00",
	})
	require.NoError(t, err)
}

func TestCourseScheduleCreateRejectsInvertedRange(t *testing.T) {
	repo := &mockCourseScheduleRepo{}
	service := NewCourseScheduleService(repo, testRooms, validator.New(), zap.NewNop())

	_, err := service.Create(context.Background(), CreateCourseBlockRequest{
		TermID:    "2026-1",
		Course:    "Numerical Methods",
		Room:      "SC1",
		Days:      []string{"MON"},
		StartTime: "11:00",
		EndTime:   "11:00",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidRange.Code, appErrors.FromError(err).Code)
}

func TestCourseScheduleDelete(t *testing.T) {
	repo := &mockCourseScheduleRepo{rows: []models.CourseSchedule{
		storedCourseBlock("blk-1", "2026-1", "Databases", "SC1", []string{"MON"}, "09:00", "11:00"),
	}}
	service := NewCourseScheduleService(repo, testRooms, validator.New(), zap.NewNop())

	require.NoError(t, service.Delete(context.Background(), "blk-1"))
	assert.Empty(t, repo.rows)

	err := service.Delete(context.Background(), "blk-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCourseScheduleClear(t *testing.T) {
	repo := &mockCourseScheduleRepo{rows: []models.CourseSchedule{
		storedCourseBlock("blk-1", "2026-1", "Databases", "SC1", []string{"MON"}, "09:00", "11:00"),
		storedCourseBlock("blk-2", "2026-1", "Compilers", "SC1", []string{"TUE"}, "09:00", "11:00"),
		storedCourseBlock("blk-3", "2026-1", "Compilers", "SC2", []string{"TUE"}, "09:00", "11:00"),
	}}
	service := NewCourseScheduleService(repo, testRooms, validator.New(), zap.NewNop())

	removed, err := service.Clear(context.Background(), "SC1", "2026-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
	require.Len(t, repo.rows, 1)
	assert.Equal(t, "SC2", repo.rows[0].Room)
}

func TestCourseScheduleWeekView(t *testing.T) {
	repo := &mockCourseScheduleRepo{rows: []models.CourseSchedule{
		storedCourseBlock("blk-1", "2026-1", "Databases", "SC1", []string{"MON", "WED"}, "09:00", "11:00"),
	}}
	service := NewCourseScheduleService(repo, testRooms, validator.New(), zap.NewNop())

	cells, err := service.WeekView(context.Background(), "SC1", "2026-1", "")
	require.NoError(t, err)
	require.Len(t, cells, 2)
	assert.Equal(t, "MON", cells[0].Day)
	assert.Equal(t, "09:00", cells[0].StartTime)
	assert.Equal(t, "11:00", cells[0].EndTime)
	assert.Equal(t, 4, cells[0].SlotCount)
	assert.Equal(t, "Databases", cells[0].OwnerID)
	assert.Equal(t, "WED", cells[1].Day)
}
