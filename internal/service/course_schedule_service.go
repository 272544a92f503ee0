package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/sica-labs/sica-api/internal/models"
	"github.com/sica-labs/sica-api/internal/schedule"
	appErrors "github.com/sica-labs/sica-api/pkg/errors"
)

type courseScheduleRepository interface {
	List(ctx context.Context, filter models.CourseScheduleFilter) ([]models.CourseSchedule, error)
	FindByID(ctx context.Context, id string) (*models.CourseSchedule, error)
	Create(ctx context.Context, block *models.CourseSchedule) error
	Delete(ctx context.Context, id string) error
	DeleteByRoomTerm(ctx context.Context, room, termID string) (int64, error)
}

// CreateCourseBlockRequest places one course into a contiguous run of slots
// repeated on the listed days.
type CreateCourseBlockRequest struct {
	TermID    string            `json:"term_id" validate:"required"`
	Course    string            `json:"course" validate:"required"`
	Room      string            `json:"room" validate:"required"`
	Days      []string          `json:"days" validate:"required,min=1,dive,required"`
	StartTime string            `json:"start_time" validate:"required"`
	EndTime   string            `json:"end_time" validate:"required"`
	Metadata  map[string]string `json:"metadata"`
}

// CourseScheduleService maintains the course grid: per-run storage validated
// against the same cell grid the advisor schedule uses.
type CourseScheduleService struct {
	repo      courseScheduleRepository
	rooms     []string
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseScheduleService constructs a CourseScheduleService.
func NewCourseScheduleService(repo courseScheduleRepository, rooms []string, validate *validator.Validate, logger *zap.Logger) *CourseScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseScheduleService{repo: repo, rooms: rooms, validator: validate, logger: logger}
}

// List returns stored course blocks for the filter.
func (s *CourseScheduleService) List(ctx context.Context, filter models.CourseScheduleFilter) ([]models.CourseSchedule, error) {
	blocks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list course schedules")
	}
	return blocks, nil
}

// Create places a new course block after checking every cell it spans is free.
func (s *CourseScheduleService) Create(ctx context.Context, req CreateCourseBlockRequest) (*models.CourseSchedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course schedule payload")
	}
	if err := s.ensureKnownRoom(req.Room); err != nil {
		return nil, err
	}

	days, err := parseDays(req.Days)
	if err != nil {
		return nil, err
	}
	run, err := parseRun(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.List(ctx, models.CourseScheduleFilter{TermID: req.TermID, Room: req.Room})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room schedule")
	}
	grid, err := buildCourseGrid(existing)
	if err != nil {
		return nil, err
	}

	block := &models.CourseSchedule{
		TermID:    req.TermID,
		Course:    strings.TrimSpace(req.Course),
		Room:      req.Room,
		Days:      daysToStrings(days),
		StartTime: schedule.FormatClock(run.Start),
		EndTime:   schedule.FormatClock(run.End),
	}
	block.Metadata, err = metadataToJSON(req.Metadata)
	if err != nil {
		return nil, err
	}

	booking := &schedule.Booking{OwnerID: block.Course, Metadata: req.Metadata}
	if err := grid.Place(blockCells(days, run), booking); err != nil {
		return nil, translateScheduleError(err, "failed to place course block")
	}

	if err := s.repo.Create(ctx, block); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store course block")
	}
	return block, nil
}

// Delete removes a course block. Blocks are never edited in place: the UI
// deletes and recreates.
func (s *CourseScheduleService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "course block not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course block")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course block")
	}
	return nil
}

// Clear wipes the whole grid for a room and term.
func (s *CourseScheduleService) Clear(ctx context.Context, room, termID string) (int64, error) {
	if err := s.ensureKnownRoom(room); err != nil {
		return 0, err
	}
	if termID == "" {
		return 0, appErrors.Clone(appErrors.ErrValidation, "term id is required")
	}
	removed, err := s.repo.DeleteByRoomTerm(ctx, room, termID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear course schedules")
	}
	s.logger.Info("course grid cleared", zap.String("room", room), zap.String("term_id", termID), zap.Int64("blocks", removed))
	return removed, nil
}

// WeekView renders the course grid as merged runs, optionally limited to one day.
func (s *CourseScheduleService) WeekView(ctx context.Context, room, termID, day string) ([]models.WeekCell, error) {
	if err := s.ensureKnownRoom(room); err != nil {
		return nil, err
	}
	days := schedule.Weekdays()
	if day != "" {
		parsed, ok := schedule.ParseWeekday(day)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown weekday: "+day)
		}
		days = []schedule.Weekday{parsed}
	}

	blocks, err := s.repo.List(ctx, models.CourseScheduleFilter{TermID: termID, Room: room})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room schedule")
	}
	grid, err := buildCourseGrid(blocks)
	if err != nil {
		return nil, err
	}

	var cellsView []models.WeekCell
	for _, d := range days {
		for _, run := range grid.MergeRuns(d) {
			merged := run.Slot()
			cellsView = append(cellsView, models.WeekCell{
				Day:       string(run.Day),
				StartTime: schedule.FormatClock(merged.Start),
				EndTime:   schedule.FormatClock(merged.End),
				SlotCount: run.Length,
				BookingID: run.Booking.ID,
				OwnerID:   run.Booking.OwnerID,
				Metadata:  run.Booking.Metadata,
			})
		}
	}
	return cellsView, nil
}

func (s *CourseScheduleService) ensureKnownRoom(room string) error {
	for _, known := range s.rooms {
		if strings.EqualFold(known, room) {
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrValidation, "unknown room: "+room)
}

func parseRun(startTime, endTime string) (schedule.Slot, error) {
	start, err := schedule.ParseClock(startTime)
	if err != nil {
		return schedule.Slot{}, translateScheduleError(err, "invalid start time")
	}
	end, err := schedule.ParseClock(endTime)
	if err != nil {
		return schedule.Slot{}, translateScheduleError(err, "invalid end time")
	}
	run, err := schedule.NewSlot(start, end)
	if err != nil {
		return schedule.Slot{}, translateScheduleError(err, "invalid time range")
	}
	return run, nil
}

func blockCells(days []schedule.Weekday, run schedule.Slot) []schedule.CellKey {
	var cells []schedule.CellKey
	for _, day := range days {
		for start := run.Start; start < run.End; start += schedule.SlotMinutes {
			cells = append(cells, schedule.CellKey{Day: day, Start: start})
		}
	}
	return cells
}

func daysToStrings(days []schedule.Weekday) pq.StringArray {
	out := make(pq.StringArray, 0, len(days))
	for _, day := range days {
		out = append(out, string(day))
	}
	return out
}

// buildCourseGrid expands stored per-run blocks back into grid cells. The
// booking id is the block row id so every cell of a run shares identity.
func buildCourseGrid(blocks []models.CourseSchedule) (*schedule.Grid, error) {
	grid := schedule.NewGrid()
	for i := range blocks {
		block := blocks[i]
		days := make([]schedule.Weekday, 0, len(block.Days))
		for _, raw := range block.Days {
			day, ok := schedule.ParseWeekday(raw)
			if !ok {
				return nil, appErrors.Clone(appErrors.ErrInternal, "stored course block has unknown weekday")
			}
			days = append(days, day)
		}
		start, err := schedule.ParseClock(block.StartTime)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "stored course block has invalid start time")
		}
		end, err := schedule.ParseClock(block.EndTime)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "stored course block has invalid end time")
		}
		run, err := schedule.NewSlot(start, end)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "stored course block has invalid range")
		}
		booking := &schedule.Booking{
			ID:       block.ID,
			OwnerID:  block.Course,
			Metadata: metadataFromJSON(block.Metadata),
		}
		if err := grid.Place(blockCells(days, run), booking); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "stored schedule is inconsistent")
		}
	}
	return grid, nil
}
