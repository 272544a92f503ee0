package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sica-labs/sica-api/internal/models"
	"github.com/sica-labs/sica-api/internal/schedule"
	appErrors "github.com/sica-labs/sica-api/pkg/errors"
)

type shiftRepository interface {
	List(ctx context.Context, filter models.ShiftFilter) ([]models.Shift, error)
	FindByID(ctx context.Context, id string) (*models.Shift, error)
	BulkCreate(ctx context.Context, shifts []models.Shift) error
	DeleteByBookingID(ctx context.Context, bookingID string) (int64, error)
}

// CreateShiftBlockRequest places one advisor into a set of grid cells. Days
// and slots form a cross product: every listed slot on every listed day.
type CreateShiftBlockRequest struct {
	AdvisorID string            `json:"advisor_id" validate:"required"`
	Room      string            `json:"room" validate:"required"`
	Days      []string          `json:"days" validate:"required,min=1,dive,required"`
	Slots     []string          `json:"slots" validate:"required,min=1,dive,required"`
	Metadata  map[string]string `json:"metadata"`
}

// ShiftBlockResult reports the persisted cells of a placement.
type ShiftBlockResult struct {
	BookingID string         `json:"booking_id"`
	Cells     []models.Shift `json:"cells"`
}

// ShiftService maintains the advisor schedule grid: per-cell storage with
// grid-level conflict checking, whole-block removal and merged week views.
type ShiftService struct {
	repo      shiftRepository
	rooms     []string
	validator *validator.Validate
	logger    *zap.Logger
}

// NewShiftService constructs a ShiftService. rooms is the set of lab rooms
// accepted for placements.
func NewShiftService(repo shiftRepository, rooms []string, validate *validator.Validate, logger *zap.Logger) *ShiftService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShiftService{repo: repo, rooms: rooms, validator: validate, logger: logger}
}

// List returns stored shift cells for the filter.
func (s *ShiftService) List(ctx context.Context, filter models.ShiftFilter) ([]models.Shift, error) {
	if filter.DayOfWeek != "" {
		day, ok := schedule.ParseWeekday(filter.DayOfWeek)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown weekday: "+filter.DayOfWeek)
		}
		filter.DayOfWeek = string(day)
	}
	shifts, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list shifts")
	}
	return shifts, nil
}

// CreateBlock places a new shift block. The placement is all-or-nothing: when
// any requested cell is occupied the whole request is rejected and nothing is
// stored.
func (s *ShiftService) CreateBlock(ctx context.Context, req CreateShiftBlockRequest) (*ShiftBlockResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid shift payload")
	}
	if err := s.ensureKnownRoom(req.Room); err != nil {
		return nil, err
	}

	days, err := parseDays(req.Days)
	if err != nil {
		return nil, err
	}
	slots := make([]schedule.Slot, 0, len(req.Slots))
	for _, label := range req.Slots {
		start, err := schedule.ParseClock(label)
		if err != nil {
			return nil, translateScheduleError(err, "invalid slot")
		}
		slot, ok := schedule.SlotAt(start)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrInvalidRange, "no slot starts at "+label)
		}
		slots = append(slots, slot)
	}

	existing, err := s.repo.List(ctx, models.ShiftFilter{Room: req.Room})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room schedule")
	}
	grid, err := buildShiftGrid(existing)
	if err != nil {
		return nil, err
	}

	booking := &schedule.Booking{ID: uuid.NewString(), OwnerID: req.AdvisorID, Metadata: req.Metadata}
	cells := make([]schedule.CellKey, 0, len(days)*len(slots))
	for _, day := range days {
		for _, slot := range slots {
			cells = append(cells, schedule.CellKey{Day: day, Start: slot.Start})
		}
	}
	if err := grid.Place(cells, booking); err != nil {
		return nil, translateScheduleError(err, "failed to place shift block")
	}

	metadata, err := metadataToJSON(req.Metadata)
	if err != nil {
		return nil, err
	}
	rows := make([]models.Shift, 0, len(cells))
	for _, cell := range cells {
		slot, _ := schedule.SlotAt(cell.Start)
		rows = append(rows, models.Shift{
			BookingID: booking.ID,
			AdvisorID: req.AdvisorID,
			Room:      req.Room,
			DayOfWeek: string(cell.Day),
			SlotLabel: slot.Label(),
			Metadata:  metadata,
		})
	}
	if err := s.repo.BulkCreate(ctx, rows); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store shift block")
	}

	return &ShiftBlockResult{BookingID: booking.ID, Cells: rows}, nil
}

// DeleteBlock removes the whole block occupying the given cell, identified by
// any of its cell ids. It returns the anchor cell so callers know which room
// changed.
func (s *ShiftService) DeleteBlock(ctx context.Context, cellID string) (*models.Shift, error) {
	cell, err := s.repo.FindByID(ctx, cellID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "shift cell not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shift cell")
	}

	removed, err := s.repo.DeleteByBookingID(ctx, cell.BookingID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete shift block")
	}
	s.logger.Info("shift block removed",
		zap.String("booking_id", cell.BookingID),
		zap.String("room", cell.Room),
		zap.Int64("cells", removed),
	)
	return cell, nil
}

// WeekView renders the room's advisor grid as merged runs, optionally limited
// to one day.
func (s *ShiftService) WeekView(ctx context.Context, room, day string) ([]models.WeekCell, error) {
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

	shifts, err := s.repo.List(ctx, models.ShiftFilter{Room: room})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room schedule")
	}
	grid, err := buildShiftGrid(shifts)
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

func (s *ShiftService) ensureKnownRoom(room string) error {
	for _, known := range s.rooms {
		if strings.EqualFold(known, room) {
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrValidation, "unknown room: "+room)
}

// buildShiftGrid reconstructs the in-memory grid from stored cells. Cells
// sharing a booking id reference one booking value so removals and merges see
// the block as a unit.
func buildShiftGrid(shifts []models.Shift) (*schedule.Grid, error) {
	grid := schedule.NewGrid()
	bookings := make(map[string]*schedule.Booking)
	for _, shift := range shifts {
		booking, ok := bookings[shift.BookingID]
		if !ok {
			booking = &schedule.Booking{
				ID:       shift.BookingID,
				OwnerID:  shift.AdvisorID,
				Metadata: metadataFromJSON(shift.Metadata),
			}
			bookings[shift.BookingID] = booking
		}
		day, ok := schedule.ParseWeekday(shift.DayOfWeek)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrInternal, "stored shift has unknown weekday")
		}
		slot, err := schedule.ParseSlot(shift.SlotLabel)
		if err != nil {
			return nil, translateScheduleError(err, "stored shift has invalid slot")
		}
		cell := schedule.CellKey{Day: day, Start: slot.Start}
		if err := grid.Place([]schedule.CellKey{cell}, booking); err != nil {
			// A conflict here means the store itself is double-booked.
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "stored schedule is inconsistent")
		}
	}
	return grid, nil
}
