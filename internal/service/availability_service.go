package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sica-labs/sica-api/internal/models"
	"github.com/sica-labs/sica-api/internal/schedule"
	appErrors "github.com/sica-labs/sica-api/pkg/errors"
)

type availabilityShiftReader interface {
	List(ctx context.Context, filter models.ShiftFilter) ([]models.Shift, error)
}

type advisorReader interface {
	FindByIDs(ctx context.Context, ids []string) ([]models.Advisor, error)
}

type attendanceReader interface {
	LatestOnDate(ctx context.Context, accountID string, date time.Time) (*models.AttendanceEvent, error)
}

// AvailabilityService answers "who is on shift" queries, enriched with live
// presence from the attendance log. Results are cached per room+day+window.
type AvailabilityService struct {
	shifts     availabilityShiftReader
	advisors   advisorReader
	attendance attendanceReader
	cache      *CacheService
	logger     *zap.Logger
	now        func() time.Time
}

// NewAvailabilityService constructs an AvailabilityService. The cache may be nil.
func NewAvailabilityService(shifts availabilityShiftReader, advisors advisorReader, attendance attendanceReader, cache *CacheService, logger *zap.Logger) *AvailabilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{
		shifts:     shifts,
		advisors:   advisors,
		attendance: attendance,
		cache:      cache,
		logger:     logger,
		now:        time.Now,
	}
}

// FindBySlot lists advisors whose stored shift covers the queried slot on the
// given day, one entry per advisor.
func (s *AvailabilityService) FindBySlot(ctx context.Context, room, day, slotLabel string) ([]models.AvailabilityEntry, error) {
	weekday, ok := schedule.ParseWeekday(day)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown weekday: "+day)
	}
	queried, err := schedule.ParseSlot(slotLabel)
	if err != nil {
		return nil, translateScheduleError(err, "invalid slot")
	}

	cacheKey := fmt.Sprintf("availability:%s:%s:slot:%s", room, weekday, queried.Label())
	if cached, hit := s.fromCache(ctx, cacheKey); hit {
		return cached, nil
	}

	shifts, stored, err := s.loadShifts(ctx, room, weekday)
	if err != nil {
		return nil, err
	}
	entries, err := s.collect(ctx, shifts, schedule.MatchSlot(stored, queried))
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, cacheKey, entries)
	return entries, nil
}

// FindByRange lists advisors whose stored shift overlaps the half-open window
// [from, to) on the given day. A shift ending exactly at from does not match.
func (s *AvailabilityService) FindByRange(ctx context.Context, room, day, from, to string) ([]models.AvailabilityEntry, error) {
	weekday, ok := schedule.ParseWeekday(day)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown weekday: "+day)
	}
	fromMinute, err := schedule.ParseClock(from)
	if err != nil {
		return nil, translateScheduleError(err, "invalid range start")
	}
	toMinute, err := schedule.ParseClock(to)
	if err != nil {
		return nil, translateScheduleError(err, "invalid range end")
	}

	cacheKey := fmt.Sprintf("availability:%s:%s:range:%s-%s", room, weekday, from, to)
	if cached, hit := s.fromCache(ctx, cacheKey); hit {
		return cached, nil
	}

	shifts, stored, err := s.loadShifts(ctx, room, weekday)
	if err != nil {
		return nil, err
	}
	matched, err := schedule.MatchRange(stored, fromMinute, toMinute)
	if err != nil {
		return nil, translateScheduleError(err, "invalid time range")
	}
	entries, err := s.collect(ctx, shifts, matched)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, cacheKey, entries)
	return entries, nil
}

// InvalidateRoom drops every cached availability answer for a room. Called
// after the shift grid for that room changes.
func (s *AvailabilityService) InvalidateRoom(ctx context.Context, room string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, fmt.Sprintf("availability:%s:*", room)); err != nil {
		s.logger.Warn("availability cache invalidation failed", zap.String("room", room), zap.Error(err))
	}
}

func (s *AvailabilityService) loadShifts(ctx context.Context, room string, day schedule.Weekday) ([]models.Shift, []schedule.Slot, error) {
	shifts, err := s.shifts.List(ctx, models.ShiftFilter{Room: room, DayOfWeek: string(day)})
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shifts")
	}
	stored := make([]schedule.Slot, 0, len(shifts))
	for _, shift := range shifts {
		slot, err := schedule.ParseSlot(shift.SlotLabel)
		if err != nil {
			return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "stored shift has invalid slot")
		}
		stored = append(stored, slot)
	}
	return shifts, stored, nil
}

// collect turns matched shift indexes into availability entries, one per
// advisor, keeping the first matched slot for each.
func (s *AvailabilityService) collect(ctx context.Context, shifts []models.Shift, matched []int) ([]models.AvailabilityEntry, error) {
	entries := make([]models.AvailabilityEntry, 0, len(matched))
	seen := make(map[string]bool, len(matched))
	var advisorIDs []string
	for _, i := range matched {
		shift := shifts[i]
		if seen[shift.AdvisorID] {
			continue
		}
		seen[shift.AdvisorID] = true
		advisorIDs = append(advisorIDs, shift.AdvisorID)
		entries = append(entries, models.AvailabilityEntry{
			AdvisorID: shift.AdvisorID,
			Room:      shift.Room,
			DayOfWeek: shift.DayOfWeek,
			SlotLabel: shift.SlotLabel,
			Metadata:  metadataFromJSON(shift.Metadata),
		})
	}
	if len(entries) == 0 {
		return entries, nil
	}

	advisors, err := s.advisors.FindByIDs(ctx, advisorIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load advisors")
	}
	byID := make(map[string]models.Advisor, len(advisors))
	for _, advisor := range advisors {
		byID[advisor.ID] = advisor
	}

	today := s.today()
	for i := range entries {
		advisor, ok := byID[entries[i].AdvisorID]
		if !ok {
			continue
		}
		entries[i].AdvisorName = advisor.FullName
		present, err := s.isPresent(ctx, advisor.AccountID, today)
		if err != nil {
			return nil, err
		}
		entries[i].Present = present
	}
	return entries, nil
}

// isPresent reports whether the account's latest attendance event today is a
// check-in. No event at all means absent.
func (s *AvailabilityService) isPresent(ctx context.Context, accountID string, today time.Time) (bool, error) {
	if strings.TrimSpace(accountID) == "" {
		return false, nil
	}
	event, err := s.attendance.LatestOnDate(ctx, accountID, today)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}
	return event != nil && event.Type == models.AttendanceCheckIn, nil
}

func (s *AvailabilityService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (s *AvailabilityService) fromCache(ctx context.Context, key string) ([]models.AvailabilityEntry, bool) {
	if s.cache == nil {
		return nil, false
	}
	var entries []models.AvailabilityEntry
	hit, err := s.cache.Get(ctx, key, &entries)
	if err != nil || !hit {
		return nil, false
	}
	return entries, true
}

func (s *AvailabilityService) toCache(ctx context.Context, key string, entries []models.AvailabilityEntry) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, entries, 0); err != nil {
		s.logger.Warn("availability cache write failed", zap.String("key", key), zap.Error(err))
	}
}
