package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sica-labs/sica-api/internal/models"
	appErrors "github.com/sica-labs/sica-api/pkg/errors"
)

type attendanceRepository interface {
	Create(ctx context.Context, event *models.AttendanceEvent) error
	LatestOnDate(ctx context.Context, accountID string, date time.Time) (*models.AttendanceEvent, error)
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceEvent, int, error)
}

// AttendanceService records check-in/check-out events and serves history.
type AttendanceService struct {
	repo      attendanceRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(repo attendanceRepository, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, validator: validate, logger: logger, now: time.Now}
}

// CheckIn records a check-in for the account. Checking in twice on the same
// day without a check-out in between is a conflict.
func (s *AttendanceService) CheckIn(ctx context.Context, accountID string) (*models.AttendanceEvent, error) {
	return s.record(ctx, accountID, models.AttendanceCheckIn)
}

// CheckOut records a check-out. It requires an open check-in on the same day.
func (s *AttendanceService) CheckOut(ctx context.Context, accountID string) (*models.AttendanceEvent, error) {
	return s.record(ctx, accountID, models.AttendanceCheckOut)
}

func (s *AttendanceService) record(ctx context.Context, accountID string, eventType models.AttendanceEventType) (*models.AttendanceEvent, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "account id is required")
	}

	now := s.now()
	latest, err := s.repo.LatestOnDate(ctx, accountID, now)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}
	switch eventType {
	case models.AttendanceCheckIn:
		if latest != nil && latest.Type == models.AttendanceCheckIn {
			return nil, appErrors.Clone(appErrors.ErrConflict, "already checked in")
		}
	case models.AttendanceCheckOut:
		if latest == nil || latest.Type != models.AttendanceCheckIn {
			return nil, appErrors.Clone(appErrors.ErrConflict, "no open check-in")
		}
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown attendance event type")
	}

	event := &models.AttendanceEvent{
		AccountID:  accountID,
		Type:       eventType,
		OccurredAt: now,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store attendance event")
	}
	s.logger.Info("attendance recorded",
		zap.String("account_id", accountID),
		zap.String("event_type", string(eventType)))
	return event, nil
}

// History lists attendance events for an account, newest first.
func (s *AttendanceService) History(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceEvent, int, error) {
	if strings.TrimSpace(filter.AccountID) == "" {
		return nil, 0, appErrors.Clone(appErrors.ErrValidation, "account id is required")
	}
	events, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance events")
	}
	return events, total, nil
}
