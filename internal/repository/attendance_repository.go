package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sica-labs/sica-api/internal/models"
)

// AttendanceRepository persists check-in/check-out events.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Create stores a new attendance event.
func (r *AttendanceRepository) Create(ctx context.Context, event *models.AttendanceEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if event.OccurredAt.IsZero() {
		event.OccurredAt = now
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}

	const query = `INSERT INTO attendance_events (id, account_id, event_type, occurred_at, created_at)
		VALUES (:id, :account_id, :event_type, :occurred_at, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create attendance event: %w", err)
	}
	return nil
}

// LatestOnDate returns the most recent event for the account within the
// calendar day containing date, or nil when the account has no event that day.
// Date matching is a timestamp range, not a string comparison.
func (r *AttendanceRepository) LatestOnDate(ctx context.Context, accountID string, date time.Time) (*models.AttendanceEvent, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	const query = `SELECT id, account_id, event_type, occurred_at, created_at FROM attendance_events
		WHERE account_id = $1 AND occurred_at >= $2 AND occurred_at < $3
		ORDER BY occurred_at DESC LIMIT 1`
	var event models.AttendanceEvent
	if err := r.db.GetContext(ctx, &event, query, accountID, dayStart, dayEnd); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("latest attendance event: %w", err)
	}
	return &event, nil
}

// List returns attendance history for an account, newest first.
func (r *AttendanceRepository) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceEvent, int, error) {
	base := "FROM attendance_events WHERE account_id = $1"
	args := []interface{}{filter.AccountID}

	if filter.Date != nil {
		dayStart := time.Date(filter.Date.Year(), filter.Date.Month(), filter.Date.Day(), 0, 0, 0, 0, filter.Date.Location())
		base += fmt.Sprintf(" AND occurred_at >= $%d AND occurred_at < $%d", len(args)+1, len(args)+2)
		args = append(args, dayStart, dayStart.Add(24*time.Hour))
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT id, account_id, event_type, occurred_at, created_at %s ORDER BY occurred_at DESC LIMIT %d OFFSET %d", base, size, offset)
	var events []models.AttendanceEvent
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list attendance events: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count attendance events: %w", err)
	}

	return events, total, nil
}
