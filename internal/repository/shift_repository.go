package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sica-labs/sica-api/internal/models"
)

// ShiftRepository persists advisor-schedule cells, one row per occupied slot.
type ShiftRepository struct {
	db *sqlx.DB
}

// NewShiftRepository constructs a ShiftRepository.
func NewShiftRepository(db *sqlx.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

// List returns shifts matching the filter ordered by day and slot.
func (r *ShiftRepository) List(ctx context.Context, filter models.ShiftFilter) ([]models.Shift, error) {
	base := "SELECT id, booking_id, advisor_id, room, day_of_week, slot_label, metadata, created_at FROM advisor_shifts WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Room != "" {
		conditions = append(conditions, fmt.Sprintf("room = $%d", len(args)+1))
		args = append(args, filter.Room)
	}
	if filter.DayOfWeek != "" {
		conditions = append(conditions, fmt.Sprintf("day_of_week = $%d", len(args)+1))
		args = append(args, filter.DayOfWeek)
	}
	if filter.AdvisorID != "" {
		conditions = append(conditions, fmt.Sprintf("advisor_id = $%d", len(args)+1))
		args = append(args, filter.AdvisorID)
	}
	if filter.BookingID != "" {
		conditions = append(conditions, fmt.Sprintf("booking_id = $%d", len(args)+1))
		args = append(args, filter.BookingID)
	}

	query := base
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY day_of_week ASC, slot_label ASC"

	var shifts []models.Shift
	if err := r.db.SelectContext(ctx, &shifts, query, args...); err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	return shifts, nil
}

// FindByID loads a single shift cell.
func (r *ShiftRepository) FindByID(ctx context.Context, id string) (*models.Shift, error) {
	const query = `SELECT id, booking_id, advisor_id, room, day_of_week, slot_label, metadata, created_at FROM advisor_shifts WHERE id = $1`
	var shift models.Shift
	if err := r.db.GetContext(ctx, &shift, query, id); err != nil {
		return nil, err
	}
	return &shift, nil
}

// BulkCreate inserts all cells of one shift block within a transaction.
func (r *ShiftRepository) BulkCreate(ctx context.Context, shifts []models.Shift) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk create shifts: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	const query = `INSERT INTO advisor_shifts (id, booking_id, advisor_id, room, day_of_week, slot_label, metadata, created_at)
		VALUES (:id, :booking_id, :advisor_id, :room, :day_of_week, :slot_label, :metadata, :created_at)`
	for i := range shifts {
		payload := shifts[i]
		if payload.ID == "" {
			payload.ID = uuid.NewString()
		}
		if payload.CreatedAt.IsZero() {
			payload.CreatedAt = now
		}
		if _, err = tx.NamedExecContext(ctx, query, payload); err != nil {
			return fmt.Errorf("insert shift cell: %w", err)
		}
		shifts[i] = payload
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk create shifts: %w", err)
	}
	return nil
}

// DeleteByBookingID removes every cell of a shift block and returns the count.
func (r *ShiftRepository) DeleteByBookingID(ctx context.Context, bookingID string) (int64, error) {
	const query = `DELETE FROM advisor_shifts WHERE booking_id = $1`
	result, err := r.db.ExecContext(ctx, query, bookingID)
	if err != nil {
		return 0, fmt.Errorf("delete shift block: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete shift block rows: %w", err)
	}
	return affected, nil
}
