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

// CourseScheduleRepository persists course blocks, one row per contiguous run.
type CourseScheduleRepository struct {
	db *sqlx.DB
}

// NewCourseScheduleRepository constructs a CourseScheduleRepository.
func NewCourseScheduleRepository(db *sqlx.DB) *CourseScheduleRepository {
	return &CourseScheduleRepository{db: db}
}

// List returns course blocks matching the filter.
func (r *CourseScheduleRepository) List(ctx context.Context, filter models.CourseScheduleFilter) ([]models.CourseSchedule, error) {
	base := "SELECT id, term_id, course, room, days, start_time, end_time, metadata, created_at, updated_at FROM course_schedules WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.TermID != "" {
		conditions = append(conditions, fmt.Sprintf("term_id = $%d", len(args)+1))
		args = append(args, filter.TermID)
	}
	if filter.Room != "" {
		conditions = append(conditions, fmt.Sprintf("room = $%d", len(args)+1))
		args = append(args, filter.Room)
	}
	if filter.Course != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(course) = LOWER($%d)", len(args)+1))
		args = append(args, filter.Course)
	}

	query := base
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY start_time ASC"

	var blocks []models.CourseSchedule
	if err := r.db.SelectContext(ctx, &blocks, query, args...); err != nil {
		return nil, fmt.Errorf("list course schedules: %w", err)
	}
	return blocks, nil
}

// FindByID loads a course block by id.
func (r *CourseScheduleRepository) FindByID(ctx context.Context, id string) (*models.CourseSchedule, error) {
	const query = `SELECT id, term_id, course, room, days, start_time, end_time, metadata, created_at, updated_at FROM course_schedules WHERE id = $1`
	var block models.CourseSchedule
	if err := r.db.GetContext(ctx, &block, query, id); err != nil {
		return nil, err
	}
	return &block, nil
}

// Create stores a new course block.
func (r *CourseScheduleRepository) Create(ctx context.Context, block *models.CourseSchedule) error {
	if block.ID == "" {
		block.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if block.CreatedAt.IsZero() {
		block.CreatedAt = now
	}
	block.UpdatedAt = now

	const query = `INSERT INTO course_schedules (id, term_id, course, room, days, start_time, end_time, metadata, created_at, updated_at)
		VALUES (:id, :term_id, :course, :room, :days, :start_time, :end_time, :metadata, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, block); err != nil {
		return fmt.Errorf("create course schedule: %w", err)
	}
	return nil
}

// Delete removes a course block. Blocks are never partially edited: the UI
// recreates them wholesale.
func (r *CourseScheduleRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM course_schedules WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete course schedule: %w", err)
	}
	return nil
}

// DeleteByRoomTerm clears a whole grid for a room and term.
func (r *CourseScheduleRepository) DeleteByRoomTerm(ctx context.Context, room, termID string) (int64, error) {
	const query = `DELETE FROM course_schedules WHERE room = $1 AND term_id = $2`
	result, err := r.db.ExecContext(ctx, query, room, termID)
	if err != nil {
		return 0, fmt.Errorf("clear course schedules: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear course schedules rows: %w", err)
	}
	return affected, nil
}
