package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sica-labs/sica-api/internal/models"
)

// AdvisorRepository manages persistence for advisors.
type AdvisorRepository struct {
	db *sqlx.DB
}

// NewAdvisorRepository constructs an AdvisorRepository.
func NewAdvisorRepository(db *sqlx.DB) *AdvisorRepository {
	return &AdvisorRepository{db: db}
}

// List returns advisors matching filters along with total count.
func (r *AdvisorRepository) List(ctx context.Context, filter models.AdvisorFilter) ([]models.Advisor, int, error) {
	base := "FROM advisors WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		conditions = append(conditions, fmt.Sprintf("(LOWER(full_name) LIKE $%d OR LOWER(email) LIKE $%d OR LOWER(account_id) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, search)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	allowedSorts := map[string]string{
		"full_name":  "full_name",
		"email":      "email",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "created_at"
	}

	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
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

	query := fmt.Sprintf("SELECT id, account_id, email, full_name, career, phone, active, created_at, updated_at %s ORDER BY %s %s LIMIT %d OFFSET %d", base, column, order, size, offset)
	var advisors []models.Advisor
	if err := r.db.SelectContext(ctx, &advisors, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list advisors: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count advisors: %w", err)
	}

	return advisors, total, nil
}

// FindByID fetches an advisor by ID.
func (r *AdvisorRepository) FindByID(ctx context.Context, id string) (*models.Advisor, error) {
	const query = `SELECT id, account_id, email, full_name, career, phone, active, created_at, updated_at FROM advisors WHERE id = $1`
	var advisor models.Advisor
	if err := r.db.GetContext(ctx, &advisor, query, id); err != nil {
		return nil, err
	}
	return &advisor, nil
}

// FindByIDs fetches several advisors at once.
func (r *AdvisorRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Advisor, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT id, account_id, email, full_name, career, phone, active, created_at, updated_at FROM advisors WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("build advisor ids query: %w", err)
	}
	query = r.db.Rebind(query)
	var advisors []models.Advisor
	if err := r.db.SelectContext(ctx, &advisors, query, args...); err != nil {
		return nil, fmt.Errorf("find advisors by ids: %w", err)
	}
	return advisors, nil
}

// ExistsByAccountID checks if another advisor uses the same account id.
func (r *AdvisorRepository) ExistsByAccountID(ctx context.Context, accountID string, excludeID string) (bool, error) {
	query := "SELECT 1 FROM advisors WHERE account_id = $1"
	args := []interface{}{accountID}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check advisor account: %w", err)
	}
	return true, nil
}

// Create inserts a new advisor record.
func (r *AdvisorRepository) Create(ctx context.Context, advisor *models.Advisor) error {
	if advisor.ID == "" {
		advisor.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if advisor.CreatedAt.IsZero() {
		advisor.CreatedAt = now
	}
	advisor.UpdatedAt = now

	const query = `INSERT INTO advisors (id, account_id, email, full_name, career, phone, active, created_at, updated_at)
		VALUES (:id, :account_id, :email, :full_name, :career, :phone, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, advisor); err != nil {
		return fmt.Errorf("create advisor: %w", err)
	}
	return nil
}

// Update modifies an existing advisor record.
func (r *AdvisorRepository) Update(ctx context.Context, advisor *models.Advisor) error {
	advisor.UpdatedAt = time.Now().UTC()
	const query = `UPDATE advisors SET account_id = :account_id, email = :email, full_name = :full_name, career = :career, phone = :phone, active = :active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, advisor); err != nil {
		return fmt.Errorf("update advisor: %w", err)
	}
	return nil
}

// Deactivate sets an advisor's active flag to false.
func (r *AdvisorRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE advisors SET active = FALSE, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate advisor: %w", err)
	}
	return nil
}
