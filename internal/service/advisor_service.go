package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sica-labs/sica-api/internal/models"
	appErrors "github.com/sica-labs/sica-api/pkg/errors"
)

type advisorRepository interface {
	List(ctx context.Context, filter models.AdvisorFilter) ([]models.Advisor, int, error)
	FindByID(ctx context.Context, id string) (*models.Advisor, error)
	ExistsByAccountID(ctx context.Context, accountID, excludeID string) (bool, error)
	Create(ctx context.Context, advisor *models.Advisor) error
	Update(ctx context.Context, advisor *models.Advisor) error
	Deactivate(ctx context.Context, id string) error
}

// CreateAdvisorRequest represents payload for registering advisors.
type CreateAdvisorRequest struct {
	AccountID string  `json:"account_id" validate:"required,max=50"`
	Email     string  `json:"email" validate:"required,email"`
	FullName  string  `json:"full_name" validate:"required"`
	Career    *string `json:"career" validate:"omitempty,max=200"`
	Phone     *string `json:"phone" validate:"omitempty,max=50"`
}

// UpdateAdvisorRequest represents payload for updating advisors.
type UpdateAdvisorRequest struct {
	AccountID string  `json:"account_id" validate:"required,max=50"`
	Email     string  `json:"email" validate:"required,email"`
	FullName  string  `json:"full_name" validate:"required"`
	Career    *string `json:"career" validate:"omitempty,max=200"`
	Phone     *string `json:"phone" validate:"omitempty,max=50"`
	Active    *bool   `json:"active"`
}

// AdvisorService orchestrates advisor roster operations.
type AdvisorService struct {
	repo      advisorRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAdvisorService constructs an AdvisorService.
func NewAdvisorService(repo advisorRepository, validate *validator.Validate, logger *zap.Logger) *AdvisorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdvisorService{repo: repo, validator: validate, logger: logger}
}

// List returns advisors plus pagination data.
func (s *AdvisorService) List(ctx context.Context, filter models.AdvisorFilter) ([]models.Advisor, *models.Pagination, error) {
	advisors, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list advisors")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return advisors, pagination, nil
}

// Get returns an advisor by id.
func (s *AdvisorService) Get(ctx context.Context, id string) (*models.Advisor, error) {
	advisor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "advisor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load advisor")
	}
	return advisor, nil
}

// Create registers a new advisor record.
func (s *AdvisorService) Create(ctx context.Context, req CreateAdvisorRequest) (*models.Advisor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid advisor payload")
	}
	if err := s.ensureUniqueAccount(ctx, req.AccountID, ""); err != nil {
		return nil, err
	}

	advisor := &models.Advisor{
		AccountID: strings.TrimSpace(req.AccountID),
		Email:     strings.TrimSpace(req.Email),
		FullName:  strings.TrimSpace(req.FullName),
		Active:    true,
	}
	advisor.Career = normalizeOptional(req.Career)
	advisor.Phone = normalizeOptional(req.Phone)

	if err := s.repo.Create(ctx, advisor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create advisor")
	}
	return advisor, nil
}

// Update modifies an existing advisor.
func (s *AdvisorService) Update(ctx context.Context, id string, req UpdateAdvisorRequest) (*models.Advisor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid advisor payload")
	}

	advisor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "advisor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load advisor")
	}

	if err := s.ensureUniqueAccount(ctx, req.AccountID, id); err != nil {
		return nil, err
	}

	advisor.AccountID = strings.TrimSpace(req.AccountID)
	advisor.Email = strings.TrimSpace(req.Email)
	advisor.FullName = strings.TrimSpace(req.FullName)
	advisor.Career = normalizeOptional(req.Career)
	advisor.Phone = normalizeOptional(req.Phone)
	if req.Active != nil {
		advisor.Active = *req.Active
	}

	if err := s.repo.Update(ctx, advisor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update advisor")
	}
	return advisor, nil
}

// Deactivate marks an advisor inactive.
func (s *AdvisorService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "advisor not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load advisor")
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate advisor")
	}
	return nil
}

func (s *AdvisorService) ensureUniqueAccount(ctx context.Context, accountID, excludeID string) error {
	exists, err := s.repo.ExistsByAccountID(ctx, strings.TrimSpace(accountID), excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check account uniqueness")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "account id already used")
	}
	return nil
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
