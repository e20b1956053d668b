package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/umeedai/umeed-api/internal/models"
	appErrors "github.com/umeedai/umeed-api/pkg/errors"
)

const pgUniqueViolation = "23505"

// ThresholdRepository persists risk threshold rules. It carries no business
// rules and no audit concerns; factor uniqueness is enforced by the unique
// constraint on the table, which also resolves races between concurrent
// creates for the same factor.
type ThresholdRepository struct {
	db *sqlx.DB
}

// NewThresholdRepository constructs the repository.
func NewThresholdRepository(db *sqlx.DB) *ThresholdRepository {
	return &ThresholdRepository{db: db}
}

// Create inserts a new threshold, assigning id and timestamps. A duplicate
// factor surfaces as a conflict error without mutating state.
func (r *ThresholdRepository) Create(ctx context.Context, threshold *models.RiskThreshold) error {
	if threshold.ID == "" {
		threshold.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	threshold.CreatedAt = now
	threshold.UpdatedAt = now

	const query = `INSERT INTO risk_thresholds (id, factor, operator, value, description, created_at, updated_at)
VALUES (:id, :factor, :operator, :value, :description, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, threshold); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("threshold for factor %q already exists", threshold.Factor))
		}
		return fmt.Errorf("create threshold: %w", err)
	}
	return nil
}

// FindByFactor fetches a single threshold by factor. A missing record
// surfaces as sql.ErrNoRows, not a repository error.
func (r *ThresholdRepository) FindByFactor(ctx context.Context, factor string) (*models.RiskThreshold, error) {
	const query = `SELECT id, factor, operator, value, description, created_at, updated_at
FROM risk_thresholds WHERE factor = $1`
	var threshold models.RiskThreshold
	if err := r.db.GetContext(ctx, &threshold, query, factor); err != nil {
		return nil, err
	}
	return &threshold, nil
}

// UpdateByFactor applies the supplied field changes to an existing
// threshold. The factor column is never touched and nothing is created when
// no record matches; the caller sees sql.ErrNoRows instead.
func (r *ThresholdRepository) UpdateByFactor(ctx context.Context, factor string, update models.ThresholdUpdate) (*models.RiskThreshold, error) {
	sets := []string{"updated_at = $2"}
	args := []interface{}{factor, time.Now().UTC()}

	if update.Operator != nil {
		args = append(args, *update.Operator)
		sets = append(sets, fmt.Sprintf("operator = $%d", len(args)))
	}
	if update.Value != nil {
		args = append(args, *update.Value)
		sets = append(sets, fmt.Sprintf("value = $%d", len(args)))
	}
	if update.Description != nil {
		args = append(args, *update.Description)
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)))
	}

	query := fmt.Sprintf(`UPDATE risk_thresholds SET %s WHERE factor = $1
RETURNING id, factor, operator, value, description, created_at, updated_at`, strings.Join(sets, ", "))

	var threshold models.RiskThreshold
	if err := r.db.GetContext(ctx, &threshold, query, args...); err != nil {
		return nil, err
	}
	return &threshold, nil
}

// List returns every configured threshold ordered by factor.
func (r *ThresholdRepository) List(ctx context.Context) ([]models.RiskThreshold, error) {
	const query = `SELECT id, factor, operator, value, description, created_at, updated_at
FROM risk_thresholds ORDER BY factor ASC`
	var thresholds []models.RiskThreshold
	if err := r.db.SelectContext(ctx, &thresholds, query); err != nil {
		return nil, fmt.Errorf("list thresholds: %w", err)
	}
	return thresholds, nil
}

// DeleteAll removes every threshold and reports how many were deleted.
func (r *ThresholdRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM risk_thresholds`)
	if err != nil {
		return 0, fmt.Errorf("delete thresholds: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted thresholds: %w", err)
	}
	return count, nil
}
