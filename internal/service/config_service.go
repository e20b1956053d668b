package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/umeedai/umeed-api/internal/dto"
	"github.com/umeedai/umeed-api/internal/models"
	"github.com/umeedai/umeed-api/pkg/audit"
	appErrors "github.com/umeedai/umeed-api/pkg/errors"
	"github.com/umeedai/umeed-api/pkg/export"
)

const thresholdListCacheKey = "thresholds:all"

type thresholdRepository interface {
	Create(ctx context.Context, threshold *models.RiskThreshold) error
	FindByFactor(ctx context.Context, factor string) (*models.RiskThreshold, error)
	UpdateByFactor(ctx context.Context, factor string, update models.ThresholdUpdate) (*models.RiskThreshold, error)
	List(ctx context.Context) ([]models.RiskThreshold, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type thresholdCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ConfigServiceConfig tunes runtime behaviour.
type ConfigServiceConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// ConfigService orchestrates the risk threshold store. It owns the decision
// to persist and to audit: an audit entry is written only after a
// persistence operation succeeded, and a failed audit write never fails the
// mutation that triggered it.
type ConfigService struct {
	repo    thresholdRepository
	audit   audit.Writer
	cache   thresholdCache
	metrics *MetricsService
	logger  *zap.Logger
	config  ConfigServiceConfig

	csv *export.CSVExporter
	pdf *export.PDFExporter
}

// NewConfigService constructs a ConfigService. The repository and audit
// writer are injected so tests can substitute doubles.
func NewConfigService(repo thresholdRepository, auditWriter audit.Writer, cache thresholdCache, metrics *MetricsService, logger *zap.Logger, cfg ConfigServiceConfig) *ConfigService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &ConfigService{
		repo:    repo,
		audit:   auditWriter,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		config:  cfg,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
	}
}

// CreateThreshold persists a new threshold and audits the creation. A
// duplicate factor propagates the repository's conflict error unaudited.
func (s *ConfigService) CreateThreshold(ctx context.Context, req dto.CreateThresholdRequest, actor string) (*models.RiskThreshold, error) {
	operator := models.ThresholdOperator(req.Operator)
	if !operator.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported operator %q", req.Operator))
	}

	threshold := &models.RiskThreshold{
		Factor:      req.Factor,
		Operator:    operator,
		Value:       *req.Value,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, threshold); err != nil {
		return nil, err
	}

	s.emitAudit(models.AuditActionCreateThreshold, actor, map[string]interface{}{
		"newValue": threshold,
	})
	s.invalidateListCache(ctx)

	return threshold, nil
}

// UpdateThresholdByFactor applies a partial update to an existing
// threshold. The pre-update snapshot is read first so the audit entry holds
// a complete before/after record. A missing factor returns not-found with
// no audit write.
func (s *ConfigService) UpdateThresholdByFactor(ctx context.Context, factor string, req dto.UpdateThresholdRequest, actor string) (*models.RiskThreshold, error) {
	update := req.ToUpdate()
	if update.Empty() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one of operator, value or description must be provided")
	}
	if update.Operator != nil && !update.Operator.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported operator %q", *update.Operator))
	}

	oldThreshold, err := s.repo.FindByFactor(ctx, factor)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "threshold not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load threshold")
	}

	updated, err := s.repo.UpdateByFactor(ctx, factor, update)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "threshold not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update threshold")
	}

	s.emitAudit(models.AuditActionUpdateThreshold, actor, models.ThresholdChange{
		Factor:   factor,
		OldValue: oldThreshold,
		NewValue: updated,
	})
	s.invalidateListCache(ctx)

	return updated, nil
}

// GetThresholdByFactor is a pure read, no audit.
func (s *ConfigService) GetThresholdByFactor(ctx context.Context, factor string) (*models.RiskThreshold, error) {
	threshold, err := s.repo.FindByFactor(ctx, factor)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "threshold not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load threshold")
	}
	return threshold, nil
}

// ListThresholds returns every configured threshold, read through the cache
// when enabled.
func (s *ConfigService) ListThresholds(ctx context.Context) ([]models.RiskThreshold, error) {
	if s.cacheEnabled() {
		var cached []models.RiskThreshold
		if err := s.cache.Get(ctx, thresholdListCacheKey, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("threshold cache read failed", zap.Error(err))
		}
	}

	thresholds, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list thresholds")
	}

	if s.cacheEnabled() {
		if err := s.cache.Set(ctx, thresholdListCacheKey, thresholds, s.config.CacheTTL); err != nil {
			s.logger.Warn("threshold cache write failed", zap.Error(err))
		}
	}
	return thresholds, nil
}

// ResetThresholds removes every threshold and audits the bulk reset with
// the removed count.
func (s *ConfigService) ResetThresholds(ctx context.Context, actor string) (*models.ResetResult, error) {
	count, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset thresholds")
	}

	s.emitAudit(models.AuditActionResetThresholds, actor, map[string]interface{}{
		"deletedCount": count,
	})
	s.invalidateListCache(ctx)

	return &models.ResetResult{DeletedCount: count}, nil
}

// ExportThresholds renders the threshold table as CSV or PDF bytes.
func (s *ConfigService) ExportThresholds(ctx context.Context, format string) ([]byte, string, error) {
	thresholds, err := s.ListThresholds(ctx)
	if err != nil {
		return nil, "", err
	}

	dataset := export.Dataset{
		Title:   "Risk Thresholds",
		Headers: []string{"Factor", "Operator", "Value", "Description", "Updated At"},
		Rows:    make([]map[string]string, 0, len(thresholds)),
	}
	for _, t := range thresholds {
		description := ""
		if t.Description != nil {
			description = *t.Description
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Factor":      t.Factor,
			"Operator":    string(t.Operator),
			"Value":       strconv.FormatFloat(t.Value, 'f', -1, 64),
			"Description": description,
			"Updated At":  t.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}

	switch format {
	case "pdf":
		payload, err := s.pdf.Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return payload, "application/pdf", nil
	case "", "csv":
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return payload, "text/csv", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

// emitAudit appends one entry to the audit trail. Failures are logged and
// absorbed: the mutation already succeeded, so the caller must still see
// success regardless of audit-log health.
func (s *ConfigService) emitAudit(action, actor string, details interface{}) {
	if s.audit == nil {
		return
	}
	if actor == "" {
		actor = models.AuditActorSystem
	}
	entry := audit.Entry{
		Action:  action,
		User:    actor,
		Details: details,
	}
	if err := s.audit.Append(entry); err != nil {
		if s.metrics != nil {
			s.metrics.RecordAuditFailure()
		}
		s.logger.Warn("failed to record threshold audit entry",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

func (s *ConfigService) cacheEnabled() bool {
	return s.config.CacheEnabled && s.cache != nil
}

func (s *ConfigService) invalidateListCache(ctx context.Context) {
	if !s.cacheEnabled() {
		return
	}
	if err := s.cache.Delete(ctx, thresholdListCacheKey); err != nil {
		s.logger.Warn("threshold cache invalidation failed", zap.Error(err))
	}
}
