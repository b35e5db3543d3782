package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dangerclosesec/audiencelab/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultAuditLimit = 100

type AccessAuditLogRepositoryIface interface {
	Create(ctx context.Context, log *model.AccessAuditLog) error
	Query(ctx context.Context, orgID uuid.UUID, params QueryParams) ([]model.AccessAuditLog, int64, error)
	QueryOperator(ctx context.Context, params QueryParams) ([]model.AccessAuditLog, int64, error)
}

// AccessAuditLogRepository handles database operations for access audit logs
type AccessAuditLogRepository struct {
	db *gorm.DB
}

func NewAccessAuditLogRepository(db *gorm.DB) *AccessAuditLogRepository {
	return &AccessAuditLogRepository{db: db}
}

// Create inserts a new audit log entry
func (r *AccessAuditLogRepository) Create(ctx context.Context, log *model.AccessAuditLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("failed to create access audit log: %w", err)
	}
	return nil
}

// QueryParams holds parameters for querying audit logs
type QueryParams struct {
	ActionType  string
	EntityType  string
	EntityID    string
	SubjectType string
	SubjectID   string
	Result      *bool
	StartTime   time.Time
	EndTime     time.Time
	Limit       int
	Offset      int
}

// Query retrieves one organization's audit logs matching params, newest first.
func (r *AccessAuditLogRepository) Query(ctx context.Context, orgID uuid.UUID, params QueryParams) ([]model.AccessAuditLog, int64, error) {
	return r.query(r.db.WithContext(ctx).Where("organization_id = ?", orgID), params)
}

// QueryOperator retrieves entries that belong to no organization. They are
// never served to tenants.
func (r *AccessAuditLogRepository) QueryOperator(ctx context.Context, params QueryParams) ([]model.AccessAuditLog, int64, error) {
	return r.query(r.db.WithContext(ctx).Where("organization_id IS NULL"), params)
}

func (r *AccessAuditLogRepository) query(scoped *gorm.DB, params QueryParams) ([]model.AccessAuditLog, int64, error) {
	var logs []model.AccessAuditLog
	var count int64

	query := scoped.Model(&model.AccessAuditLog{})

	// Apply filters
	if params.ActionType != "" {
		query = query.Where("action_type = ?", params.ActionType)
	}
	if params.EntityType != "" {
		query = query.Where("entity_type = ?", params.EntityType)
	}
	if params.EntityID != "" {
		query = query.Where("entity_id = ?", params.EntityID)
	}
	if params.SubjectType != "" {
		query = query.Where("subject_type = ?", params.SubjectType)
	}
	if params.SubjectID != "" {
		query = query.Where("subject_id = ?", params.SubjectID)
	}
	if params.Result != nil {
		query = query.Where("result = ?", *params.Result)
	}
	if !params.StartTime.IsZero() {
		query = query.Where("timestamp >= ?", params.StartTime)
	}
	if !params.EndTime.IsZero() {
		query = query.Where("timestamp <= ?", params.EndTime)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count access audit logs: %w", err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	query = query.Limit(limit)
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}

	if err := query.Order("timestamp DESC").Order("id DESC").Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to query access audit logs: %w", err)
	}

	return logs, count, nil
}
