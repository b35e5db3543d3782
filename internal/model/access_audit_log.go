package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AccessAuditLog records a tenant-scoped lookup or machine credential check
// that was refused.
type AccessAuditLog struct {
	ID             uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	Timestamp      time.Time         `json:"timestamp" gorm:"not null;index"`
	ActionType     string            `json:"actionType" gorm:"type:varchar(64);not null;index"`
	Result         *bool             `json:"result"`
	OrganizationID *uuid.UUID        `json:"orgId,omitempty" gorm:"type:uuid;index"`
	SubjectType    string            `json:"subjectType"`
	SubjectID      string            `json:"subjectId"`
	EntityType     string            `json:"entityType"`
	EntityID       string            `json:"entityId"`
	Context        datatypes.JSONMap `json:"context"`
	RequestID      string            `json:"requestId"`
	ClientIP       string            `json:"clientIp"`
	UserAgent      string            `json:"userAgent"`
	CreatedAt      time.Time         `json:"createdAt"`
}

func (AccessAuditLog) TableName() string {
	return "access_audit_logs"
}

func (l *AccessAuditLog) BeforeCreate(tx *gorm.DB) error {
	assignID(&l.ID)
	if l.Timestamp.IsZero() {
		l.Timestamp = tx.NowFunc()
	}
	return nil
}

// Action types written to the access audit log. Tenant rows for refused
// lookups always carry ActionRefusedLookup; the cross-tenant classification is
// only written to operator rows, which have no organization.
const (
	ActionRefusedLookup     = "refused_lookup"
	ActionCrossTenantAccess = "cross_tenant_access"
	ActionResourceMissing   = "resource_missing"
	ActionAppKeyMismatch    = "app_key_mismatch"
	ActionAppUnknown        = "app_unknown"
)
