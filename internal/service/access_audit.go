package service

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/audiencelab/internal/audit"
	"github.com/dangerclosesec/audiencelab/internal/auth"
	"github.com/dangerclosesec/audiencelab/internal/model"
	"github.com/dangerclosesec/audiencelab/internal/repository"
	"github.com/google/uuid"
)

// Ensure AccessAuditService implements the audit.Logger interface
var _ audit.Logger = (*AccessAuditService)(nil)

// Entity types recorded on refused lookups
const (
	EntityApplication = "application"
	EntityPersona     = "persona"
	EntityCampaign    = "campaign"
	EntityContent     = "content"
)

var entityModels = map[string]any{
	EntityApplication: &model.Application{},
	EntityPersona:     &model.Persona{},
	EntityCampaign:    &model.Campaign{},
	EntityContent:     &model.Content{},
}

// AccessAuditService writes and reads the access audit log.
type AccessAuditService struct {
	store *repository.Store
}

func NewAccessAuditService(store *repository.Store) *AccessAuditService {
	return &AccessAuditService{store: store}
}

// LogRefusedLookup records a tenant lookup that returned nothing. The
// caller's organization gets a refused_lookup entry that reads the same
// whether or not the id exists elsewhere. The classification goes to an
// operator entry with no organization.
func (s *AccessAuditService) LogRefusedLookup(ctx context.Context, p *auth.Principal, entityType, entityID string) error {
	action := model.ActionResourceMissing
	if m, ok := entityModels[entityType]; ok {
		column := "id"
		if entityType == EntityApplication {
			column = "application_id"
		}
		exists, err := s.store.Exists(ctx, m, column+" = ?", entityID)
		if err != nil {
			return fmt.Errorf("classifying refused lookup: %w", err)
		}
		if exists {
			action = model.ActionCrossTenantAccess
		}
	}

	orgID := p.OrgID
	tenant := refusalEntry(p, model.ActionRefusedLookup, entityType, entityID)
	tenant.OrganizationID = &orgID

	operator := refusalEntry(p, action, entityType, entityID)
	operator.Context = map[string]any{"requesterOrgId": orgID.String()}

	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := writeAuditEntry(ctx, tx, tenant); err != nil {
			return err
		}
		return writeAuditEntry(ctx, tx, operator)
	})
}

func refusalEntry(p *auth.Principal, action, entityType, entityID string) *model.AccessAuditLog {
	result := false
	return &model.AccessAuditLog{
		ActionType:  action,
		Result:      &result,
		SubjectType: string(p.Kind),
		SubjectID:   p.SubjectID(),
		EntityType:  entityType,
		EntityID:    entityID,
	}
}

// LogCredentialFailure records a rejected application credential against the
// owning organization when the application is known.
func (s *AccessAuditService) LogCredentialFailure(ctx context.Context, applicationID string, app *model.Application) error {
	result := false
	entry := &model.AccessAuditLog{
		ActionType:  model.ActionAppUnknown,
		Result:      &result,
		SubjectType: string(auth.KindApplication),
		SubjectID:   applicationID,
		EntityType:  EntityApplication,
		EntityID:    applicationID,
	}
	if app != nil {
		orgID := app.OrganizationID
		entry.ActionType = model.ActionAppKeyMismatch
		entry.OrganizationID = &orgID
		entry.Context = map[string]any{"applicationName": app.Name}
	}
	return writeAuditEntry(ctx, s.store, entry)
}

func writeAuditEntry(ctx context.Context, store *repository.Store, entry *model.AccessAuditLog) error {
	info := audit.RequestInfoFrom(ctx)
	entry.RequestID = info.RequestID
	entry.ClientIP = info.ClientIP
	entry.UserAgent = info.UserAgent
	return store.AuditLogs.Create(ctx, entry)
}

// AuditLogPage is one page of audit entries plus the unpaged total.
type AuditLogPage struct {
	Logs   []model.AccessAuditLog `json:"logs"`
	Total  int64                  `json:"total"`
	Limit  int                    `json:"limit"`
	Offset int                    `json:"offset"`
}

// Query lists the principal's organization audit entries.
func (s *AccessAuditService) Query(ctx context.Context, p *auth.Principal, params repository.QueryParams) (*AuditLogPage, error) {
	logs, total, err := s.store.AuditLogs.Query(ctx, p.OrgID, params)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []model.AccessAuditLog{}
	}
	return &AuditLogPage{Logs: logs, Total: total, Limit: params.Limit, Offset: params.Offset}, nil
}

// QueryOperator lists entries that belong to no organization: refused lookup
// classifications and credential checks against unknown applications.
func (s *AccessAuditService) QueryOperator(ctx context.Context, params repository.QueryParams) (*AuditLogPage, error) {
	logs, total, err := s.store.AuditLogs.QueryOperator(ctx, params)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []model.AccessAuditLog{}
	}
	return &AuditLogPage{Logs: logs, Total: total, Limit: params.Limit, Offset: params.Offset}, nil
}

// auditRefused records a refused lookup without affecting the caller.
func auditRefused(ctx context.Context, logger audit.Logger, p *auth.Principal, entityType string, id uuid.UUID) {
	if logger == nil {
		return
	}
	if err := logger.LogRefusedLookup(ctx, p, entityType, id.String()); err != nil {
		logWarn(ctx, "recording refused lookup", err, "entity_type", entityType, "entity_id", id)
	}
}
