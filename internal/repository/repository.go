// internal/repository/repository.go
package repository

import (
	"context"
	"log/slog"

	"gorm.io/gorm"
)

// Store groups the repositories that share one connection or transaction.
type Store struct {
	db *gorm.DB

	Organizations OrganizationRepositoryIface
	Users         UserRepositoryIface
	Applications  ApplicationRepositoryIface
	PlatformUsers PlatformUserRepositoryIface
	Personas      PersonaRepositoryIface
	Campaigns     CampaignRepositoryIface
	Contents      ContentRepositoryIface
	AuditLogs     AccessAuditLogRepositoryIface
	Reference     ReferenceRepositoryIface
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Organizations: NewOrganizationRepository(db),
		Users:         NewUserRepository(db),
		Applications:  NewApplicationRepository(db),
		PlatformUsers: NewPlatformUserRepository(db),
		Personas:      NewPersonaRepository(db),
		Campaigns:     NewCampaignRepository(db),
		Contents:      NewContentRepository(db),
		AuditLogs:     NewAccessAuditLogRepository(db),
		Reference:     NewReferenceRepository(db),
	}
}

// Transaction runs fn against a Store bound to a single database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := fn(NewStore(tx)); err != nil {
			slog.WarnContext(ctx, "rolling back transaction", "error", err)
			return err
		}
		return nil
	})
}

// newestFirst is the ordering used by every tenant list.
func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}

// Exists reports whether any row of the given model matches the condition,
// ignoring tenant scope. It is only used to classify refused lookups for the
// access audit log and must never feed a client response.
func (s *Store) Exists(ctx context.Context, m any, query string, args ...any) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(m).Where(query, args...).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
