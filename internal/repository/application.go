// internal/repository/application.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dangerclosesec/audiencelab/internal/domain"
	"github.com/dangerclosesec/audiencelab/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationRepositoryIface interface {
	Create(ctx context.Context, app *model.Application) error
	List(ctx context.Context, orgID uuid.UUID) ([]*model.Application, error)
	FindByApplicationID(ctx context.Context, orgID uuid.UUID, applicationID string) (*model.Application, error)
	FindByCredentialID(ctx context.Context, applicationID string) (*model.Application, error)
	Count(ctx context.Context, orgID uuid.UUID) (int64, error)
}

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, app *model.Application) error {
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("creating application: %w", domain.ErrConflict)
		}
		return fmt.Errorf("creating application: %w", err)
	}
	return nil
}

// List returns the organization's applications, newest first.
func (r *ApplicationRepository) List(ctx context.Context, orgID uuid.UUID) ([]*model.Application, error) {
	var apps []*model.Application
	if err := newestFirst(r.db.WithContext(ctx)).
		Where("organization_id = ?", orgID).
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}
	return apps, nil
}

// FindByApplicationID resolves a public application id within one organization.
func (r *ApplicationRepository) FindByApplicationID(ctx context.Context, orgID uuid.UUID, applicationID string) (*model.Application, error) {
	var app model.Application
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND application_id = ?", orgID, applicationID).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("finding application: %w", err)
	}
	return &app, nil
}

// FindByCredentialID resolves a public application id without a tenant filter.
// Only the machine authentication path may call it, and the caller must check
// the key before trusting the result.
func (r *ApplicationRepository) FindByCredentialID(ctx context.Context, applicationID string) (*model.Application, error) {
	var app model.Application
	if err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("finding application credentials: %w", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) Count(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("organization_id = ?", orgID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting applications: %w", err)
	}
	return count, nil
}
