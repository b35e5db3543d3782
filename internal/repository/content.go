// internal/repository/content.go
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

type ContentRepositoryIface interface {
	CreateBatch(ctx context.Context, contents []*model.Content) error
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.Content, error)
	List(ctx context.Context, orgID uuid.UUID) ([]*model.Content, error)
	ListByCampaign(ctx context.Context, orgID, campaignID uuid.UUID) ([]*model.Content, error)
	UpdateStatus(ctx context.Context, orgID, id uuid.UUID, from, to model.ContentStatus) error
}

type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) CreateBatch(ctx context.Context, contents []*model.Content) error {
	if len(contents) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(contents).Error; err != nil {
		return fmt.Errorf("creating content: %w", err)
	}
	return nil
}

func (r *ContentRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.Content, error) {
	var content model.Content
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, id).
		First(&content).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrContentNotFound
		}
		return nil, fmt.Errorf("finding content: %w", err)
	}
	return &content, nil
}

// List returns the organization's content with campaign and persona loaded.
func (r *ContentRepository) List(ctx context.Context, orgID uuid.UUID) ([]*model.Content, error) {
	var contents []*model.Content
	if err := newestFirst(r.db.WithContext(ctx)).
		Preload("Creator").
		Preload("Campaign", "organization_id = ?", orgID).
		Preload("Campaign.Persona", "organization_id = ?", orgID).
		Where("organization_id = ?", orgID).
		Find(&contents).Error; err != nil {
		return nil, fmt.Errorf("listing content: %w", err)
	}
	return contents, nil
}

func (r *ContentRepository) ListByCampaign(ctx context.Context, orgID, campaignID uuid.UUID) ([]*model.Content, error) {
	var contents []*model.Content
	if err := newestFirst(r.db.WithContext(ctx)).
		Preload("Creator").
		Preload("Campaign", "organization_id = ?", orgID).
		Preload("Campaign.Persona", "organization_id = ?", orgID).
		Where("organization_id = ? AND campaign_id = ?", orgID, campaignID).
		Find(&contents).Error; err != nil {
		return nil, fmt.Errorf("listing campaign content: %w", err)
	}
	return contents, nil
}

// UpdateStatus applies only while the row still holds the expected status.
func (r *ContentRepository) UpdateStatus(ctx context.Context, orgID, id uuid.UUID, from, to model.ContentStatus) error {
	result := r.db.WithContext(ctx).Model(&model.Content{}).
		Where("organization_id = ? AND id = ? AND status = ?", orgID, id, from).
		Update("status", to)
	if result.Error != nil {
		return fmt.Errorf("updating content status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("content status changed concurrently: %w", domain.ErrConflict)
	}
	return nil
}
