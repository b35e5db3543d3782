// internal/repository/campaign.go
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

type CampaignRepositoryIface interface {
	Create(ctx context.Context, campaign *model.Campaign) error
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.Campaign, error)
	List(ctx context.Context, orgID uuid.UUID) ([]*model.Campaign, error)
	ContentCounts(ctx context.Context, orgID uuid.UUID) (map[uuid.UUID]int64, error)
	UpdateStatus(ctx context.Context, orgID, id uuid.UUID, from, to model.CampaignStatus) error
	Count(ctx context.Context, orgID uuid.UUID) (int64, error)
}

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

func (r *CampaignRepository) Create(ctx context.Context, campaign *model.Campaign) error {
	if err := r.db.WithContext(ctx).Create(campaign).Error; err != nil {
		return fmt.Errorf("creating campaign: %w", err)
	}
	return nil
}

// FindByID loads the campaign with its persona, both scoped to the organization.
func (r *CampaignRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.Campaign, error) {
	var campaign model.Campaign
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Persona", "organization_id = ?", orgID).
		Where("organization_id = ? AND id = ?", orgID, id).
		First(&campaign).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("finding campaign: %w", err)
	}
	return &campaign, nil
}

func (r *CampaignRepository) List(ctx context.Context, orgID uuid.UUID) ([]*model.Campaign, error) {
	var campaigns []*model.Campaign
	if err := newestFirst(r.db.WithContext(ctx)).
		Preload("Creator").
		Preload("Persona", "organization_id = ?", orgID).
		Where("organization_id = ?", orgID).
		Find(&campaigns).Error; err != nil {
		return nil, fmt.Errorf("listing campaigns: %w", err)
	}
	return campaigns, nil
}

// ContentCounts returns the number of content rows per campaign in the organization.
func (r *CampaignRepository) ContentCounts(ctx context.Context, orgID uuid.UUID) (map[uuid.UUID]int64, error) {
	var rows []struct {
		CampaignID uuid.UUID
		Total      int64
	}
	if err := r.db.WithContext(ctx).Model(&model.Content{}).
		Select("campaign_id, COUNT(*) AS total").
		Where("organization_id = ?", orgID).
		Group("campaign_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("counting content per campaign: %w", err)
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.CampaignID] = row.Total
	}
	return counts, nil
}

// UpdateStatus moves a campaign from one status to another. The update only
// applies while the row still holds the expected status, so two concurrent
// transitions cannot both succeed.
func (r *CampaignRepository) UpdateStatus(ctx context.Context, orgID, id uuid.UUID, from, to model.CampaignStatus) error {
	result := r.db.WithContext(ctx).Model(&model.Campaign{}).
		Where("organization_id = ? AND id = ? AND status = ?", orgID, id, from).
		Update("status", to)
	if result.Error != nil {
		return fmt.Errorf("updating campaign status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("campaign status changed concurrently: %w", domain.ErrConflict)
	}
	return nil
}

func (r *CampaignRepository) Count(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Campaign{}).
		Where("organization_id = ?", orgID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting campaigns: %w", err)
	}
	return count, nil
}
