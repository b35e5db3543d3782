// internal/repository/platform_user.go
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dangerclosesec/audiencelab/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlatformUserRepositoryIface interface {
	Create(ctx context.Context, user *model.PlatformUser) error
	ListByApplication(ctx context.Context, orgID, applicationID uuid.UUID) ([]*model.PlatformUser, error)
	ListSignedUpSince(ctx context.Context, orgID uuid.UUID, since time.Time, limit int) ([]*model.PlatformUser, error)
	CountSignedUpSince(ctx context.Context, orgID uuid.UUID, since time.Time) (int64, error)
	SpendSince(ctx context.Context, orgID uuid.UUID, since time.Time) ([]SignupSpend, error)
	TotalSpend(ctx context.Context, orgID uuid.UUID) (float64, error)
	Count(ctx context.Context, orgID uuid.UUID) (int64, error)
}

// SignupSpend is the slice of a platform user needed for revenue series.
type SignupSpend struct {
	SignupDate      time.Time
	MonthlySpendUSD *float64
}

type PlatformUserRepository struct {
	db *gorm.DB
}

func NewPlatformUserRepository(db *gorm.DB) *PlatformUserRepository {
	return &PlatformUserRepository{db: db}
}

func (r *PlatformUserRepository) Create(ctx context.Context, user *model.PlatformUser) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("creating platform user: %w", err)
	}
	return nil
}

// ListByApplication returns every record reported by one application, most
// recent signup first.
func (r *PlatformUserRepository) ListByApplication(ctx context.Context, orgID, applicationID uuid.UUID) ([]*model.PlatformUser, error) {
	var users []*model.PlatformUser
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND application_id = ?", orgID, applicationID).
		Order("signup_date DESC").Order("id DESC").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("listing platform users: %w", err)
	}
	return users, nil
}

func (r *PlatformUserRepository) ListSignedUpSince(ctx context.Context, orgID uuid.UUID, since time.Time, limit int) ([]*model.PlatformUser, error) {
	var users []*model.PlatformUser
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND signup_date >= ?", orgID, since).
		Order("signup_date DESC").Order("id DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("listing recent platform users: %w", err)
	}
	return users, nil
}

func (r *PlatformUserRepository) CountSignedUpSince(ctx context.Context, orgID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.PlatformUser{}).
		Where("organization_id = ? AND signup_date >= ?", orgID, since).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting recent platform users: %w", err)
	}
	return count, nil
}

func (r *PlatformUserRepository) SpendSince(ctx context.Context, orgID uuid.UUID, since time.Time) ([]SignupSpend, error) {
	var rows []SignupSpend
	if err := r.db.WithContext(ctx).Model(&model.PlatformUser{}).
		Select("signup_date", "monthly_spend_usd").
		Where("organization_id = ? AND signup_date >= ?", orgID, since).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading platform user spend: %w", err)
	}
	return rows, nil
}

func (r *PlatformUserRepository) TotalSpend(ctx context.Context, orgID uuid.UUID) (float64, error) {
	var total float64
	if err := r.db.WithContext(ctx).Model(&model.PlatformUser{}).
		Select("COALESCE(SUM(monthly_spend_usd), 0)").
		Where("organization_id = ?", orgID).
		Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("summing platform user spend: %w", err)
	}
	return total, nil
}

func (r *PlatformUserRepository) Count(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.PlatformUser{}).
		Where("organization_id = ?", orgID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting platform users: %w", err)
	}
	return count, nil
}
