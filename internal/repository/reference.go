package repository

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/audiencelab/internal/model"
	"gorm.io/gorm"
)

type ReferenceRepositoryIface interface {
	Industries(ctx context.Context) ([]model.Industry, error)
	AgeRanges(ctx context.Context) ([]model.AgeRange, error)
}

type ReferenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// Industries are returned alphabetically.
func (r *ReferenceRepository) Industries(ctx context.Context) ([]model.Industry, error) {
	var industries []model.Industry
	if err := r.db.WithContext(ctx).Order("industry ASC").Find(&industries).Error; err != nil {
		return nil, fmt.Errorf("listing industries: %w", err)
	}
	return industries, nil
}

// AgeRanges keep their seeded order.
func (r *ReferenceRepository) AgeRanges(ctx context.Context) ([]model.AgeRange, error) {
	var ranges []model.AgeRange
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&ranges).Error; err != nil {
		return nil, fmt.Errorf("listing age ranges: %w", err)
	}
	return ranges, nil
}
