// internal/repository/persona.go
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

type PersonaRepositoryIface interface {
	Create(ctx context.Context, persona *model.Persona) error
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.Persona, error)
	List(ctx context.Context, orgID uuid.UUID) ([]*model.Persona, error)
	CampaignCounts(ctx context.Context, orgID uuid.UUID) (map[uuid.UUID]int64, error)
	Count(ctx context.Context, orgID uuid.UUID) (int64, error)
}

type PersonaRepository struct {
	db *gorm.DB
}

func NewPersonaRepository(db *gorm.DB) *PersonaRepository {
	return &PersonaRepository{db: db}
}

func (r *PersonaRepository) Create(ctx context.Context, persona *model.Persona) error {
	if err := r.db.WithContext(ctx).Create(persona).Error; err != nil {
		return fmt.Errorf("creating persona: %w", err)
	}
	return nil
}

func (r *PersonaRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.Persona, error) {
	var persona model.Persona
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Where("organization_id = ? AND id = ?", orgID, id).
		First(&persona).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPersonaNotFound
		}
		return nil, fmt.Errorf("finding persona: %w", err)
	}
	return &persona, nil
}

func (r *PersonaRepository) List(ctx context.Context, orgID uuid.UUID) ([]*model.Persona, error) {
	var personas []*model.Persona
	if err := newestFirst(r.db.WithContext(ctx)).
		Preload("Creator").
		Where("organization_id = ?", orgID).
		Find(&personas).Error; err != nil {
		return nil, fmt.Errorf("listing personas: %w", err)
	}
	return personas, nil
}

// CampaignCounts returns the number of campaigns per persona in the organization.
func (r *PersonaRepository) CampaignCounts(ctx context.Context, orgID uuid.UUID) (map[uuid.UUID]int64, error) {
	var rows []struct {
		PersonaID uuid.UUID
		Total     int64
	}
	if err := r.db.WithContext(ctx).Model(&model.Campaign{}).
		Select("persona_id, COUNT(*) AS total").
		Where("organization_id = ?", orgID).
		Group("persona_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("counting campaigns per persona: %w", err)
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.PersonaID] = row.Total
	}
	return counts, nil
}

func (r *PersonaRepository) Count(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Persona{}).
		Where("organization_id = ?", orgID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting personas: %w", err)
	}
	return count, nil
}
