// internal/service/campaign.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dangerclosesec/audiencelab/internal/audit"
	"github.com/dangerclosesec/audiencelab/internal/auth"
	"github.com/dangerclosesec/audiencelab/internal/domain"
	"github.com/dangerclosesec/audiencelab/internal/model"
	"github.com/dangerclosesec/audiencelab/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type CreateCampaignInput struct {
	Name        string     `json:"name" validate:"required,max=200"`
	Description string     `json:"description" validate:"required"`
	Strategy    string     `json:"strategy" validate:"required"`
	Budget      *float64   `json:"budget" validate:"omitempty,gte=0"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	PersonaID   uuid.UUID  `json:"personaId" validate:"required"`
}

type UpdateCampaignStatusInput struct {
	Status model.CampaignStatus `json:"status" validate:"required,oneof=DRAFT ACTIVE PAUSED COMPLETED"`
}

// CampaignWithCount is a campaign plus the number of content items generated for it.
type CampaignWithCount struct {
	*model.Campaign
	ContentCount int64
}

type CampaignService struct {
	store    *repository.Store
	personas *PersonaService
	audit    audit.Logger
	validate *validator.Validate
}

func NewCampaignService(store *repository.Store, personas *PersonaService, auditLogger audit.Logger, validate *validator.Validate) *CampaignService {
	return &CampaignService{store: store, personas: personas, audit: auditLogger, validate: validate}
}

func (s *CampaignService) List(ctx context.Context, p *auth.Principal) ([]CampaignWithCount, error) {
	campaigns, err := s.store.Campaigns.List(ctx, p.OrgID)
	if err != nil {
		return nil, err
	}
	counts, err := s.store.Campaigns.ContentCounts(ctx, p.OrgID)
	if err != nil {
		return nil, err
	}

	out := make([]CampaignWithCount, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, CampaignWithCount{Campaign: c, ContentCount: counts[c.ID]})
	}
	return out, nil
}

// Create stores a hand-written campaign. The persona must belong to the
// principal's organization.
func (s *CampaignService) Create(ctx context.Context, p *auth.Principal, in CreateCampaignInput) (*model.Campaign, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := domain.Validate(s.validate, in); err != nil {
		return nil, err
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, domain.NewValidationError("endDate", "must not be before startDate")
	}

	persona, err := s.personas.Get(ctx, p, in.PersonaID)
	if err != nil {
		return nil, err
	}

	campaign := &model.Campaign{
		Name:           in.Name,
		Description:    in.Description,
		Strategy:       in.Strategy,
		Status:         model.CampaignDraft,
		Budget:         in.Budget,
		StartDate:      utcPtr(in.StartDate),
		EndDate:        utcPtr(in.EndDate),
		PersonaID:      persona.ID,
		OrganizationID: p.OrgID,
		CreatorID:      p.UserID,
	}
	if err := s.store.Campaigns.Create(ctx, campaign); err != nil {
		return nil, err
	}
	campaign.Persona = persona
	return campaign, nil
}

// Get loads a campaign of the principal's organization with its persona.
func (s *CampaignService) Get(ctx context.Context, p *auth.Principal, id uuid.UUID) (*model.Campaign, error) {
	campaign, err := s.store.Campaigns.FindByID(ctx, p.OrgID, id)
	if errors.Is(err, domain.ErrCampaignNotFound) {
		auditRefused(ctx, s.audit, p, EntityCampaign, id)
	}
	return campaign, err
}

// UpdateStatus moves a campaign along its lifecycle. The write only applies if
// the status has not changed since it was read.
func (s *CampaignService) UpdateStatus(ctx context.Context, p *auth.Principal, id uuid.UUID, in UpdateCampaignStatusInput) (*model.Campaign, error) {
	if err := domain.Validate(s.validate, in); err != nil {
		return nil, err
	}

	campaign, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if !campaign.Status.CanTransitionTo(in.Status) {
		return nil, domain.Errorf(domain.ErrInvalidTransition,
			"Cannot change campaign status from %s to %s", campaign.Status, in.Status)
	}

	if err := s.store.Campaigns.UpdateStatus(ctx, p.OrgID, id, campaign.Status, in.Status); err != nil {
		return nil, err
	}
	campaign.Status = in.Status
	return campaign, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
