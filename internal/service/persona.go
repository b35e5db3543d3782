// internal/service/persona.go
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dangerclosesec/audiencelab/internal/audit"
	"github.com/dangerclosesec/audiencelab/internal/auth"
	"github.com/dangerclosesec/audiencelab/internal/domain"
	"github.com/dangerclosesec/audiencelab/internal/model"
	"github.com/dangerclosesec/audiencelab/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CreatePersonaInput is a hand-written persona. The profile blobs are checked
// against the same rules as generated ones.
type CreatePersonaInput struct {
	Name         string                    `json:"name" validate:"required,max=200"`
	Description  string                    `json:"description" validate:"required"`
	Demographics model.PersonaDemographics `json:"demographics" validate:"required"`
	Behaviors    model.PersonaBehaviors    `json:"behaviors" validate:"required"`
	Preferences  model.PersonaPreferences  `json:"preferences" validate:"required"`
}

// PersonaWithCount is a persona plus the number of campaigns built on it.
type PersonaWithCount struct {
	*model.Persona
	CampaignCount int64
}

type PersonaService struct {
	store    *repository.Store
	audit    audit.Logger
	validate *validator.Validate
}

func NewPersonaService(store *repository.Store, auditLogger audit.Logger, validate *validator.Validate) *PersonaService {
	return &PersonaService{store: store, audit: auditLogger, validate: validate}
}

func (s *PersonaService) List(ctx context.Context, p *auth.Principal) ([]PersonaWithCount, error) {
	personas, err := s.store.Personas.List(ctx, p.OrgID)
	if err != nil {
		return nil, err
	}
	counts, err := s.store.Personas.CampaignCounts(ctx, p.OrgID)
	if err != nil {
		return nil, err
	}

	out := make([]PersonaWithCount, 0, len(personas))
	for _, persona := range personas {
		out = append(out, PersonaWithCount{Persona: persona, CampaignCount: counts[persona.ID]})
	}
	return out, nil
}

func (s *PersonaService) Create(ctx context.Context, p *auth.Principal, in CreatePersonaInput) (*model.Persona, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := domain.Validate(s.validate, in); err != nil {
		return nil, err
	}

	persona := newPersona(p, in.Name, in.Description, in.Demographics, in.Behaviors, in.Preferences)
	if err := s.store.Personas.Create(ctx, persona); err != nil {
		return nil, err
	}
	return persona, nil
}

// Get loads a persona of the principal's organization.
func (s *PersonaService) Get(ctx context.Context, p *auth.Principal, id uuid.UUID) (*model.Persona, error) {
	persona, err := s.store.Personas.FindByID(ctx, p.OrgID, id)
	if errors.Is(err, domain.ErrPersonaNotFound) {
		auditRefused(ctx, s.audit, p, EntityPersona, id)
	}
	return persona, err
}

func newPersona(p *auth.Principal, name, description string, d model.PersonaDemographics, b model.PersonaBehaviors, pref model.PersonaPreferences) *model.Persona {
	return &model.Persona{
		Name:           name,
		Description:    description,
		Demographics:   datatypes.NewJSONType(d),
		Behaviors:      datatypes.NewJSONType(b),
		Preferences:    datatypes.NewJSONType(pref),
		ProfileVersion: model.PersonaProfileVersion,
		OrganizationID: p.OrgID,
		CreatorID:      p.UserID,
	}
}
