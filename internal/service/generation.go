// internal/service/generation.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dangerclosesec/audiencelab/internal/analytics"
	"github.com/dangerclosesec/audiencelab/internal/auth"
	"github.com/dangerclosesec/audiencelab/internal/domain"
	"github.com/dangerclosesec/audiencelab/internal/genai"
	"github.com/dangerclosesec/audiencelab/internal/generation"
	"github.com/dangerclosesec/audiencelab/internal/metrics"
	"github.com/dangerclosesec/audiencelab/internal/model"
	"github.com/dangerclosesec/audiencelab/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Generation kinds, used as metric labels
const (
	KindPersona  = "persona"
	KindCampaign = "campaign"
	KindContent  = "content"
)

type GeneratePersonaInput struct {
	ApplicationID string `json:"applicationId"`
}

type GenerateCampaignInput struct {
	PersonaID uuid.UUID `json:"personaId" validate:"required"`
}

type GenerateContentInput struct {
	CampaignID        uuid.UUID `json:"campaignId" validate:"required"`
	Title             string    `json:"title" validate:"required,max=200"`
	Platforms         []string  `json:"platforms" validate:"required,min=1,max=10,unique,dive,required,max=64"`
	AdditionalContext string    `json:"additionalContext" validate:"max=4000"`
}

func (in *GenerateContentInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.AdditionalContext = strings.TrimSpace(in.AdditionalContext)
	for i, p := range in.Platforms {
		in.Platforms[i] = strings.TrimSpace(p)
	}
}

// GeneratedContent is the outcome of one content generation: one row per
// requested platform, in request order.
type GeneratedContent struct {
	Campaign  *model.Campaign
	Platforms []string
	Content   []*model.Content
}

// GenerationService runs the three structured generation pipelines. Each one
// assembles a prompt from tenant data, asks the model for schema-constrained
// JSON, validates the answer and only then persists it.
type GenerationService struct {
	store        *repository.Store
	generator    genai.Generator
	applications *ApplicationService
	personas     *PersonaService
	campaigns    *CampaignService
	metrics      *metrics.Metrics
	validate     *validator.Validate
}

func NewGenerationService(
	store *repository.Store,
	generator genai.Generator,
	applications *ApplicationService,
	personas *PersonaService,
	campaigns *CampaignService,
	m *metrics.Metrics,
	validate *validator.Validate,
) *GenerationService {
	return &GenerationService{
		store:        store,
		generator:    generator,
		applications: applications,
		personas:     personas,
		campaigns:    campaigns,
		metrics:      m,
		validate:     validate,
	}
}

// GeneratePersona builds a persona from the platform users one application reported.
func (s *GenerationService) GeneratePersona(ctx context.Context, p *auth.Principal, in GeneratePersonaInput) (persona *model.Persona, err error) {
	defer s.observe(ctx, KindPersona, time.Now(), &err)

	applicationID := strings.TrimSpace(in.ApplicationID)
	if applicationID == "" {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Application ID is required")
	}

	app, err := s.applications.Find(ctx, p, applicationID)
	if err != nil {
		return nil, err
	}

	users, err := s.store.PlatformUsers.ListByApplication(ctx, p.OrgID, app.ID)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, domain.Errorf(domain.ErrInsufficientData, "No platform user data available to generate persona")
	}

	prompt, err := generation.PersonaPrompt(analytics.Summarize(users))
	if err != nil {
		return nil, err
	}

	var result generation.PersonaResult
	if err := s.generate(ctx, prompt, generation.PersonaSchema(), &result); err != nil {
		return nil, err
	}

	persona = newPersona(p, result.Name, result.Description, result.Demographics, result.Behaviors, result.Preferences)
	if err := s.store.Personas.Create(ctx, persona); err != nil {
		return nil, err
	}
	return persona, nil
}

// GenerateCampaign builds a draft campaign for one persona.
func (s *GenerationService) GenerateCampaign(ctx context.Context, p *auth.Principal, in GenerateCampaignInput) (campaign *model.Campaign, err error) {
	defer s.observe(ctx, KindCampaign, time.Now(), &err)

	if err := domain.Validate(s.validate, in); err != nil {
		return nil, err
	}

	persona, err := s.personas.Get(ctx, p, in.PersonaID)
	if err != nil {
		return nil, err
	}

	prompt, err := generation.CampaignPrompt(persona)
	if err != nil {
		return nil, err
	}

	var result generation.CampaignResult
	if err := s.generate(ctx, prompt, generation.CampaignSchema(), &result); err != nil {
		return nil, err
	}

	start, err := generation.ParseDate(result.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := generation.ParseDate(result.EndDate)
	if err != nil {
		return nil, err
	}

	campaign = &model.Campaign{
		Name:           result.Name,
		Description:    result.Description,
		Strategy:       result.Strategy,
		Status:         model.CampaignDraft,
		Budget:         result.Budget,
		StartDate:      start,
		EndDate:        end,
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

// GenerateContent builds one content item per requested platform. All rows are
// written in a single transaction.
func (s *GenerationService) GenerateContent(ctx context.Context, p *auth.Principal, in GenerateContentInput) (out *GeneratedContent, err error) {
	defer s.observe(ctx, KindContent, time.Now(), &err)

	in.normalize()
	if err := domain.Validate(s.validate, in); err != nil {
		return nil, err
	}

	campaign, err := s.campaigns.Get(ctx, p, in.CampaignID)
	if err != nil {
		return nil, err
	}

	prompt, err := generation.ContentPrompt(generation.ContentInput{
		Campaign:          campaign,
		Persona:           campaign.Persona,
		Title:             in.Title,
		Platforms:         in.Platforms,
		AdditionalContext: in.AdditionalContext,
	})
	if err != nil {
		return nil, err
	}

	var result generation.ContentResult
	if err := s.generate(ctx, prompt, generation.ContentSchema(in.Platforms), &result); err != nil {
		return nil, err
	}
	if err := result.CheckPlatforms(in.Platforms); err != nil {
		return nil, err
	}

	contents := make([]*model.Content, 0, len(in.Platforms))
	for _, platform := range in.Platforms {
		generated := result.Platforms[platform]
		contents = append(contents, &model.Content{
			Title:          fmt.Sprintf("%s - %s", in.Title, platform),
			Description:    generated.PostDescription,
			Platform:       platform,
			Payload:        datatypes.NewJSONType(generated.Payload(platform)),
			Type:           model.ContentTypeSocialPost,
			Status:         model.ContentDraft,
			CampaignID:     campaign.ID,
			OrganizationID: p.OrgID,
			CreatorID:      p.UserID,
		})
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		return tx.Contents.CreateBatch(ctx, contents)
	})
	if err != nil {
		return nil, err
	}

	return &GeneratedContent{Campaign: campaign, Platforms: in.Platforms, Content: contents}, nil
}

// generate calls the model and decodes its answer into out. Upstream failures
// are wrapped in domain.ErrGeneration; nonconforming answers in
// domain.ErrSchemaMismatch.
func (s *GenerationService) generate(ctx context.Context, prompt string, schema *genai.Schema, out any) error {
	raw, err := s.generator.Generate(ctx, genai.Request{Prompt: prompt, Schema: schema})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}
	return generation.Decode(s.validate, raw, out)
}

func (s *GenerationService) observe(ctx context.Context, kind string, started time.Time, errp *error) {
	outcome := generationOutcome(*errp)
	s.metrics.ObserveGeneration(kind, outcome, started)

	switch outcome {
	case metrics.OutcomeSuccess:
		slog.InfoContext(ctx, "generation completed", "kind", kind, "duration", time.Since(started))
	case metrics.OutcomeUpstreamError, metrics.OutcomeSchemaMismatch, metrics.OutcomePersistError:
		logError(ctx, "generation failed", *errp, "kind", kind, "outcome", outcome)
	}
}

func generationOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidInput):
		return metrics.OutcomeInvalidInput
	case errors.Is(err, domain.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, domain.ErrInsufficientData):
		return metrics.OutcomeInsufficientData
	case errors.Is(err, domain.ErrSchemaMismatch):
		return metrics.OutcomeSchemaMismatch
	case errors.Is(err, domain.ErrGeneration):
		return metrics.OutcomeUpstreamError
	default:
		return metrics.OutcomePersistError
	}
}
