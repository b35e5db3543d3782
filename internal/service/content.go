// internal/service/content.go
package service

import (
	"context"
	"errors"

	"github.com/dangerclosesec/audiencelab/internal/audit"
	"github.com/dangerclosesec/audiencelab/internal/auth"
	"github.com/dangerclosesec/audiencelab/internal/domain"
	"github.com/dangerclosesec/audiencelab/internal/model"
	"github.com/dangerclosesec/audiencelab/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type UpdateContentStatusInput struct {
	Status model.ContentStatus `json:"status" validate:"required,oneof=DRAFT REVIEW PUBLISHED ARCHIVED"`
}

type ContentService struct {
	store    *repository.Store
	audit    audit.Logger
	validate *validator.Validate
}

func NewContentService(store *repository.Store, auditLogger audit.Logger, validate *validator.Validate) *ContentService {
	return &ContentService{store: store, audit: auditLogger, validate: validate}
}

// List returns the organization's content with campaign and persona attached.
// A non-nil campaignID narrows the list to that campaign.
func (s *ContentService) List(ctx context.Context, p *auth.Principal, campaignID *uuid.UUID) ([]*model.Content, error) {
	if campaignID != nil {
		return s.store.Contents.ListByCampaign(ctx, p.OrgID, *campaignID)
	}
	return s.store.Contents.List(ctx, p.OrgID)
}

func (s *ContentService) UpdateStatus(ctx context.Context, p *auth.Principal, id uuid.UUID, in UpdateContentStatusInput) (*model.Content, error) {
	if err := domain.Validate(s.validate, in); err != nil {
		return nil, err
	}

	content, err := s.store.Contents.FindByID(ctx, p.OrgID, id)
	if errors.Is(err, domain.ErrContentNotFound) {
		auditRefused(ctx, s.audit, p, EntityContent, id)
	}
	if err != nil {
		return nil, err
	}

	if !content.Status.CanTransitionTo(in.Status) {
		return nil, domain.Errorf(domain.ErrInvalidTransition,
			"Cannot change content status from %s to %s", content.Status, in.Status)
	}

	if err := s.store.Contents.UpdateStatus(ctx, p.OrgID, id, content.Status, in.Status); err != nil {
		return nil, err
	}
	content.Status = in.Status
	return content, nil
}
