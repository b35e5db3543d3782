// internal/service/application.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dangerclosesec/audiencelab/internal/audit"
	"github.com/dangerclosesec/audiencelab/internal/auth"
	"github.com/dangerclosesec/audiencelab/internal/domain"
	"github.com/dangerclosesec/audiencelab/internal/metrics"
	"github.com/dangerclosesec/audiencelab/internal/model"
	"github.com/dangerclosesec/audiencelab/internal/repository"
	"github.com/go-playground/validator/v10"
)

const (
	applicationIDBytes  = 8
	applicationKeyBytes = 24
	createAttempts      = 3
)

var (
	_ auth.ApplicationLookup         = (*ApplicationService)(nil)
	_ auth.CredentialFailureRecorder = (*ApplicationService)(nil)
)

type CreateApplicationInput struct {
	Name string `json:"name" validate:"required,max=200"`
}

// PlatformUserInput is the body an integration posts for one user.
// applicationKey is consumed by the authenticator and ignored here.
type PlatformUserInput struct {
	Company         string   `json:"company" validate:"max=200"`
	JobTitle        string   `json:"jobTitle" validate:"max=200"`
	Industry        string   `json:"industry" validate:"max=200"`
	Location        string   `json:"location" validate:"max=200"`
	Age             string   `json:"age" validate:"max=32"`
	MonthlySpendUSD *float64 `json:"monthlySpendUsd" validate:"omitempty,gte=0"`
	Active          *bool    `json:"active"`
}

type ApplicationService struct {
	store    *repository.Store
	cache    *CredentialCache
	audit    audit.Logger
	metrics  *metrics.Metrics
	validate *validator.Validate
	now      Clock
}

func NewApplicationService(
	store *repository.Store,
	cache *CredentialCache,
	auditLogger audit.Logger,
	m *metrics.Metrics,
	validate *validator.Validate,
) *ApplicationService {
	if auditLogger == nil {
		auditLogger = audit.NoOpLogger{}
	}
	return &ApplicationService{
		store:    store,
		cache:    cache,
		audit:    auditLogger,
		metrics:  m,
		validate: validate,
		now:      time.Now,
	}
}

// Create registers a new application with a fresh id and key pair.
func (s *ApplicationService) Create(ctx context.Context, p *auth.Principal, in CreateApplicationInput) (*model.Application, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := domain.Validate(s.validate, in); err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		app, err := newApplication(in.Name, p)
		if err != nil {
			return nil, err
		}

		err = s.store.Applications.Create(ctx, app)
		if err == nil {
			return app, nil
		}
		// A collision on the 64-bit public id is retried with a new pair.
		if !errors.Is(err, domain.ErrConflict) || attempt == createAttempts {
			return nil, err
		}
	}
}

func newApplication(name string, p *auth.Principal) (*model.Application, error) {
	id, err := randomToken(model.ApplicationIDPrefix, applicationIDBytes)
	if err != nil {
		return nil, err
	}
	key, err := randomToken(model.ApplicationKeyPrefix, applicationKeyBytes)
	if err != nil {
		return nil, err
	}
	return &model.Application{
		Name:           name,
		ApplicationID:  id,
		ApplicationKey: key,
		OrganizationID: p.OrgID,
		CreatorID:      p.UserID,
	}, nil
}

func randomToken(prefix string, n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating random bytes: %w", err)
	}
	return prefix + hex.EncodeToString(b), nil
}

func (s *ApplicationService) List(ctx context.Context, p *auth.Principal) ([]*model.Application, error) {
	return s.store.Applications.List(ctx, p.OrgID)
}

// Find resolves an application by public id within the principal's organization.
func (s *ApplicationService) Find(ctx context.Context, p *auth.Principal, applicationID string) (*model.Application, error) {
	app, err := s.store.Applications.FindByApplicationID(ctx, p.OrgID, applicationID)
	if errors.Is(err, domain.ErrApplicationNotFound) {
		if logErr := s.audit.LogRefusedLookup(ctx, p, EntityApplication, applicationID); logErr != nil {
			logWarn(ctx, "recording refused lookup", logErr, "entity_type", EntityApplication, "entity_id", applicationID)
		}
	}
	return app, err
}

// LookupApplication implements auth.ApplicationLookup.
func (s *ApplicationService) LookupApplication(ctx context.Context, applicationID string) (*model.Application, error) {
	if app, ok := s.cache.Get(applicationID); ok {
		return app, nil
	}

	app, err := s.store.Applications.FindByCredentialID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(app)
	return app, nil
}

// RecordCredentialFailure implements auth.CredentialFailureRecorder.
func (s *ApplicationService) RecordCredentialFailure(ctx context.Context, applicationID string, app *model.Application) {
	reason := model.ActionAppUnknown
	if app != nil {
		reason = model.ActionAppKeyMismatch
	}
	s.metrics.CredentialRejected(reason)

	if err := s.audit.LogCredentialFailure(ctx, applicationID, app); err != nil {
		logWarn(ctx, "recording credential failure", err, "application_id", applicationID)
	}
}

// AddPlatformUser stores one record for the authenticated application. The
// organization and application come from the principal, never the body.
func (s *ApplicationService) AddPlatformUser(ctx context.Context, p *auth.Principal, in PlatformUserInput) (*model.PlatformUser, error) {
	if p.Kind != auth.KindApplication {
		return nil, domain.ErrForbidden
	}
	if err := domain.Validate(s.validate, in); err != nil {
		return nil, err
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	user := &model.PlatformUser{
		OrganizationID:  p.OrgID,
		ApplicationID:   p.ApplicationRef,
		Company:         strings.TrimSpace(in.Company),
		JobTitle:        strings.TrimSpace(in.JobTitle),
		Industry:        strings.TrimSpace(in.Industry),
		Location:        strings.TrimSpace(in.Location),
		Age:             strings.TrimSpace(in.Age),
		MonthlySpendUSD: in.MonthlySpendUSD,
		Active:          active,
		SignupDate:      s.now().UTC(),
	}
	if err := s.store.PlatformUsers.Create(ctx, user); err != nil {
		return nil, err
	}

	s.metrics.PlatformUserIngested()
	return user, nil
}
