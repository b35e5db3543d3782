package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/dangerclosesec/audiencelab/internal/auth"
	"github.com/dangerclosesec/audiencelab/internal/database/dbtest"
	"github.com/dangerclosesec/audiencelab/internal/domain"
	"github.com/dangerclosesec/audiencelab/internal/genai"
	"github.com/dangerclosesec/audiencelab/internal/metrics"
	"github.com/dangerclosesec/audiencelab/internal/model"
	"github.com/dangerclosesec/audiencelab/internal/repository"
	"github.com/dangerclosesec/audiencelab/internal/service"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// testEnv wires every service over a fresh sqlite database.
type testEnv struct {
	db      *gorm.DB
	store   *repository.Store
	metrics *metrics.Metrics
	tokens  *auth.TokenManager

	audit        *service.AccessAuditService
	accounts     *service.AccountService
	applications *service.ApplicationService
	analytics    *service.AnalyticsService
	personas     *service.PersonaService
	campaigns    *service.CampaignService
	contents     *service.ContentService
	generation   *service.GenerationService
}

func newTestEnv(t *testing.T, notifier service.MemberNotifier, generator genai.Generator) *testEnv {
	t.Helper()

	db := dbtest.Open(t)
	store := repository.NewStore(db)
	validate := domain.NewValidator()
	m := metrics.New()
	tokens := auth.NewTokenManager("test_secret", time.Hour)

	env := &testEnv{db: db, store: store, metrics: m, tokens: tokens}
	env.audit = service.NewAccessAuditService(store)
	env.accounts = service.NewAccountService(store, auth.NewPasswordHasherWithCost(bcrypt.MinCost), tokens, notifier, validate)
	cache := service.NewCredentialCache(service.CacheConfig{Size: 16, TTL: time.Minute}, m)
	env.applications = service.NewApplicationService(store, cache, env.audit, m, validate)
	env.analytics = service.NewAnalyticsService(store, env.applications)
	env.personas = service.NewPersonaService(store, env.audit, validate)
	env.campaigns = service.NewCampaignService(store, env.personas, env.audit, validate)
	env.contents = service.NewContentService(store, env.audit, validate)
	env.generation = service.NewGenerationService(store, generator, env.applications, env.personas, env.campaigns, m, validate)
	return env
}

// signupOrg creates an organization account and returns its admin principal.
func (e *testEnv) signupOrg(t *testing.T, orgName, email string) *auth.Principal {
	t.Helper()

	result, err := e.accounts.Signup(context.Background(), service.SignupInput{
		Name:             "Admin " + orgName,
		Email:            email,
		Password:         "password123",
		AccountType:      service.AccountOrganization,
		OrganizationName: orgName,
	})
	require.NoError(t, err)
	return auth.PrincipalFromUser(result.User)
}

// machinePrincipal is what the application authenticator produces for app.
func machinePrincipal(app *model.Application) *auth.Principal {
	return &auth.Principal{
		Kind:           auth.KindApplication,
		OrgID:          app.OrganizationID,
		ApplicationID:  app.ApplicationID,
		ApplicationRef: app.ID,
	}
}

func (e *testEnv) createApplication(t *testing.T, p *auth.Principal, name string) *model.Application {
	t.Helper()

	app, err := e.applications.Create(context.Background(), p, service.CreateApplicationInput{Name: name})
	require.NoError(t, err)
	return app
}

func (e *testEnv) addPlatformUsers(t *testing.T, app *model.Application, inputs ...service.PlatformUserInput) {
	t.Helper()

	for _, in := range inputs {
		_, err := e.applications.AddPlatformUser(context.Background(), machinePrincipal(app), in)
		require.NoError(t, err)
	}
}

func (e *testEnv) createPersona(t *testing.T, p *auth.Principal, name string) *model.Persona {
	t.Helper()

	persona, err := e.personas.Create(context.Background(), p, service.CreatePersonaInput{
		Name:        name,
		Description: "A representative customer",
		Demographics: model.PersonaDemographics{
			AgeRange:   "25-34",
			Income:     "$50k-$75k",
			Location:   "Berlin",
			Education:  "Bachelor's",
			Occupation: "Engineer",
		},
		Behaviors: model.PersonaBehaviors{
			DigitalHabits:            []string{"podcasts"},
			PurchasingBehavior:       []string{"researches first"},
			CommunicationPreferences: []string{"email"},
			PainPoints:               []string{"time"},
			Motivations:              []string{"growth"},
		},
		Preferences: model.PersonaPreferences{
			ContentTypes:      []string{"guides"},
			Channels:          []string{"linkedin"},
			MessagingTone:     "practical",
			ValuePropositions: []string{"saves time"},
			BrandAttributes:   []string{"reliable"},
		},
	})
	require.NoError(t, err)
	return persona
}

func (e *testEnv) createCampaign(t *testing.T, p *auth.Principal, persona *model.Persona, name string) *model.Campaign {
	t.Helper()

	campaign, err := e.campaigns.Create(context.Background(), p, service.CreateCampaignInput{
		Name:        name,
		Description: "Launch campaign",
		Strategy:    "Lead with case studies",
		PersonaID:   persona.ID,
	})
	require.NoError(t, err)
	return campaign
}

func (e *testEnv) count(t *testing.T, m any) int64 {
	t.Helper()

	var n int64
	require.NoError(t, e.db.Model(m).Count(&n).Error)
	return n
}

func ptr[T any](v T) *T {
	return &v
}

func publicMessage(err error) string {
	msg, _ := domain.PublicMessage(err)
	return msg
}
