package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dangerclosesec/audiencelab/internal/audit"
	"github.com/dangerclosesec/audiencelab/internal/domain"
	"github.com/dangerclosesec/audiencelab/internal/metrics"
	"github.com/dangerclosesec/audiencelab/internal/mocks"
	"github.com/dangerclosesec/audiencelab/internal/model"
	"github.com/dangerclosesec/audiencelab/internal/repository"
	"github.com/dangerclosesec/audiencelab/internal/service"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCreateApplication(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	admin := env.signupOrg(t, "Acme", "admin@acme.test")

	app := env.createApplication(t, admin, "  Storefront ")

	assert.Equal(t, "Storefront", app.Name)
	assert.True(t, strings.HasPrefix(app.ApplicationID, model.ApplicationIDPrefix))
	assert.Len(t, app.ApplicationID, len(model.ApplicationIDPrefix)+16)
	assert.True(t, strings.HasPrefix(app.ApplicationKey, model.ApplicationKeyPrefix))
	assert.Len(t, app.ApplicationKey, len(model.ApplicationKeyPrefix)+48)
	assert.Equal(t, admin.OrgID, app.OrganizationID)

	_, err := env.applications.Create(context.Background(), admin, service.CreateApplicationInput{Name: "   "})
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestListApplicationsNewestFirst(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	admin := env.signupOrg(t, "Acme", "admin@acme.test")
	other := env.signupOrg(t, "Globex", "admin@globex.test")

	first := env.createApplication(t, admin, "first")
	time.Sleep(5 * time.Millisecond)
	second := env.createApplication(t, admin, "second")
	env.createApplication(t, other, "not mine")

	apps, err := env.applications.List(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, second.ID, apps[0].ID)
	assert.Equal(t, first.ID, apps[1].ID)

	again, err := env.applications.List(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, apps, again)
}

func TestAddPlatformUser(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	admin := env.signupOrg(t, "Acme", "admin@acme.test")
	app := env.createApplication(t, admin, "Storefront")

	user, err := env.applications.AddPlatformUser(context.Background(), machinePrincipal(app), service.PlatformUserInput{
		Company:         " Initech ",
		JobTitle:        "Engineer",
		Industry:        "Technology",
		MonthlySpendUSD: ptr(42.5),
	})
	require.NoError(t, err)

	assert.Equal(t, "Initech", user.Company)
	assert.True(t, user.Active, "active defaults to true")
	assert.Equal(t, app.ID, user.ApplicationID)
	assert.Equal(t, app.OrganizationID, user.OrganizationID)
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.PlatformUsersIngested))

	t.Run("session principals cannot ingest", func(t *testing.T) {
		_, err := env.applications.AddPlatformUser(context.Background(), admin, service.PlatformUserInput{})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("negative spend is rejected", func(t *testing.T) {
		_, err := env.applications.AddPlatformUser(context.Background(), machinePrincipal(app), service.PlatformUserInput{
			MonthlySpendUSD: ptr(-1.0),
		})
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	assert.Equal(t, int64(1), env.count(t, &model.PlatformUser{}))
}

func TestFindApplicationAcrossTenants(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	ctx := context.Background()
	acme := env.signupOrg(t, "Acme", "admin@acme.test")
	globex := env.signupOrg(t, "Globex", "admin@globex.test")
	app := env.createApplication(t, acme, "Storefront")

	_, err := env.applications.Find(ctx, globex, app.ApplicationID)
	assert.ErrorIs(t, err, domain.ErrApplicationNotFound)

	_, err = env.applications.Find(ctx, globex, "app_doesnotexist")
	assert.ErrorIs(t, err, domain.ErrApplicationNotFound)

	page, err := env.audit.Query(ctx, globex, repository.QueryParams{})
	require.NoError(t, err)
	require.Len(t, page.Logs, 2)
	for _, l := range page.Logs {
		assert.Equal(t, model.ActionRefusedLookup, l.ActionType, "tenant entries must not reveal whether %s exists", l.EntityID)
		assert.Equal(t, globex.UserID.String(), l.SubjectID)
		assert.Empty(t, l.Context)
	}

	ops, err := env.audit.QueryOperator(ctx, repository.QueryParams{})
	require.NoError(t, err)
	require.Len(t, ops.Logs, 2)
	actions := map[string]string{}
	for _, l := range ops.Logs {
		actions[l.EntityID] = l.ActionType
		assert.Nil(t, l.OrganizationID)
		assert.Equal(t, globex.OrgID.String(), l.Context["requesterOrgId"])
	}
	assert.Equal(t, model.ActionCrossTenantAccess, actions[app.ApplicationID])
	assert.Equal(t, model.ActionResourceMissing, actions["app_doesnotexist"])

	acmePage, err := env.audit.Query(ctx, acme, repository.QueryParams{})
	require.NoError(t, err)
	assert.Empty(t, acmePage.Logs, "audit entries belong to the requesting organization")
}

func TestRecordCredentialFailure(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	ctx := audit.WithRequestInfo(context.Background(), audit.RequestInfo{RequestID: "req-1", ClientIP: "10.0.0.1", UserAgent: "curl"})
	admin := env.signupOrg(t, "Acme", "admin@acme.test")
	app := env.createApplication(t, admin, "Storefront")

	env.applications.RecordCredentialFailure(ctx, app.ApplicationID, app)
	env.applications.RecordCredentialFailure(ctx, "app_unknown", nil)

	page, err := env.audit.Query(ctx, admin, repository.QueryParams{ActionType: model.ActionAppKeyMismatch})
	require.NoError(t, err)
	require.Len(t, page.Logs, 1)
	entry := page.Logs[0]
	assert.Equal(t, app.ApplicationID, entry.EntityID)
	assert.Equal(t, "req-1", entry.RequestID)
	assert.Equal(t, "10.0.0.1", entry.ClientIP)
	assert.Equal(t, "Storefront", entry.Context["applicationName"])
	require.NotNil(t, entry.Result)
	assert.False(t, *entry.Result)

	assert.Equal(t, int64(2), env.count(t, &model.AccessAuditLog{}))

	ops, err := env.audit.QueryOperator(ctx, repository.QueryParams{ActionType: model.ActionAppUnknown})
	require.NoError(t, err)
	require.Len(t, ops.Logs, 1)
	assert.Equal(t, "app_unknown", ops.Logs[0].EntityID)
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.CredentialRejections.WithLabelValues(model.ActionAppUnknown)))
}

func TestLookupApplicationIsCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app := &model.Application{ID: uuid.New(), ApplicationID: "app_cached", ApplicationKey: "sk_key", OrganizationID: uuid.New()}

	apps := mocks.NewMockApplicationRepositoryIface(ctrl)
	apps.EXPECT().FindByCredentialID(gomock.Any(), "app_cached").Return(app, nil).Times(1)
	apps.EXPECT().FindByCredentialID(gomock.Any(), "app_missing").Return(nil, domain.ErrApplicationNotFound).Times(2)

	m := metrics.New()
	store := &repository.Store{Applications: apps}
	cache := service.NewCredentialCache(service.CacheConfig{Size: 8, TTL: time.Minute}, m)
	svc := service.NewApplicationService(store, cache, nil, m, domain.NewValidator())

	for range 3 {
		got, err := svc.LookupApplication(context.Background(), "app_cached")
		require.NoError(t, err)
		assert.Equal(t, "sk_key", got.ApplicationKey)
	}

	for range 2 {
		_, err := svc.LookupApplication(context.Background(), "app_missing")
		assert.ErrorIs(t, err, domain.ErrNotFound, "misses are not cached")
	}

	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("application_credentials")))
}

func TestCredentialCacheDisabled(t *testing.T) {
	cache := service.NewCredentialCache(service.CacheConfig{Size: 0}, nil)
	cache.Set(&model.Application{ApplicationID: "app_x"})

	_, ok := cache.Get("app_x")
	assert.False(t, ok)
	assert.Zero(t, cache.Len())
}
