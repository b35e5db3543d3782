package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dangerclosesec/audiencelab/internal/auth"
	"github.com/dangerclosesec/audiencelab/internal/domain"
	"github.com/dangerclosesec/audiencelab/internal/mocks"
	"github.com/dangerclosesec/audiencelab/internal/model"
	"github.com/dangerclosesec/audiencelab/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSignupOrganizationAccount(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	ctx := context.Background()

	result, err := env.accounts.Signup(ctx, service.SignupInput{
		Name:             "Ada Lovelace",
		Email:            "  Ada@Example.com ",
		Password:         "password123",
		AccountType:      service.AccountOrganization,
		OrganizationName: "Acme",
	})
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", result.User.Email)
	assert.Equal(t, model.RoleAdmin, result.User.Role)
	require.NotNil(t, result.User.Organization)
	assert.Equal(t, "Acme", result.User.Organization.Name)
	assert.NotEqual(t, "password123", result.User.PasswordHash)

	p := env.tokens.Verify(result.Token)
	require.NotNil(t, p, "signup must issue a valid session token")
	assert.Equal(t, result.User.ID, p.UserID)
	assert.Equal(t, result.User.OrganizationID, p.OrgID)

	org, err := env.store.Organizations.FindByName(ctx, "Acme")
	require.NoError(t, err)
	assert.Equal(t, result.User.OrganizationID, org.ID)
}

func TestSignupJoinsExistingOrganization(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	notifier := mocks.NewMockMemberNotifier(ctrl)
	env := newTestEnv(t, notifier, nil)
	ctx := context.Background()

	admin := env.signupOrg(t, "Acme", "admin@acme.test")
	orgsBefore := env.count(t, &model.Organization{})

	notifier.EXPECT().
		NotifyMemberJoined(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, org *model.Organization, member *model.User, admins []*model.User) error {
			assert.Equal(t, "Acme", org.Name)
			assert.Equal(t, "member@acme.test", member.Email)
			require.Len(t, admins, 1)
			assert.Equal(t, admin.UserID, admins[0].ID)
			return nil
		})

	result, err := env.accounts.Signup(ctx, service.SignupInput{
		Name:                 "Grace Hopper",
		Email:                "member@acme.test",
		Password:             "password123",
		AccountType:          service.AccountIndividual,
		ExistingOrganization: "acme",
	})
	require.NoError(t, err)

	assert.Equal(t, model.RoleMember, result.User.Role)
	assert.Equal(t, admin.OrgID, result.User.OrganizationID)
	assert.Equal(t, orgsBefore, env.count(t, &model.Organization{}), "joining must not create an organization")
}

func TestSignupNotificationFailureKeepsAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	notifier := mocks.NewMockMemberNotifier(ctrl)
	env := newTestEnv(t, notifier, nil)

	env.signupOrg(t, "Acme", "admin@acme.test")
	notifier.EXPECT().
		NotifyMemberJoined(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("smtp down"))

	result, err := env.accounts.Signup(context.Background(), service.SignupInput{
		Name:                 "Grace Hopper",
		Email:                "member@acme.test",
		Password:             "password123",
		AccountType:          service.AccountIndividual,
		ExistingOrganization: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleMember, result.User.Role)
}

func TestSignupUnknownOrganization(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	_, err := env.accounts.Signup(context.Background(), service.SignupInput{
		Name:                 "Grace Hopper",
		Email:                "grace@example.com",
		Password:             "password123",
		AccountType:          service.AccountIndividual,
		ExistingOrganization: "DoesNotExist",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	msg, ok := domain.PublicMessage(err)
	require.True(t, ok)
	assert.Contains(t, msg, `"DoesNotExist" does not exist`)

	assert.Zero(t, env.count(t, &model.User{}))
	assert.Zero(t, env.count(t, &model.Organization{}))
}

func TestSignupIndividualCreatesPersonalOrganization(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	result, err := env.accounts.Signup(context.Background(), service.SignupInput{
		Name:        "Ada Lovelace",
		Email:       "ada@example.com",
		Password:    "password123",
		AccountType: service.AccountIndividual,
	})
	require.NoError(t, err)

	assert.Equal(t, model.RoleAdmin, result.User.Role)
	assert.Equal(t, "Ada Lovelace's Organization", result.User.Organization.Name)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	env.signupOrg(t, "Acme", "ada@example.com")

	_, err := env.accounts.Signup(context.Background(), service.SignupInput{
		Name:             "Someone Else",
		Email:            "ADA@example.com",
		Password:         "password123",
		AccountType:      service.AccountOrganization,
		OrganizationName: "Other",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, int64(1), env.count(t, &model.Organization{}), "failed signup must not leave an organization behind")
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	tests := []struct {
		name  string
		input service.SignupInput
		field string
	}{
		{
			name:  "organization name required",
			input: service.SignupInput{Name: "Ada", Email: "ada@example.com", Password: "password123", AccountType: service.AccountOrganization},
			field: "organizationName",
		},
		{
			name:  "short password",
			input: service.SignupInput{Name: "Ada", Email: "ada@example.com", Password: "short", AccountType: service.AccountIndividual},
			field: "password",
		},
		{
			name:  "password over 72 bytes",
			input: service.SignupInput{Name: "Ada", Email: "ada@example.com", Password: strings.Repeat("é", 40), AccountType: service.AccountIndividual},
			field: "password",
		},
		{
			name:  "short name",
			input: service.SignupInput{Name: "A", Email: "ada@example.com", Password: "password123", AccountType: service.AccountIndividual},
			field: "name",
		},
		{
			name:  "bad email",
			input: service.SignupInput{Name: "Ada", Email: "not-an-email", Password: "password123", AccountType: service.AccountIndividual},
			field: "email",
		},
		{
			name:  "unknown account type",
			input: service.SignupInput{Name: "Ada", Email: "ada@example.com", Password: "password123", AccountType: "team"},
			field: "accountType",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.accounts.Signup(context.Background(), tt.input)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			fields := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				fields = append(fields, f.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}

	assert.Zero(t, env.count(t, &model.User{}))
}

func TestSignin(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	ctx := context.Background()
	admin := env.signupOrg(t, "Acme", "ada@example.com")

	t.Run("correct password", func(t *testing.T) {
		result, err := env.accounts.Signin(ctx, service.SigninInput{Email: "ADA@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, admin.UserID, result.User.ID)
		assert.NotNil(t, env.tokens.Verify(result.Token))
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		_, wrongPassword := env.accounts.Signin(ctx, service.SigninInput{Email: "ada@example.com", Password: "nope-nope"})
		_, unknownEmail := env.accounts.Signin(ctx, service.SigninInput{Email: "nobody@example.com", Password: "password123"})

		assert.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
		assert.ErrorIs(t, unknownEmail, domain.ErrInvalidCredentials)
		assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	})
}

func TestMeReadsCurrentUser(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	admin := env.signupOrg(t, "Acme", "ada@example.com")

	user, err := env.accounts.Me(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)

	_, err = env.accounts.Me(context.Background(), &auth.Principal{Kind: auth.KindUser})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
