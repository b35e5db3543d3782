// internal/service/account.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/dangerclosesec/audiencelab/internal/auth"
	"github.com/dangerclosesec/audiencelab/internal/domain"
	"github.com/dangerclosesec/audiencelab/internal/model"
	"github.com/dangerclosesec/audiencelab/internal/repository"
	"github.com/go-playground/validator/v10"
)

//go:generate mockgen -typed -source=./account.go -destination=../mocks/mock_member_notifier.go -package=mocks MemberNotifier

// MemberNotifier is told when a user joins an existing organization as a member.
type MemberNotifier interface {
	NotifyMemberJoined(ctx context.Context, org *model.Organization, member *model.User, admins []*model.User) error
}

type AccountType string

const (
	AccountIndividual   AccountType = "individual"
	AccountOrganization AccountType = "organization"
)

type SignupInput struct {
	Name                 string      `json:"name" validate:"required,min=2,max=200"`
	Email                string      `json:"email" validate:"required,email,max=320"`
	Password             string      `json:"password" validate:"required,min=8,maxbytes=72"`
	AccountType          AccountType `json:"accountType" validate:"required,oneof=individual organization"`
	OrganizationName     string      `json:"organizationName" validate:"required_if=AccountType organization,max=200"`
	ExistingOrganization string      `json:"existingOrganization" validate:"max=200"`
}

func (in *SignupInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.OrganizationName = strings.TrimSpace(in.OrganizationName)
	in.ExistingOrganization = strings.TrimSpace(in.ExistingOrganization)
}

type SigninInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is returned by signup and signin. The handler turns Token into
// the session cookie.
type AuthResult struct {
	User  *model.User `json:"user"`
	Token string      `json:"-"`
}

type AccountService struct {
	store    *repository.Store
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenManager
	notifier MemberNotifier
	validate *validator.Validate

	dummyOnce sync.Once
	dummyHash string
}

func NewAccountService(
	store *repository.Store,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenManager,
	notifier MemberNotifier,
	validate *validator.Validate,
) *AccountService {
	return &AccountService{
		store:    store,
		hasher:   hasher,
		tokens:   tokens,
		notifier: notifier,
		validate: validate,
	}
}

// Signup creates the user and, depending on the account type, a new
// organization. Every row is written in one transaction.
func (s *AccountService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	in.normalize()
	if err := domain.Validate(s.validate, in); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	var (
		user   *model.User
		joined bool
	)
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Users.FindByEmail(ctx, in.Email); err == nil {
			return domain.ErrEmailAlreadyExists
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return err
		}

		org, role, err := s.resolveOrganization(ctx, tx, in)
		if err != nil {
			return err
		}

		user = &model.User{
			Email:          in.Email,
			PasswordHash:   hash,
			Name:           in.Name,
			Role:           role,
			OrganizationID: org.ID,
		}
		if err := tx.Users.Create(ctx, user); err != nil {
			return err
		}
		user.Organization = org
		joined = role == model.RoleMember
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(auth.PrincipalFromUser(user))
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	if joined {
		s.notifyAdmins(ctx, user)
	}

	slog.InfoContext(ctx, "user signed up",
		"user_id", user.ID,
		"org_id", user.OrganizationID,
		"role", user.Role,
	)

	return &AuthResult{User: user, Token: token}, nil
}

// resolveOrganization decides which organization the new user belongs to and
// with which role.
func (s *AccountService) resolveOrganization(ctx context.Context, tx *repository.Store, in SignupInput) (*model.Organization, model.Role, error) {
	switch {
	case in.AccountType == AccountOrganization:
		org := &model.Organization{Name: in.OrganizationName}
		if err := tx.Organizations.Create(ctx, org); err != nil {
			return nil, "", err
		}
		return org, model.RoleAdmin, nil

	case in.ExistingOrganization != "":
		org, err := tx.Organizations.FindByName(ctx, in.ExistingOrganization)
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return nil, "", domain.Errorf(domain.ErrOrganizationNotFound,
				"Organization %q does not exist. Please check the name or contact your organization administrator.",
				in.ExistingOrganization)
		}
		if err != nil {
			return nil, "", err
		}
		return org, model.RoleMember, nil

	default:
		org := &model.Organization{Name: model.PersonalOrganizationName(in.Name)}
		if err := tx.Organizations.Create(ctx, org); err != nil {
			return nil, "", err
		}
		return org, model.RoleAdmin, nil
	}
}

// notifyAdmins runs after commit. A failure here never fails the signup.
func (s *AccountService) notifyAdmins(ctx context.Context, member *model.User) {
	if s.notifier == nil {
		return
	}

	admins, err := s.store.Users.FindByOrganizationAndRole(ctx, member.OrganizationID, model.RoleAdmin)
	if err != nil {
		slog.WarnContext(ctx, "loading organization admins", "org_id", member.OrganizationID, "error", err)
		return
	}
	if len(admins) == 0 {
		return
	}

	if err := s.notifier.NotifyMemberJoined(ctx, member.Organization, member, admins); err != nil {
		slog.WarnContext(ctx, "notifying organization admins", "org_id", member.OrganizationID, "error", err)
	}
}

// Signin verifies credentials. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *AccountService) Signin(ctx context.Context, in SigninInput) (*AuthResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := domain.Validate(s.validate, in); err != nil {
		return nil, err
	}

	user, err := s.store.Users.FindByEmail(ctx, in.Email)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.hasher.Verify(in.Password, s.dummy())
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(auth.PrincipalFromUser(user))
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// dummy is compared against when the email is unknown so both failure paths
// cost one bcrypt comparison.
func (s *AccountService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("audiencelab-unknown-account")
	})
	return s.dummyHash
}

// Me re-reads the principal's user so the client sees current data rather
// than what was signed into the token.
func (s *AccountService) Me(ctx context.Context, p *auth.Principal) (*model.User, error) {
	user, err := s.store.Users.FindByID(ctx, p.UserID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
