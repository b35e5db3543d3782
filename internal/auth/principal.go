package auth

import (
	"context"

	"github.com/dangerclosesec/audiencelab/internal/model"
	"github.com/google/uuid"
)

type PrincipalKind string

const (
	KindUser        PrincipalKind = "user"
	KindApplication PrincipalKind = "application"
)

// Principal is the authenticated caller. It is built once per request and
// never modified afterwards.
type Principal struct {
	Kind   PrincipalKind `json:"kind"`
	UserID uuid.UUID     `json:"userId,omitempty"`
	Email  string        `json:"email,omitempty"`
	Name   string        `json:"name,omitempty"`
	OrgID  uuid.UUID     `json:"orgId"`
	Role   model.Role    `json:"role,omitempty"`

	// Set for KindApplication only.
	ApplicationID  string    `json:"applicationId,omitempty"`
	ApplicationRef uuid.UUID `json:"-"`
}

// PrincipalFromUser builds the session principal for a stored user.
func PrincipalFromUser(u *model.User) *Principal {
	return &Principal{
		Kind:   KindUser,
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		OrgID:  u.OrganizationID,
		Role:   u.Role,
	}
}

func (p *Principal) IsAdmin() bool {
	return p.Kind == KindUser && p.Role == model.RoleAdmin
}

// SubjectID identifies the principal in audit records.
func (p *Principal) SubjectID() string {
	if p.Kind == KindApplication {
		return p.ApplicationID
	}
	return p.UserID.String()
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}
