package auth

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dangerclosesec/audiencelab/internal/domain"
	"github.com/dangerclosesec/audiencelab/internal/model"
	"github.com/go-chi/chi/v5"
)

// maxCredentialBody bounds how much of a machine request body is buffered
// while extracting the application key.
const maxCredentialBody = 1 << 20

// Authenticator resolves the caller of a request. Each implementation accepts
// exactly one credential scheme.
type Authenticator interface {
	Authenticate(r *http.Request) (*Principal, error)
}

// SessionAuthenticator accepts the signed session cookie and nothing else.
type SessionAuthenticator struct {
	cookieName string
	tokens     *TokenManager
}

func NewSessionAuthenticator(cookieName string, tokens *TokenManager) *SessionAuthenticator {
	return &SessionAuthenticator{cookieName: cookieName, tokens: tokens}
}

func (a *SessionAuthenticator) Authenticate(r *http.Request) (*Principal, error) {
	return ResolveSession(r, a.cookieName, a.tokens)
}

// ResolveSession reads the session cookie and verifies it. Both failures match
// domain.ErrUnauthenticated and differ only in their client message.
func ResolveSession(r *http.Request, cookieName string, tokens *TokenManager) (*Principal, error) {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil, domain.Errorf(domain.ErrUnauthenticated, "No authentication token found")
	}

	p := tokens.Verify(cookie.Value)
	if p == nil {
		return nil, domain.Errorf(domain.ErrUnauthenticated, "Invalid or expired token")
	}
	return p, nil
}

// ApplicationLookup finds an application by its public id without tenant scope.
type ApplicationLookup interface {
	LookupApplication(ctx context.Context, applicationID string) (*model.Application, error)
}

// CredentialFailureRecorder is told about every rejected machine credential.
// app is nil when the application id is unknown.
type CredentialFailureRecorder interface {
	RecordCredentialFailure(ctx context.Context, applicationID string, app *model.Application)
}

// ApplicationAuthenticator accepts the application id from the path and the
// application key from the JSON body. Cookies and Authorization headers are
// never consulted.
type ApplicationAuthenticator struct {
	apps     ApplicationLookup
	recorder CredentialFailureRecorder
}

func NewApplicationAuthenticator(apps ApplicationLookup, recorder CredentialFailureRecorder) *ApplicationAuthenticator {
	return &ApplicationAuthenticator{apps: apps, recorder: recorder}
}

type credentialBody struct {
	ApplicationKey string `json:"applicationKey"`
}

func (a *ApplicationAuthenticator) Authenticate(r *http.Request) (*Principal, error) {
	ctx := r.Context()
	applicationID := chi.URLParam(r, "appId")
	if applicationID == "" {
		return nil, domain.Errorf(domain.ErrApplicationNotFound, "Application not found")
	}

	key, err := readApplicationKey(r)
	if err != nil {
		return nil, err
	}

	app, err := a.apps.LookupApplication(ctx, applicationID)
	if errors.Is(err, domain.ErrNotFound) {
		a.record(ctx, applicationID, nil)
		return nil, domain.Errorf(domain.ErrApplicationNotFound, "Application not found")
	}
	if err != nil {
		return nil, err
	}

	if !KeysMatch(key, app.ApplicationKey) {
		a.record(ctx, applicationID, app)
		return nil, domain.Errorf(domain.ErrInvalidAppKey, "Invalid application key")
	}

	return &Principal{
		Kind:           KindApplication,
		OrgID:          app.OrganizationID,
		ApplicationID:  app.ApplicationID,
		ApplicationRef: app.ID,
	}, nil
}

func (a *ApplicationAuthenticator) record(ctx context.Context, applicationID string, app *model.Application) {
	if a.recorder != nil {
		a.recorder.RecordCredentialFailure(ctx, applicationID, app)
	}
}

// readApplicationKey extracts applicationKey from the body and puts the body
// back so the handler can decode it again.
func readApplicationKey(r *http.Request) (string, error) {
	if r.Body == nil {
		return "", nil
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxCredentialBody))
	r.Body.Close()
	if err != nil {
		return "", fmt.Errorf("reading request body: %w", domain.ErrInvalidInput)
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))

	if len(bytes.TrimSpace(raw)) == 0 {
		return "", nil
	}

	var body credentialBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", fmt.Errorf("decoding request body: %w", domain.ErrInvalidInput)
	}
	return body.ApplicationKey, nil
}

// KeysMatch compares a supplied key with the stored one in constant time.
// An empty supplied key never matches.
func KeysMatch(supplied, stored string) bool {
	if supplied == "" || stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(stored)) == 1
}
