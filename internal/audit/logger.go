package audit

import (
	"context"

	"github.com/dangerclosesec/audiencelab/internal/auth"
	"github.com/dangerclosesec/audiencelab/internal/model"
)

// Logger records refused accesses. Implementations must not change what the
// caller sees: a tenant lookup that failed is reported to the client the same
// way whether or not it was audited.
type Logger interface {
	// LogRefusedLookup records a tenant-scoped lookup of entityType/entityID by
	// p that found nothing in the caller's organization.
	LogRefusedLookup(ctx context.Context, p *auth.Principal, entityType, entityID string) error

	// LogCredentialFailure records a rejected application credential. app is
	// nil when applicationID matched no application.
	LogCredentialFailure(ctx context.Context, applicationID string, app *model.Application) error
}

// NoOpLogger is a logger that does nothing
type NoOpLogger struct{}

// LogRefusedLookup implements Logger.LogRefusedLookup
func (NoOpLogger) LogRefusedLookup(context.Context, *auth.Principal, string, string) error {
	return nil
}

// LogCredentialFailure implements Logger.LogCredentialFailure
func (NoOpLogger) LogCredentialFailure(context.Context, string, *model.Application) error {
	return nil
}
