// Package service implements the business operations behind the HTTP API.
// Every tenant-owned read and write takes the caller's principal and scopes
// the query to its organization.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Clock returns the current time. Services default to time.Now.
type Clock func() time.Time

func logWarn(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "error", err, "request_id", middleware.GetReqID(ctx))
	slog.WarnContext(ctx, msg, args...)
}

func logError(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "error", err, "request_id", middleware.GetReqID(ctx))
	slog.ErrorContext(ctx, msg, args...)
}
