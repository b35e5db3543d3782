// internal/handler/common.go
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dangerclosesec/audiencelab/internal/auth"
	"github.com/dangerclosesec/audiencelab/internal/domain"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// Envelope is the body of every API response.
type Envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    any                 `json:"data,omitempty"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// Responder writes envelopes. Detailed adds the raw error text to 500
// responses and must be off in production.
type Responder struct {
	Detailed bool
}

func NewResponder(detailed bool) *Responder {
	return &Responder{Detailed: detailed}
}

// JSON writes a success envelope.
func (rs *Responder) JSON(w http.ResponseWriter, r *http.Request, code int, message string, data any) {
	respondWithJSON(w, r, code, Envelope{Success: true, Message: message, Data: data})
}

// Error maps err onto a status code and a client-safe message. fallback is
// used for unexpected errors.
func (rs *Responder) Error(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	code, message := classify(err)
	if fallback == "" {
		fallback = "Internal server error"
	}

	env := Envelope{Success: false, Message: message}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		env.Errors = verr.Fields
	}

	if code == http.StatusInternalServerError {
		env.Message = fallback
		slog.ErrorContext(r.Context(), fallback, "error", err, "request_id", chimw.GetReqID(r.Context()))
		if rs.Detailed {
			env.Error = err.Error()
		}
	} else if public, ok := domain.PublicMessage(err); ok {
		env.Message = public
	}

	respondWithJSON(w, r, code, env)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "Validation failed"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid request payload"
	case errors.Is(err, domain.ErrInsufficientData):
		return http.StatusBadRequest, "Not enough data to complete the request"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusBadRequest, "Invalid status transition"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "Not authenticated"
	case errors.Is(err, domain.ErrInvalidAppKey):
		return http.StatusForbidden, "Invalid application key"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Access denied"
	case errors.Is(err, domain.ErrApplicationNotFound):
		return http.StatusNotFound, "Application not found or access denied"
	case errors.Is(err, domain.ErrPersonaNotFound):
		return http.StatusNotFound, "Persona not found or access denied"
	case errors.Is(err, domain.ErrCampaignNotFound):
		return http.StatusNotFound, "Campaign not found or access denied"
	case errors.Is(err, domain.ErrContentNotFound):
		return http.StatusNotFound, "Content not found or access denied"
	case errors.Is(err, domain.ErrOrganizationNotFound):
		return http.StatusNotFound, "Organization not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return http.StatusConflict, "User with this email already exists"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "Resource already exists"
	default:
		return http.StatusInternalServerError, ""
	}
}

// decodeJSON reads one JSON value from the body into dst. An empty body
// leaves dst untouched.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()

	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return domain.Errorf(domain.ErrInvalidInput, "Invalid request payload")
	}
	return nil
}

// principal returns the caller installed by the authentication middleware.
func principal(r *http.Request) (*auth.Principal, error) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		return nil, domain.Errorf(domain.ErrUnauthenticated, "Not authenticated")
	}
	return p, nil
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, r *http.Request, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.ErrorContext(r.Context(), "encoding response", "error", err, "request_id", chimw.GetReqID(r.Context()))
	}
}
