// internal/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/dangerclosesec/audiencelab/internal/auth"
	"github.com/dangerclosesec/audiencelab/internal/domain"
)

// ErrorResponder writes err as the API error envelope.
type ErrorResponder interface {
	Error(w http.ResponseWriter, r *http.Request, err error, fallback string)
}

// Authenticate resolves the caller with a and stores the principal on the
// request context. Requests that fail authentication never reach next.
func Authenticate(a auth.Authenticator, rs ErrorResponder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := a.Authenticate(r)
			if err != nil {
				rs.Error(w, r, err, "Authentication failed")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireAdmin rejects principals that are not organization admins. It must
// run after Authenticate.
func RequireAdmin(rs ErrorResponder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := auth.FromContext(r.Context())
			if !ok {
				rs.Error(w, r, domain.Errorf(domain.ErrUnauthenticated, "Not authenticated"), "")
				return
			}
			if !p.IsAdmin() {
				rs.Error(w, r, domain.Errorf(domain.ErrForbidden, "Admin access required"), "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
