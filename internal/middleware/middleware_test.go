package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dangerclosesec/audiencelab/internal/audit"
	"github.com/dangerclosesec/audiencelab/internal/auth"
	"github.com/dangerclosesec/audiencelab/internal/domain"
	"github.com/dangerclosesec/audiencelab/internal/metrics"
	"github.com/dangerclosesec/audiencelab/internal/middleware"
	"github.com/dangerclosesec/audiencelab/internal/model"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures what the middleware asked to be written.
type recorder struct {
	err      error
	fallback string
}

func (rc *recorder) Error(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	rc.err = err
	rc.fallback = fallback
	w.WriteHeader(http.StatusTeapot)
}

type authFunc func(r *http.Request) (*auth.Principal, error)

func (f authFunc) Authenticate(r *http.Request) (*auth.Principal, error) {
	return f(r)
}

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestAuthenticate(t *testing.T) {
	user := &auth.Principal{Kind: auth.KindUser, UserID: uuid.New(), OrgID: uuid.New(), Role: model.RoleMember}

	t.Run("stores principal", func(t *testing.T) {
		rs := &recorder{}
		var seen *auth.Principal
		h := middleware.Authenticate(authFunc(func(*http.Request) (*auth.Principal, error) { return user, nil }), rs)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = auth.FromContext(r.Context())
			}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, user, seen)
		assert.NoError(t, rs.err)
	})

	t.Run("stops on failure", func(t *testing.T) {
		rs := &recorder{}
		called := false
		h := middleware.Authenticate(authFunc(func(*http.Request) (*auth.Principal, error) {
			return nil, domain.ErrUnauthenticated
		}), rs)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.False(t, called)
		assert.ErrorIs(t, rs.err, domain.ErrUnauthenticated)
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	orgID := uuid.New()
	tests := []struct {
		name    string
		p       *auth.Principal
		wantErr error
	}{
		{"admin", &auth.Principal{Kind: auth.KindUser, OrgID: orgID, Role: model.RoleAdmin}, nil},
		{"member", &auth.Principal{Kind: auth.KindUser, OrgID: orgID, Role: model.RoleMember}, domain.ErrForbidden},
		{"application", &auth.Principal{Kind: auth.KindApplication, OrgID: orgID, Role: model.RoleAdmin}, domain.ErrForbidden},
		{"anonymous", nil, domain.ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := &recorder{}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.p != nil {
				req = req.WithContext(auth.WithPrincipal(req.Context(), tt.p))
			}

			rec := httptest.NewRecorder()
			middleware.RequireAdmin(rs)(ok).ServeHTTP(rec, req)

			if tt.wantErr == nil {
				assert.Equal(t, http.StatusNoContent, rec.Code)
				assert.NoError(t, rs.err)
				return
			}
			assert.ErrorIs(t, rs.err, tt.wantErr)
		})
	}
}

func TestRecovery(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	rs := &recorder{}

	h := chimw.RequestID(middleware.Recovery(logger, rs)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "Internal server error", rs.fallback)
	assert.Contains(t, logs.String(), "boom")
	assert.Contains(t, logs.String(), `"request_id"`)

	abort := middleware.Recovery(logger, rs)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		abort.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestAuditContext(t *testing.T) {
	var info audit.RequestInfo
	h := chimw.RequestID(middleware.AuditContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info = audit.RequestInfoFrom(r.Context())
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:5000"
	req.Header.Set("User-Agent", "integration/1.0")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.NotEmpty(t, info.RequestID)
	assert.Equal(t, "192.0.2.7:5000", info.ClientIP)
	assert.Equal(t, "integration/1.0", info.UserAgent)
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	m := metrics.New()
	r := chi.NewRouter()
	r.Use(middleware.Metrics(m))
	r.Get("/campaigns/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/campaigns/"+id, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, float64(3), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/campaigns/{id}", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")))
}

func TestLoggingWritesOneLine(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	h := middleware.Logging(logger)(ok)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/personas", nil))

	assert.Equal(t, 1, bytes.Count(logs.Bytes(), []byte("\n")))
	assert.Contains(t, logs.String(), `"status":204`)
	assert.Contains(t, logs.String(), `"path":"/api/personas"`)
	assert.Contains(t, logs.String(), `"request_id"`)
}
