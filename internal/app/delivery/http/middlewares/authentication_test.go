package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"telemed-service/internal/app/config"
	"telemed-service/internal/app/models"
	"telemed-service/internal/app/services/shared/identity"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/utils"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMiddlewares() *Middlewares {
	cfg := &config.InternalConfig{
		App: config.App{MaxRequests: 100, RequestTimeoutInSeconds: 5},
		JWT: config.AppJWT{Secret: "test-secret", ExpTimeInHour: 1},
	}
	return NewMiddlewares(zap.NewNop(), identity.NewJWTIdentityService(cfg, zap.NewNop()), cfg)
}

func issue(t *testing.T, m *Middlewares, who models.Identity) string {
	t.Helper()
	token, err := m.IdentityService.IssueToken(context.Background(), who)
	require.NoError(t, err)
	return token
}

// echoIdentity writes the authenticated user id into the body.
var echoIdentity = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	_, _ = w.Write([]byte(identity.UserID))
})

func TestMiddlewares_Authenticate(t *testing.T) {
	m := newTestMiddlewares()
	handler := m.Authenticate(echoIdentity)

	t.Run("Valid bearer token reaches the handler", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/wallet/balance", nil)
		req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+issue(t, m, models.Identity{UserID: "patient-1", Role: models.RolePatient}))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "patient-1", rec.Body.String())
	})

	t.Run("Missing header is unauthorized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wallet/balance", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Garbage token is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/wallet/balance", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer not-a-jwt")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestMiddlewares_RequireRoles(t *testing.T) {
	m := newTestMiddlewares()
	handler := m.Authenticate(m.RequireRoles(models.RoleAdmin)(echoIdentity))

	t.Run("Listed role passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/transactions", nil)
		req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+issue(t, m, models.Identity{UserID: "admin-1", Role: models.RoleAdmin}))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Other roles are forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/transactions", nil)
		req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+issue(t, m, models.Identity{UserID: "doctor-1", Role: models.RoleDoctor}))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Without authentication the request is unauthorized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		m.RequireRoles(models.RoleAdmin)(echoIdentity).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/transactions", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestMiddlewares_RequestIDMiddleware(t *testing.T) {
	m := newTestMiddlewares()
	var seen string
	handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = utils.GetRequestID(r.Context())
	}))

	t.Run("Client request id is kept", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(constvars.HeaderXRequestID, "req-42")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, "req-42", seen)
		assert.Equal(t, "req-42", rec.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("Missing request id is generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(constvars.HeaderXRequestID))
	})
}

func TestMiddlewares_ErrorHandler(t *testing.T) {
	m := newTestMiddlewares()
	handler := m.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
