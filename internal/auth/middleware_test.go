package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/usrinivasan240-cpu/shareplate-api/internal/auth"
)

func newMiddleware(t *testing.T) (auth.Middleware, *auth.Service) {
	t.Helper()
	svc, err := auth.NewService(auth.Config{Secret: "middleware-test-secret", AccessTokenTTL: time.Minute})
	require.NoError(t, err)
	return auth.Middleware{Service: svc}, svc
}

func protectedEndpoint(m auth.Middleware) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return m.RequireAuth(m.RequireMenuWrite(ok))
}

func TestRequireAuthMissingToken(t *testing.T) {
	m, _ := newMiddleware(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/menu", nil)
	rec := httptest.NewRecorder()
	protectedEndpoint(m).ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireMenuWriteForbiddenForUserRole(t *testing.T) {
	m, svc := newMiddleware(t)
	token, _, err := svc.Sign("u1", auth.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/menu", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protectedEndpoint(m).ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireMenuWriteAllowsAdmins(t *testing.T) {
	m, svc := newMiddleware(t)
	for _, role := range []auth.Role{auth.RoleAdmin, auth.RoleSuperAdmin} {
		token, _, err := svc.Sign("u2", role)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/menu", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protectedEndpoint(m).ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code, "role %s", role)
	}
}

func TestRequireAuthRejectsGarbageToken(t *testing.T) {
	m, _ := newMiddleware(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/menu", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	protectedEndpoint(m).ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
