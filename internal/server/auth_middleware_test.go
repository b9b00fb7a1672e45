package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servifix-backend/internal/domain"
	"servifix-backend/internal/server/authctx"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func accessClaims(role domain.StaffRole) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":        "staff-1",
		"email":      "staff@servifix.do",
		"role":       string(role),
		"token_type": "access",
		"exp":        time.Now().Add(time.Hour).Unix(),
	}
}

func protectedEcho(t *testing.T) http.Handler {
	t.Helper()
	return AuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		staff := authctx.FromContext(r.Context())
		require.NotNil(t, staff)
		_, _ = w.Write([]byte(staff.ID))
	}))
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, accessClaims(domain.RoleAdmin)))
	rec := httptest.NewRecorder()
	protectedEcho(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "staff-1", rec.Body.String())
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	protectedEcho(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	claims := accessClaims(domain.RoleAdmin)
	claims["exp"] = time.Now().Add(-time.Hour).Unix()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, claims))
	rec := httptest.NewRecorder()
	protectedEcho(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsWrongTokenType(t *testing.T) {
	claims := accessClaims(domain.RoleAdmin)
	claims["token_type"] = "refresh"

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, claims))
	rec := httptest.NewRecorder()
	protectedEcho(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(domain.RoleAdmin, domain.RoleCoordinator)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	run := func(role domain.StaffRole) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := authctx.WithCurrentStaff(req.Context(), authctx.CurrentStaff{ID: "staff-1", Role: role})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req.WithContext(ctx))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, run(domain.RoleAdmin))
	assert.Equal(t, http.StatusOK, run(domain.RoleCoordinator))
	assert.Equal(t, http.StatusForbidden, run(domain.RoleTechnician))

	// No identity at all.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
