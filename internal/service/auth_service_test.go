package service

import (
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servifix-backend/internal/config"
	"servifix-backend/internal/domain"
	"servifix-backend/internal/store"
)

func newAuthService(t *testing.T) (AuthService, domain.Staff) {
	t.Helper()
	st := store.New()
	staff, err := st.AddStaff(store.StaffInput{
		Name: "Ana Admin", Email: "ana@servifix.do", Role: domain.RoleAdmin,
	})
	require.NoError(t, err)

	svc := AuthService{
		Config: config.Config{JWTSecret: "test-secret", AccessTokenTTL: time.Hour},
		Store:  st,
		Logger: slog.Default(),
	}
	return svc, staff
}

func TestLoginWithAccessKey(t *testing.T) {
	svc, staff := newAuthService(t)
	require.NoError(t, svc.SetAccessKey(staff.ID, "1234"))

	result, err := svc.Login("ana@servifix.do", "1234")
	require.NoError(t, err)
	assert.Equal(t, staff.ID, result.Staff.ID)
	assert.NotEmpty(t, result.AccessToken)

	token, err := jwt.Parse(result.AccessToken, func(tok *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, staff.ID, claims["sub"])
	assert.Equal(t, string(domain.RoleAdmin), claims["role"])
	assert.Equal(t, "access", claims["token_type"])
}

func TestLoginRejectsWrongKey(t *testing.T) {
	svc, staff := newAuthService(t)
	require.NoError(t, svc.SetAccessKey(staff.ID, "1234"))

	_, err := svc.Login("ana@servifix.do", "4321")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.Login("nadie@servifix.do", "1234")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsStaffWithoutKey(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.Login("ana@servifix.do", "1234")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSetAccessKeyMinLength(t *testing.T) {
	svc, staff := newAuthService(t)
	err := svc.SetAccessKey(staff.ID, "123")
	assert.True(t, store.IsValidation(err))
}

func TestRemoveAccessKeyDisablesLogin(t *testing.T) {
	svc, staff := newAuthService(t)
	require.NoError(t, svc.SetAccessKey(staff.ID, "1234"))
	require.NoError(t, svc.RemoveAccessKey(staff.ID))

	_, err := svc.Login("ana@servifix.do", "1234")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
