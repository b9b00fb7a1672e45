package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"servifix-backend/internal/config"
	"servifix-backend/internal/domain"
	"servifix-backend/internal/store"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService signs staff in with their personal access key and issues
// the JWTs the API middleware expects.
type AuthService struct {
	Config config.Config
	Store  *store.Store
	Logger *slog.Logger
}

type AuthResult struct {
	AccessToken string
	Staff       domain.Staff
	ExpiresAt   time.Time
}

// Login checks the access key against the stored bcrypt hash. Staff
// without an issued key cannot sign in.
func (s AuthService) Login(email, accessKey string) (*AuthResult, error) {
	staff, err := s.Store.StaffByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if staff.AccessKeyHash == "" {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(staff.AccessKeyHash), []byte(accessKey)) != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.Config.AccessTokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        staff.ID,
		"email":      staff.Email,
		"role":       string(staff.Role),
		"token_type": "access",
		"exp":        expiresAt.Unix(),
		"iat":        time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(s.Config.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.Logger.Info("staff signed in", "staff", staff.ID, "role", staff.Role)
	return &AuthResult{AccessToken: signed, Staff: staff, ExpiresAt: expiresAt}, nil
}

// SetAccessKey hashes and stores a new access key for a staff member.
func (s AuthService) SetAccessKey(staffID, accessKey string) error {
	if len(accessKey) < 4 {
		return &store.ValidationError{Msg: "access key must be at least 4 characters"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(accessKey), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash access key: %w", err)
	}
	return s.Store.SetAccessKeyHash(staffID, string(hash))
}

// RemoveAccessKey revokes a staff member's key, locking them out.
func (s AuthService) RemoveAccessKey(staffID string) error {
	return s.Store.SetAccessKeyHash(staffID, "")
}
