// Package auth issues and verifies the signed tokens that protect both the
// HTML surface (session cookie) and the JSON API (bearer token).
package auth

import (
	"context"
	"fmt"
	"time"

	"stockroom/internal/model"
	"stockroom/internal/repository"

	"github.com/dgrijalva/jwt-go"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// SessionCookie is the cookie carrying the HTML session token.
const SessionCookie = "stockroom_session"

// Manager authenticates staff accounts and signs tokens for them.
type Manager struct {
	users  repository.UserRepository
	secret []byte
	ttl    time.Duration
	logger zerolog.Logger
}

// NewManager creates an authentication manager.
func NewManager(users repository.UserRepository, secret string, ttl time.Duration, logger zerolog.Logger) *Manager {
	return &Manager{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger.With().Str("component", "auth").Logger(),
	}
}

// Login verifies the credentials against the stored bcrypt hash and returns
// a signed token on success.
func (m *Manager) Login(ctx context.Context, username, password string) (string, error) {
	user, err := m.users.GetByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		m.logger.Warn().Str("username", username).Msg("login attempt for unknown user")
		return "", model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		m.logger.Warn().Str("username", username).Msg("login attempt with wrong password")
		return "", model.ErrInvalidCredentials
	}

	return m.IssueToken(user.Username)
}

// IssueToken signs a token naming the staff account.
func (m *Manager) IssueToken(username string) (string, error) {
	claims := &jwt.StandardClaims{
		Subject:   username,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify checks signature and expiry and returns the account name the token
// was issued for.
func (m *Manager) Verify(tokenString string) (string, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	return claims.Subject, nil
}

// HashPassword produces a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// BootstrapAdmin ensures the configured staff account exists. Called at
// startup; a blank username disables the bootstrap.
func (m *Manager) BootstrapAdmin(ctx context.Context, username, password string) error {
	if username == "" {
		return nil
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	if err := m.users.Upsert(ctx, username, hash); err != nil {
		return err
	}
	m.logger.Info().Str("username", username).Msg("staff account bootstrapped")
	return nil
}
