// Package auth issues and validates the JWT session tokens used by the
// HTTP transport.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token fails signature or expiry checks.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrMissingToken is returned when no token was supplied.
	ErrMissingToken = errors.New("authorization token required")
)

// Claims carries the identity attached to a session token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 session tokens.
type TokenManager struct {
	secretKey     []byte
	tokenDuration time.Duration
	now           func() time.Time
}

// NewTokenManager constructs a manager from a shared secret and validity window.
func NewTokenManager(secretKey string, tokenDuration time.Duration) *TokenManager {
	return NewTokenManagerWithClock(secretKey, tokenDuration, nil)
}

// NewTokenManagerWithClock constructs a manager with an injected clock.
func NewTokenManagerWithClock(secretKey string, tokenDuration time.Duration, now func() time.Time) *TokenManager {
	if now == nil {
		now = time.Now
	}
	if tokenDuration <= 0 {
		tokenDuration = 24 * time.Hour
	}
	return &TokenManager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
		now:           now,
	}
}

// Issue signs a new token for the given user identity and returns the
// token alongside its expiry.
func (m *TokenManager) Issue(userID, email string) (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.tokenDuration)
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate parses a token and returns its claims when the signature and
// time bounds check out.
func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
