package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCredential covers every way a token can fail verification:
// malformed, bad signature, wrong algorithm, expired, or missing subject.
// Callers get one signal on purpose so responses never leak which check
// tripped.
var ErrInvalidCredential = errors.New("invalid credential")

type Claims struct {
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 access tokens. The secret and TTL are
// loaded once at startup; Manager itself is read-only and safe for
// concurrent use.
type Manager struct {
	secret    []byte
	accessTTL time.Duration
}

func NewManager(secret string, accessTTL time.Duration) *Manager {
	return &Manager{
		secret:    []byte(secret),
		accessTTL: accessTTL,
	}
}

// Issue mints a signed access token with subject = the user's email and an
// expiry of now + the configured TTL.
func (m *Manager) Issue(email string) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify checks signature and expiry and returns the subject email.
func (m *Manager) Verify(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Enforce HMAC; anything else is an attacker picking the algorithm.
		_, ok := t.Method.(*jwt.SigningMethodHMAC)

		if !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})

	if err != nil {
		return "", ErrInvalidCredential
	}

	claims, ok := token.Claims.(*Claims)

	if !ok || !token.Valid {
		return "", ErrInvalidCredential
	}

	// A token without a subject is structurally fine but unusable.
	if claims.Subject == "" {
		return "", ErrInvalidCredential
	}

	return claims.Subject, nil
}
