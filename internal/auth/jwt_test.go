package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/moneyseed/moneyseed/internal/auth"
)

const testSecret = "test-secret-key"

func TestIssueAndVerify(t *testing.T) {
	m := auth.NewManager(testSecret, time.Hour)

	token, err := m.Issue("alice@example.com")

	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	email, err := m.Verify(token)

	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}

	if email != "alice@example.com" {
		t.Fatalf("Verify subject = %q, want alice@example.com", email)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	m := auth.NewManager(testSecret, -time.Minute)

	token, err := m.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = m.Verify(token)

	if !errors.Is(err, auth.ErrInvalidCredential) {
		t.Fatalf("expired token: got %v, want ErrInvalidCredential", err)
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	m := auth.NewManager(testSecret, time.Hour)

	token, err := m.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// flip one character in the signature segment (not the final one, whose
	// low bits are padding)
	pos := len(token) - 2
	altered := byte('A')
	if token[pos] == 'A' {
		altered = 'B'
	}
	tampered := token[:pos] + string(altered) + token[pos+1:]

	_, err = m.Verify(tampered)

	if !errors.Is(err, auth.ErrInvalidCredential) {
		t.Fatalf("tampered token: got %v, want ErrInvalidCredential", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	m := auth.NewManager(testSecret, time.Hour)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := m.Verify(raw)

		if !errors.Is(err, auth.ErrInvalidCredential) {
			t.Fatalf("Verify(%q): got %v, want ErrInvalidCredential", raw, err)
		}
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := auth.NewManager("one-secret", time.Hour)
	verifier := auth.NewManager("another-secret", time.Hour)

	token, err := issuer.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = verifier.Verify(token)

	if !errors.Is(err, auth.ErrInvalidCredential) {
		t.Fatalf("wrong secret: got %v, want ErrInvalidCredential", err)
	}
}

func TestVerifyMissingSubject(t *testing.T) {
	m := auth.NewManager(testSecret, time.Hour)

	// well-formed, correctly signed, but no subject claim
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing test token failed: %v", err)
	}

	_, err = m.Verify(token)

	if !errors.Is(err, auth.ErrInvalidCredential) {
		t.Fatalf("missing subject: got %v, want ErrInvalidCredential", err)
	}
}

func TestVerifyRejectsNonHMAC(t *testing.T) {
	m := auth.NewManager(testSecret, time.Hour)

	// alg=none style token must never pass
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "alice@example.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	if err != nil {
		t.Fatalf("signing none token failed: %v", err)
	}

	_, err = m.Verify(token)

	if !errors.Is(err, auth.ErrInvalidCredential) {
		t.Fatalf("alg=none token: got %v, want ErrInvalidCredential", err)
	}
}
