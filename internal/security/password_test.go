package security_test

import (
	"testing"

	"github.com/moneyseed/moneyseed/internal/security"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := security.HashPassword("secret123")

	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	if hash == "secret123" {
		t.Fatalf("hash must not equal the plaintext")
	}

	if err := security.CheckPassword(hash, "secret123"); err != nil {
		t.Fatalf("CheckPassword rejected the correct password: %v", err)
	}

	if err := security.CheckPassword(hash, "secret124"); err == nil {
		t.Fatalf("CheckPassword accepted a wrong password")
	}
}

func TestHashPasswordIsSalted(t *testing.T) {
	h1, err := security.HashPassword("secret123")
	if err != nil {
		t.Fatalf("first hash failed: %v", err)
	}

	h2, err := security.HashPassword("secret123")
	if err != nil {
		t.Fatalf("second hash failed: %v", err)
	}

	if h1 == h2 {
		t.Fatalf("two hashes of the same password should differ (salt), both were %q", h1)
	}

	if err := security.CheckPassword(h1, "secret123"); err != nil {
		t.Fatalf("first hash did not verify: %v", err)
	}

	if err := security.CheckPassword(h2, "secret123"); err != nil {
		t.Fatalf("second hash did not verify: %v", err)
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	// A garbage stored hash is a mismatch, never a panic.
	if err := security.CheckPassword("not-a-bcrypt-hash", "secret123"); err == nil {
		t.Fatalf("malformed hash should not verify")
	}
}
