package session

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return signed
}

func TestValidatorAcceptsSignedUnexpiredToken(t *testing.T) {
	v := NewValidator("test-secret")
	token := signTestToken(t, "test-secret", jwt.MapClaims{
		"sub": "7",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if !v.Valid(token) {
		t.Fatalf("expected valid token to verify")
	}
}

func TestValidatorFailsClosedWithoutSecret(t *testing.T) {
	v := NewValidator("")
	token := signTestToken(t, "any-secret", jwt.MapClaims{
		"sub": "7",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if v.Valid(token) {
		t.Fatalf("validator must reject every token when no secret is configured")
	}
}

func TestValidatorRejectsExpiredToken(t *testing.T) {
	v := NewValidator("test-secret")
	token := signTestToken(t, "test-secret", jwt.MapClaims{
		"sub": "7",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	if v.Valid(token) {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestValidatorRejectsWrongSignature(t *testing.T) {
	v := NewValidator("test-secret")
	token := signTestToken(t, "other-secret", jwt.MapClaims{
		"sub": "7",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if v.Valid(token) {
		t.Fatalf("expected token signed with a different secret to be rejected")
	}
}

func TestValidatorRejectsMalformedAndEmptyTokens(t *testing.T) {
	v := NewValidator("test-secret")

	for _, raw := range []string{"", "   ", "not-a-jwt", "a.b.c"} {
		if v.Valid(raw) {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}

func TestUserIDPrefersUserIDClaim(t *testing.T) {
	v := NewValidator("test-secret")
	token := signTestToken(t, "test-secret", jwt.MapClaims{
		"userId": "42",
		"sub":    "other",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	id, ok := v.UserID(token)
	if !ok || id != "42" {
		t.Fatalf("unexpected user id: got %q ok=%v", id, ok)
	}
}

func TestUserIDFallsBackToSubject(t *testing.T) {
	v := NewValidator("test-secret")
	token := signTestToken(t, "test-secret", jwt.MapClaims{
		"sub": "7",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	id, ok := v.UserID(token)
	if !ok || id != "7" {
		t.Fatalf("unexpected user id: got %q ok=%v", id, ok)
	}
}

func TestUserIDHandlesNumericClaim(t *testing.T) {
	v := NewValidator("test-secret")
	token := signTestToken(t, "test-secret", jwt.MapClaims{
		"userId": 42,
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	id, ok := v.UserID(token)
	if !ok || id != "42" {
		t.Fatalf("unexpected user id: got %q ok=%v", id, ok)
	}
}

func TestUserIDRejectsUnverifiedToken(t *testing.T) {
	v := NewValidator("test-secret")
	token := signTestToken(t, "other-secret", jwt.MapClaims{
		"userId": "42",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	if _, ok := v.UserID(token); ok {
		t.Fatalf("user id must not be extracted from an unverified token")
	}
}
