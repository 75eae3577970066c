package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSignAndParseRoundtrip(t *testing.T) {
	a := New("secret")

	token, err := a.Sign("u1")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	userID, err := a.ParseBearer("Bearer " + token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != "u1" {
		t.Fatalf("expected u1, got %s", userID)
	}
}

func TestParseRejectsMalformedHeader(t *testing.T) {
	a := New("secret")

	for _, header := range []string{"", "Basic abc", "Bearer", "Bearer   "} {
		if _, err := a.ParseBearer(header); err != ErrMalformedHeader {
			t.Fatalf("header %q: expected ErrMalformedHeader, got %v", header, err)
		}
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := New("one").Sign("u1")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := New("two").ParseBearer("Bearer " + token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": "u1",
		"exp":    time.Now().Add(-time.Hour).Unix(),
	})
	token, err := raw.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := New("secret").ParseBearer("Bearer " + token); err != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestMissingSecretIsConfigurationError(t *testing.T) {
	a := New("")
	if _, err := a.ParseBearer("Bearer whatever"); err != ErrMissingSecret {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
	if _, err := a.Sign("u1"); err != ErrMissingSecret {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestParseRejectsMissingUserClaim(t *testing.T) {
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "a@b.c"})
	token, err := raw.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := New("secret").ParseBearer("Bearer " + token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
