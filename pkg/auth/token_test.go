package auth

import (
	"testing"
	"time"

	"github.com/ruchulu/storefront-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "ruchulu",
		ExpirationMinutes: 60,
	}
}

func TestMintAndParseSessionToken(t *testing.T) {
	cfg := testJWTConfig()

	signed, err := MintSessionToken(cfg, time.Now(), "session-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	claims, err := ParseSessionToken(cfg, signed)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if claims.SessionID != "session-1" {
		t.Fatalf("expected session-1, got %q", claims.SessionID)
	}
	if claims.Issuer != "ruchulu" {
		t.Fatalf("expected issuer ruchulu, got %q", claims.Issuer)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()

	signed, err := MintSessionToken(cfg, time.Now().Add(-2*time.Hour), "session-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := ParseSessionToken(cfg, signed); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()

	signed, err := MintSessionToken(cfg, time.Now(), "session-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	other := cfg
	other.Secret = "different"
	if _, err := ParseSessionToken(other, signed); err == nil {
		t.Fatal("expected signature mismatch to be rejected")
	}
}

func TestMintRequiresSessionID(t *testing.T) {
	if _, err := MintSessionToken(testJWTConfig(), time.Now(), "  "); err == nil {
		t.Fatal("expected blank session id to be rejected")
	}
}
