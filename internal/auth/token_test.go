package auth

import (
	"testing"

	"github.com/spec-kit/wallet-service/internal/domain"
)

func TestTokenRoundTripCarriesRole(t *testing.T) {
	tm := NewTokenManager("test-secret", 15)

	token, _, err := tm.GenerateToken("profile-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.ProfileID != "profile-1" {
		t.Fatalf("profile = %s, want profile-1", claims.ProfileID)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("role = %s, want admin", claims.Role)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 15)
	other := NewTokenManager("other-secret", 15)

	token, _, err := tm.GenerateToken("profile-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := other.ParseToken(token); err == nil {
		t.Fatal("expected token signed with another secret to fail")
	}
}
