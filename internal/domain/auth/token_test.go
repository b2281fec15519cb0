package auth

import (
	"testing"
	"time"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("secret", "hrms", "mrodriguez", []Role{RoleManager}, time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.Subject != "mrodriguez" {
		t.Fatalf("expected subject mrodriguez, got %s", claims.Subject)
	}
	if claims.Issuer != "hrms" {
		t.Fatalf("expected issuer hrms, got %s", claims.Issuer)
	}
	if claims.Roles != "MANAGER" {
		t.Fatalf("expected roles MANAGER, got %s", claims.Roles)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", "hrms", "jdoe", []Role{RoleEmployee}, time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := ParseToken("other-secret", token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken("secret", "hrms", "jdoe", []Role{RoleEmployee}, -time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := ParseToken("secret", token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if err := CheckPassword(hash, "s3cret-pass"); err != nil {
		t.Fatalf("expected password to match: %v", err)
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestRefreshTokenValidity(t *testing.T) {
	now := time.Now()
	token := RefreshToken{ExpiryDate: now.Add(time.Hour)}
	if !token.Valid(now) {
		t.Fatal("expected unexpired unrevoked token to be valid")
	}

	token.Revoked = true
	if token.Valid(now) {
		t.Fatal("expected revoked token to be invalid")
	}

	token.Revoked = false
	token.ExpiryDate = now.Add(-time.Second)
	if token.Valid(now) {
		t.Fatal("expected expired token to be invalid")
	}
}
