package auth

import (
	"testing"
)

func Test_tokenService_roundTrip(t *testing.T) {
	ts := NewTokenService("test-secret", 60)

	tokenStr, err := ts.NewAccessToken(1001, "user")
	if err != nil {
		t.Fatalf("failed to issue access token: %v", err)
	}

	isValid, claims, err := ts.ValidateAccessToken(tokenStr)
	if err != nil {
		t.Fatalf("failed to validate access token: %v", err)
	}
	if !isValid {
		t.Fatal("expected token to be valid")
	}

	userID, err := claims.UserID()
	if err != nil {
		t.Fatalf("failed to parse user id from claims: %v", err)
	}
	if userID != 1001 {
		t.Errorf("got user id %d, want 1001", userID)
	}
	if claims.Role != "user" {
		t.Errorf("got role %q, want %q", claims.Role, "user")
	}
}

func Test_tokenService_rejectsTamperedToken(t *testing.T) {
	ts := NewTokenService("test-secret", 60)
	other := NewTokenService("another-secret", 60)

	tokenStr, err := other.NewAccessToken(1001, "admin")
	if err != nil {
		t.Fatalf("failed to issue access token: %v", err)
	}

	isValid, _, err := ts.ValidateAccessToken(tokenStr)
	if err == nil && isValid {
		t.Fatal("expected a token signed with a different secret to be rejected")
	}
}

func Test_tokenService_rejectsExpiredToken(t *testing.T) {
	ts := NewTokenService("test-secret", -60) // already expired at issue time

	tokenStr, err := ts.NewAccessToken(1001, "user")
	if err != nil {
		t.Fatalf("failed to issue access token: %v", err)
	}

	isValid, _, err := ts.ValidateAccessToken(tokenStr)
	if err == nil && isValid {
		t.Fatal("expected expired token to be rejected")
	}
}
