package user

import (
	"context"
	"errors"
	"testing"

	"github.com/mkalio/shopcore-backend/internal/auth"
	"github.com/mkalio/shopcore-backend/internal/servererrors"
)

const testSecret = "test-secret"

func newTestService(t *testing.T) *service {
	t.Helper()

	admin, err := NewUser(1, "admin", "adminpass", "admin")
	if err != nil {
		t.Fatal(err)
	}
	customer, err := NewUser(1001, "user1001", "pass1001", "user")
	if err != nil {
		t.Fatal(err)
	}

	store := NewStore()
	store.Seed(admin, customer)

	return NewService(store, auth.NewTokenService(testSecret, 3600))
}

func Test_login_issuesValidToken(t *testing.T) {
	s := newTestService(t)

	resp, err := s.login(context.Background(), "user1001", "pass1001")
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}

	if resp.TokenType != "bearer" {
		t.Errorf("got token type %q, want %q", resp.TokenType, "bearer")
	}
	if resp.UserID != 1001 || resp.Role != "user" {
		t.Errorf("got user_id=%d role=%q, want 1001 and user", resp.UserID, resp.Role)
	}

	isValid, claims, err := auth.NewTokenService(testSecret, 3600).ValidateAccessToken(resp.AccessToken)
	if err != nil || !isValid {
		t.Fatalf("issued token does not validate: isValid=%v err=%v", isValid, err)
	}

	userID, err := claims.UserID()
	if err != nil {
		t.Fatal(err)
	}
	if userID != 1001 || claims.Role != "user" {
		t.Errorf("got claims user_id=%d role=%q, want 1001 and user", userID, claims.Role)
	}
}

func Test_login_adminRoleInToken(t *testing.T) {
	s := newTestService(t)

	resp, err := s.login(context.Background(), "admin", "adminpass")
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}

	if resp.Role != "admin" {
		t.Errorf("got role %q, want admin", resp.Role)
	}
}

func Test_login_rejectsBadCredentials(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "user1001", "wrongpass"},
		{"unknown username", "nobody", "pass1001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.login(ctx, tt.username, tt.password)
			if !errors.Is(err, servererrors.ErrInvalidCredentials) {
				t.Errorf("got %v, want ErrInvalidCredentials", err)
			}
		})
	}
}
