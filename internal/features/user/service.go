package user

import (
	"context"
	"log/slog"

	"github.com/mkalio/shopcore-backend/internal/servererrors"
)

type tokenIssuer interface {
	NewAccessToken(userID int64, role string) (string, error)
}

type service struct {
	store       *Store
	tokenIssuer tokenIssuer
}

func NewService(userStore *Store, tokenIssuer tokenIssuer) *service {
	return &service{
		store:       userStore,
		tokenIssuer: tokenIssuer,
	}
}

// login exchanges valid credentials for an access token. Unknown
// usernames and wrong passwords fail identically so the endpoint does
// not leak which usernames exist.
func (s *service) login(ctx context.Context, username, password string) (*LoginResponse, error) {
	u, err := s.store.findByUsername(username)
	if err != nil {
		return nil, err
	}

	if !u.CheckPassword(password) {
		return nil, servererrors.ErrInvalidCredentials
	}

	accessToken, err := s.tokenIssuer.NewAccessToken(u.UserID, u.Role)
	if err != nil {
		return nil, err
	}

	slog.Info(
		"user logged in",
		"user_id", u.UserID,
		"username", u.Username,
	)

	return &LoginResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		UserID:      u.UserID,
		Role:        u.Role,
	}, nil
}
