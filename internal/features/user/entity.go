package user

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	UserID       int64  `json:"user_id"`
	Username     string `json:"username"`
	PasswordHash []byte `json:"-"`
	Role         string `json:"role"`
}

// NewUser builds a user account with the given plaintext password hashed.
func NewUser(userID int64, username, password, role string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password for %q: %w", username, err)
	}

	return &User{
		UserID:       userID,
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}, nil
}

// CheckPassword reports whether the plaintext password matches the
// stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) == nil
}
