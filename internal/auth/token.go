package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is the identity carried by an access token. The core trusts
// these once the signature has been verified; it never re-checks credentials.
type TokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim into the numeric user identifier.
func (c *TokenClaims) UserID() (int64, error) {
	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("token subject is not a user id: %w", err)
	}

	return userID, nil
}

type TokenService struct {
	accessTokenSecret       []byte
	accessTokenExpiryInSecs int64
}

func NewTokenService(accessTokenSecret string, accessTokenExpiryInSecs int64) *TokenService {
	return &TokenService{
		accessTokenSecret:       []byte(accessTokenSecret),
		accessTokenExpiryInSecs: accessTokenExpiryInSecs,
	}
}

func (ts *TokenService) NewAccessToken(userID int64, role string) (string, error) {
	now := time.Now()

	claims := &TokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ts.accessTokenExpiryInSecs) * time.Second)),
		},
	}

	token := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		claims,
	)

	signed, err := token.SignedString(ts.accessTokenSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, nil
}

func (ts *TokenService) ValidateAccessToken(tokenStr string) (isValid bool, claims *TokenClaims, err error) {
	claims = &TokenClaims{}

	token, err := jwt.ParseWithClaims(
		tokenStr,
		claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf(
					"unexpected signing method: %v",
					t.Header["alg"],
				)
			}

			return ts.accessTokenSecret, nil
		},
	)
	if err != nil {
		return false, nil, err
	}

	if !token.Valid {
		return false, nil, nil
	}

	return true, claims, nil
}
