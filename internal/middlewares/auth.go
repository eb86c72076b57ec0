package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/mkalio/shopcore-backend/internal/handlerutils"
	"github.com/mkalio/shopcore-backend/internal/servererrors"
)

type contextKey struct{}

var identityKey contextKey = contextKey{}

// Identity is the authenticated caller put into the request context by
// [middleware.AuthWithContext]. Downstream handlers trust it.
type Identity struct {
	UserID int64
	Role   string
}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == "admin"
}

// Owns reports whether the caller may operate on resources owned by
// userID. Admins may operate on any user's resources.
func (i Identity) Owns(userID int64) bool {
	return i.UserID == userID || i.IsAdmin()
}

// AuthWithContext guards a handler with bearer-token authentication and
// an optional role requirement. requiredRole "admin" restricts the route
// to admins; "user" admits any authenticated caller.
func (mw *middleware) AuthWithContext(h handlerutils.APIHandler, requiredRole string) handlerutils.APIHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		authHeader := r.Header.Get("Authorization")

		tokenStr, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenStr == "" {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrNoBearerToken.Error(),
				nil,
			)
		}

		isValid, claims, err := mw.tokenManager.ValidateAccessToken(tokenStr)
		if err != nil || !isValid {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrUnauthorized.Error(),
				nil,
			)
		}

		userID, err := claims.UserID()
		if err != nil {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrUnauthorized.Error(),
				nil,
			)
		}

		if requiredRole == "admin" && claims.Role != "admin" {
			return servererrors.New(
				http.StatusForbidden,
				servererrors.ErrForbidden.Error(),
				nil,
			)
		}

		ctx := context.WithValue(
			r.Context(),
			identityKey,
			Identity{
				UserID: userID,
				Role:   claims.Role,
			},
		)

		return h(w, r.WithContext(ctx))
	}
}

// GetIdentityFromContext returns the authenticated caller. The zero
// Identity is returned when the middleware did not run, which fails every
// ownership check.
func GetIdentityFromContext(ctx context.Context) Identity {
	identity, ok := ctx.Value(identityKey).(Identity)
	if !ok {
		return Identity{}
	}

	return identity
}
