package auth

import (
	"context"
	"errors"
)

var (
	ErrMissingToken   = errors.New("missing auth token")
	ErrInvalidToken   = errors.New("invalid auth token")
	ErrSessionExpired = errors.New("session expired")
)

// Resolver maps a bearer token, issued by the external auth provider, to a user id.
type Resolver interface {
	Resolve(ctx context.Context, token string) (userID string, err error)
}

type userIDCtxKey struct{}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDCtxKey{}, userID)
}

// UserIDFromContext returns the authenticated user id set by the auth middleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDCtxKey{}).(string)
	return userID, ok && userID != ""
}
