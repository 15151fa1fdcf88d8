package auth

import (
	"context"
	"net/http"
)

const UserIdentityContextKey = "AuthenticatedUserIdentity"

type AuthenticationProvider interface {
	AuthenticationMiddleware(next http.Handler) http.Handler
	AuthenticationRouter() http.Handler
	AuthenticationType() any
}

type AuthenticatorType struct {
	Type string `json:"type"`
}

// Identity returns the operator placed on the request context by an AuthenticationProvider.
func Identity(ctx context.Context) (string, bool) {
	identity, ok := ctx.Value(UserIdentityContextKey).(string)
	return identity, ok && len(identity) > 0
}

// WithIdentity stores the authenticated operator on a context.
func WithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, UserIdentityContextKey, identity)
}
