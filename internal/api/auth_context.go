package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/habitloop/habitloop-server/internal/service"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

// identityKey is the context key for the authenticated identity.
const identityKey ctxKey = "identity"

// GetIdentity returns the authenticated identity from context.
// Returns a 401 error if the request is not authenticated.
func GetIdentity(ctx context.Context) (string, error) {
	identity, ok := ctx.Value(identityKey).(string)
	if !ok || identity == "" {
		return "", huma.Error401Unauthorized("Authentication required")
	}
	return identity, nil
}

// setIdentity stores the identity in context.
func setIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// authMiddleware validates session tokens and stores the identity in
// context. The legacy X-User-Mobile header is still accepted for old
// clients; a valid Bearer token always wins. Requests without either
// continue unauthenticated and handlers reject via GetIdentity.
func authMiddleware(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if identity := resolveIdentity(auth, r); identity != "" {
				r = r.WithContext(setIdentity(r.Context(), identity))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolveIdentity(auth *service.AuthService, r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		if identity, err := auth.Verify(authHeader[7:]); err == nil {
			return identity
		}
		// Invalid token falls through to the legacy header.
	}

	return strings.TrimSpace(r.Header.Get("X-User-Mobile"))
}
