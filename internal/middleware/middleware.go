package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Dan9191/blog-service/internal/auth"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity resolves the Authorization header into an identity and attaches
// it to the request context. Missing, malformed, expired or badly signed
// credentials all resolve to an anonymous request; rejection is left to the
// guards downstream.
func Identity(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw != "" {
				if identity, err := tokens.Verify(stripBearer(raw)); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), identityKey, identity))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// stripBearer removes a "Bearer " scheme prefix if present, otherwise
// returns the raw value.
func stripBearer(raw string) string {
	parts := strings.SplitN(raw, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return raw
}

// IdentityFromContext returns the resolved identity, or nil for an
// anonymous request.
func IdentityFromContext(ctx context.Context) *auth.Identity {
	identity, _ := ctx.Value(identityKey).(*auth.Identity)
	return identity
}
