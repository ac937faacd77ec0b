package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/lbarasti/chess-social/services"
)

type contextKey string

const (
	identityContextKey contextKey = "identity"
	tokenContextKey    contextKey = "token"
)

// Authenticate verifies the Authorization bearer token and stores the
// resolved identity, plus the raw token, in the request context. The raw
// token is kept because challenge issuance has to act on the Lichess API
// with the caller's own token.
func Authenticate(auth services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := BearerToken(r)
			if err != nil {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			identity, err := auth.IdentityFromToken(r.Context(), token)
			if err != nil {
				if errors.Is(err, services.ErrExternalDependency) {
					http.Error(w, "Identity verification unavailable", http.StatusBadGateway)
					return
				}
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey, *identity)
			ctx = context.WithValue(ctx, tokenContextKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", errors.New("missing bearer token")
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return "", errors.New("empty bearer token")
	}
	return token, nil
}

// IdentityFromContext returns the identity stored by Authenticate.
func IdentityFromContext(ctx context.Context) (services.Identity, error) {
	identity, ok := ctx.Value(identityContextKey).(services.Identity)
	if !ok {
		return services.Identity{}, errors.New("identity not found in context")
	}
	return identity, nil
}

// TokenFromContext returns the raw bearer token stored by Authenticate.
func TokenFromContext(ctx context.Context) (string, error) {
	token, ok := ctx.Value(tokenContextKey).(string)
	if !ok || token == "" {
		return "", errors.New("token not found in context")
	}
	return token, nil
}
