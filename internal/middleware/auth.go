package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/inkshelf/inkshelf-go/internal/model"
)

type contextKey string

const userKey contextKey = "user"

// SessionResolver resolves a bearer token to its active user. Implemented by
// service.AuthService.
type SessionResolver interface {
	ResolveToken(ctx context.Context, token string) (*model.User, error)
}

// TokenAuth returns middleware that authenticates requests via a Bearer
// token in the Authorization header. The resolved user is placed on the
// request context; any failure is a 401.
func TokenAuth(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "Authentication credentials were not provided")
				return
			}

			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				writeJSONError(w, http.StatusUnauthorized, "Invalid authorization header format")
				return
			}

			user, err := resolver.ResolveToken(r.Context(), token)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext extracts the authenticated user from the request context.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
