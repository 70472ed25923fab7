package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dpearce/inkwell/internal/token"
)

type key string

const userIDKey key = "user_id"

// GetUserID returns the authenticated caller's id from the request context.
// The second return is false when the request never passed RequireAuth.
func GetUserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

// WithUserID attaches a caller id to the context. Exposed for handler tests.
func WithUserID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// RequireAuth extracts the bearer token, verifies it, and attaches the
// subject user id to the request context. Missing, malformed, badly signed,
// and expired tokens all end the request with 401.
func RequireAuth(tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "missing authorization header")
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenStr == authHeader || tokenStr == "" {
				unauthorized(w, "invalid authorization header")
				return
			}

			userID, err := tokens.Verify(tokenStr)
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
