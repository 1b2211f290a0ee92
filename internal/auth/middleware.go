package auth

import (
	"context"
	"net/http"
	"strings"

	"parkspot/internal/db"
)

type contextKey string

const claimsKey contextKey = "claims"

// FromContext returns the verified principal, if any.
func FromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// Authenticate rejects requests without a valid session token and stores the
// verified claims in the request context.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			http.Error(w, "Missing token", http.StatusUnauthorized)
			return
		}
		claims, err := ParseToken(token)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth stores claims in the context when a valid token is present and
// lets the request through either way. Listing endpoints use it to vary their
// response for admins.
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			if claims, err := ParseToken(token); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin allows only authenticated admins through. The role comes from
// the signed token, never from a client-supplied header.
func RequireAdmin(next http.Handler) http.Handler {
	return Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := FromContext(r.Context())
		if !ok || claims.Role != db.RoleAdmin {
			http.Error(w, "Access denied: Admins only", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	}))
}
