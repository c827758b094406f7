package middleware

import (
	"context"
	"net/http"

	"github.com/AnshRaj112/natpac-travel-backend/internal/services"
)

type claimsKey struct{}

// unauthorizedBody is the same for a missing, malformed, forged or expired
// token.
const unauthorizedBody = `{"error":"Invalid or expired token"}`

// RequireAuth verifies the bearer token and stores its claims in the request
// context. Requests without a valid token are answered with 401 before the
// body is read.
func RequireAuth(tokens *services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := services.ExtractBearer(r.Header.Get("Authorization"))
			if !ok {
				writeUnauthorized(w)
				return
			}
			claims, err := tokens.Verify(raw)
			if err != nil {
				writeUnauthorized(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// WithClaims returns a context carrying verified claims.
func WithClaims(ctx context.Context, c *services.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// ClaimsFrom returns the claims stored by RequireAuth.
func ClaimsFrom(ctx context.Context) (*services.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*services.Claims)
	return c, ok && c != nil
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(unauthorizedBody))
}
