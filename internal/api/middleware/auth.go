package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/bhumilabs/bhumi/internal/api/response"
	"github.com/bhumilabs/bhumi/internal/auth"
)

// TokenVerifier validates session tokens, including revocation checks.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*auth.TokenClaims, error)
}

// Auth provides session authentication middleware.
type Auth struct {
	verifier TokenVerifier
}

// NewAuth creates a new Auth middleware.
func NewAuth(v TokenVerifier) *Auth {
	return &Auth{verifier: v}
}

// Authenticate validates the Bearer token and sets the user email and raw
// token in the request context.
func (a *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			response.Error(w, http.StatusUnauthorized,
				"INVALID_TOKEN", "Missing or invalid Authorization header", nil)
			return
		}

		claims, err := a.verifier.VerifyToken(r.Context(), token)
		if err != nil {
			response.Error(w, http.StatusUnauthorized,
				"INVALID_TOKEN", "Invalid or expired session", nil)
			return
		}

		ctx := SetUserEmail(r.Context(), claims.Email)
		ctx = SetSessionToken(ctx, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
