package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "bhumi"

// TokenClaims is the validated content of a session token.
type TokenClaims struct {
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// SignToken creates an HS256 session token for the given email. Each token
// carries a unique jti so logout can revoke it individually.
func SignToken(secret, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": email,
		"jti": uuid.NewString(),
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
		"iss": issuer,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseToken validates a session token and extracts its claims.
func ParseToken(secret, tokenStr string) (*TokenClaims, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, ErrInvalidToken
	}
	jti, _ := claims["jti"].(string)

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken
	}

	return &TokenClaims{Email: sub, TokenID: jti, ExpiresAt: exp.Time}, nil
}
