package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const (
	userEmailKey    contextKey = "user_email"
	sessionTokenKey contextKey = "session_token"
)

func SetUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, userEmailKey, email)
}

func GetUserEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value(userEmailKey).(string)
	return email, ok
}

func SetSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, sessionTokenKey, token)
}

// GetSessionToken returns the raw bearer token set by the auth middleware.
// Logout needs it to revoke the exact session.
func GetSessionToken(r *http.Request) (string, bool) {
	token, ok := r.Context().Value(sessionTokenKey).(string)
	return token, ok
}
