package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	mw "github.com/bhumilabs/bhumi/internal/api/middleware"
	"github.com/bhumilabs/bhumi/internal/api/response"
	"github.com/bhumilabs/bhumi/internal/auth"
	"github.com/bhumilabs/bhumi/pkg/models"
)

// Authenticator defines the account operations the auth handlers depend on.
type Authenticator interface {
	Signup(ctx context.Context, email, password, name string) (string, *models.UserProfile, error)
	Login(ctx context.Context, email, password string) (string, *models.UserProfile, error)
	Logout(ctx context.Context, token string) error
}

type sessionResponse struct {
	Token string              `json:"token"`
	User  *models.UserProfile `json:"user"`
}

// NewSignupHandler returns an http.HandlerFunc for POST /api/v1/auth/signup.
func NewSignupHandler(svc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			Name     string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if req.Email == "" || req.Password == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "email and password are required", nil)
			return
		}

		token, user, err := svc.Signup(r.Context(), req.Email, req.Password, req.Name)
		if err != nil {
			if errors.Is(err, auth.ErrEmailTaken) {
				response.Error(w, http.StatusConflict, "EMAIL_TAKEN", "Email already registered", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", nil)
			return
		}

		response.Created(w, sessionResponse{Token: token, User: user})
	}
}

// NewLoginHandler returns an http.HandlerFunc for POST /api/v1/auth/login.
func NewLoginHandler(svc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if req.Email == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "email is required", nil)
			return
		}

		token, user, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				response.Error(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", nil)
			return
		}

		response.JSON(w, sessionResponse{Token: token, User: user})
	}
}

// NewLogoutHandler returns an http.HandlerFunc for POST /api/v1/auth/logout.
func NewLogoutHandler(svc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := mw.GetSessionToken(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing session", nil)
			return
		}

		if err := svc.Logout(r.Context(), token); err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", nil)
			return
		}

		response.JSON(w, map[string]bool{"logged_out": true})
	}
}
